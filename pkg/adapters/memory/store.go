package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/formcheck/pkg/ports"
)

// Store implements ports.DocumentStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

var _ ports.DocumentStore = (*Store)(nil)

// NewStore creates a new in-memory store, optionally seeded with docs.
func NewStore(docs ...map[string][]byte) *Store {
	s := &Store{data: make(map[string][]byte)}
	for _, set := range docs {
		for name, doc := range set {
			s.data[name] = clone(doc)
		}
	}
	return s
}

// Save stores a copy of doc.
func (s *Store) Save(ctx context.Context, name string, doc []byte) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = clone(doc)
	return nil
}

// Load returns a copy so callers cannot mutate the stored document.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ports.CheckName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	if !ok {
		return nil, ports.ErrDocumentNotFound
	}
	return clone(doc), nil
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(doc []byte) []byte {
	return append([]byte(nil), doc...)
}
