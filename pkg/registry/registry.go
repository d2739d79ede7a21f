package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/formcheck/internal/logging"
	"github.com/aretw0/formcheck/pkg/schema"
)

var (
	// ErrInvalidArgument is returned by RegisterSchema for arguments of the wrong kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidName is returned when registering under the empty name.
	ErrInvalidName = errors.New("schema name cannot be empty")
	// ErrSchemaNotFound is returned by Lookup for unknown names.
	ErrSchemaNotFound = errors.New("schema not found")
)

// Registry maps names to schemas. Registering an existing name overwrites it.
// Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]schema.Schema
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report overwrites.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		schemas: make(map[string]schema.Schema),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores s under name. A nil schema is stored as is.
func (r *Registry) Register(name string, s schema.Schema) error {
	if name == "" {
		return ErrInvalidName
	}

	r.mu.Lock()
	_, existed := r.schemas[name]
	r.schemas[name] = s
	r.mu.Unlock()

	if existed {
		r.logger.Debug("schema overwritten", "schema", name)
	}
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, s schema.Schema) {
	if err := r.Register(name, s); err != nil {
		panic(fmt.Sprintf("registry: register %q: %v", name, err))
	}
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (schema.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// Lookup is Get returning ErrSchemaNotFound for unknown names.
func (r *Registry) Lookup(name string) (schema.Schema, error) {
	s, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return s, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the table.
func (r *Registry) Snapshot() map[string]schema.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]schema.Schema, len(r.schemas))
	for name, s := range r.schemas {
		out[name] = s
	}
	return out
}

// Delete removes name. Intended for tests that reset shared tables.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.schemas, name)
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schemas)
}
