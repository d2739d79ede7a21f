package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/formcheck/pkg/ports"
)

// Extensions recognised as schema documents, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Store implements ports.DocumentStore using the local filesystem.
// Each document lives in <BasePath>/<name><ext>.
type Store struct {
	BasePath string
}

var _ ports.DocumentStore = (*Store)(nil)

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to "schemas".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = "schemas"
	}
	return &Store{BasePath: basePath}
}

// Save persists doc atomically. An existing file keeps its extension;
// new documents get .json when doc is JSON and .yaml otherwise.
func (s *Store) Save(ctx context.Context, name string, doc []byte) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure schema directory: %w", err)
	}

	destPath, err := s.find(name)
	if err != nil {
		ext := ".yaml"
		if json.Valid(doc) {
			ext = ".json"
		}
		destPath = filepath.Join(s.BasePath, name+ext)
	}

	// Same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(doc); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing schema file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to schema file: %w", err)
	}
	return nil
}

// Load reads the document stored under name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ports.CheckName(name); err != nil {
		return nil, err
	}

	path, err := s.find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return data, nil
}

// Delete removes every file stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.CheckName(name); err != nil {
		return err
	}

	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete schema file: %w", err)
		}
	}
	return nil
}

// List returns the names of all schema documents in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || strings.HasPrefix(fileName, ".") || !isDocument(fileName) {
			continue
		}
		name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) find(name string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ports.ErrDocumentNotFound
}

func isDocument(fileName string) bool {
	ext := filepath.Ext(fileName)
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}
