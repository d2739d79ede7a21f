package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDocumentNotFound is returned by Load when no document exists under a name.
	ErrDocumentNotFound = errors.New("schema document not found")
	// ErrInvalidName is returned for empty names or names containing path separators.
	ErrInvalidName = errors.New("invalid document name")
)

// DocumentStore persists raw schema documents (JSON or YAML) by name.
type DocumentStore interface {
	// Save stores doc under name, replacing any previous document.
	Save(ctx context.Context, name string, doc []byte) error

	// Load retrieves the document stored under name.
	// Returns ErrDocumentNotFound if it does not exist.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in sorted order.
	List(ctx context.Context) ([]string, error)
}

// CheckName validates a document name.
func CheckName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
