package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/formcheck/pkg/schema"
)

// ReadDocument decodes a JSON or YAML document from path, or from stdin
// when path is empty or "-".
func ReadDocument(path string, stdin io.Reader) (map[string]any, error) {
	data, err := readInput(path, stdin)
	if err != nil {
		return nil, err
	}
	doc, err := schema.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// ReadFile reads raw bytes from path, or from stdin when path is "-".
func ReadFile(path string, stdin io.Reader) ([]byte, error) {
	return readInput(path, stdin)
}
