package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/formcheck/pkg/ports"
	"github.com/aretw0/formcheck/pkg/schema"
)

// Load compiles every document of store and registers it under its name.
// Documents that fail are reported together; the others stay registered.
func Load(ctx context.Context, r *Registry, store ports.DocumentStore, compiler schema.Compiler) (int, error) {
	names, err := store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list schema documents: %w", err)
	}

	var errs []error
	loaded := 0
	for _, name := range names {
		doc, err := store.Load(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		s, err := compiler.Compile(doc)
		if err != nil {
			errs = append(errs, fmt.Errorf("compile %s: %w", name, err))
			continue
		}
		if err := r.Register(name, s); err != nil {
			errs = append(errs, fmt.Errorf("register %s: %w", name, err))
			continue
		}
		loaded++
	}

	r.logger.Debug("schemas loaded", "count", loaded, "failed", len(errs))
	return loaded, errors.Join(errs...)
}
