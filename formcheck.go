package formcheck

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/formcheck/internal/logging"
	"github.com/aretw0/formcheck/pkg/ports"
	"github.com/aretw0/formcheck/pkg/registry"
	"github.com/aretw0/formcheck/pkg/schema"
	"github.com/aretw0/formcheck/pkg/schema/jsonschema"
	"github.com/aretw0/formcheck/pkg/schema/openapi"
	"github.com/aretw0/formcheck/pkg/validation"
)

// Dialects accepted by Compiler.
const (
	DialectOpenAPI    = "openapi"
	DialectJSONSchema = "jsonschema"
	DialectTypeMap    = "typemap"
)

// lockTTL bounds how long a crashed writer can block others.
const lockTTL = 10 * time.Second

// Engine is the high-level entry point for formcheck.
// It ties a registry to an optional document store and builds validations.
type Engine struct {
	registry *registry.Registry
	store    ports.DocumentStore
	locker   ports.DistributedLocker
	compiler schema.Compiler
	hooks    validation.Hooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry uses r instead of a fresh registry. Pass registry.Default to
// share the process-wide table.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithStore persists registered documents to store and loads it on New.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes Register calls for the same name across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithCompiler sets the schema compiler. Defaults to OpenAPI.
func WithCompiler(c schema.Compiler) Option {
	return func(e *Engine) {
		e.compiler = c
	}
}

// WithHooks registers validation hooks applied to every Validation.
func WithHooks(hooks validation.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Compiler returns the compiler for dialect.
func Compiler(dialect string) (schema.Compiler, error) {
	switch dialect {
	case DialectOpenAPI, "":
		return openapi.Compiler, nil
	case DialectJSONSchema:
		return jsonschema.Compiler, nil
	case DialectTypeMap:
		return schema.ObjectCompiler, nil
	}
	return nil, fmt.Errorf("unknown schema dialect %q", dialect)
}

// New initializes an Engine. When a store is configured every document in it
// is compiled and registered; failures are returned after the others loaded.
func New(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.registry == nil {
		eng.registry = registry.New(registry.WithLogger(eng.logger))
	}
	if eng.compiler == nil {
		eng.compiler = openapi.Compiler
	}

	if eng.store != nil {
		n, err := registry.Load(ctx, eng.registry, eng.store, eng.compiler)
		if err != nil {
			return eng, fmt.Errorf("failed to load schemas: %w", err)
		}
		eng.logger.Info("schemas loaded", "count", n)
	}

	return eng, nil
}

// Registry returns the registry the engine reads from.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Store returns the configured store, or nil.
func (e *Engine) Store() ports.DocumentStore {
	return e.store
}

// Compile compiles doc with the engine's compiler.
func (e *Engine) Compile(doc []byte) (schema.Schema, error) {
	return e.compiler.Compile(doc)
}

// Register compiles doc, registers it under name and saves it to the store.
func (e *Engine) Register(ctx context.Context, name string, doc []byte) (schema.Schema, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "schema:"+name, lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock schema %s: %w", name, err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.Warn("failed to release schema lock", "schema", name, "error", err)
			}
		}()
	}

	s, err := e.compiler.Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	if e.store != nil {
		if err := e.store.Save(ctx, name, doc); err != nil {
			return nil, fmt.Errorf("save %s: %w", name, err)
		}
	}
	if err := e.registry.Register(name, s); err != nil {
		return nil, err
	}

	e.logger.Debug("schema registered", "schema", name)
	return s, nil
}

// Validation builds a validation for the schema registered under name.
func (e *Engine) Validation(name string, opts ...validation.Option) (*validation.Validation, error) {
	s, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	base := []validation.Option{
		validation.WithName(name),
		validation.WithLogger(e.logger),
		validation.WithHooks(e.hooks),
	}
	return validation.New(s, append(base, opts...)...)
}

// Validate validates doc once against the schema registered under name.
// Each call uses its own context, so concurrent calls are safe.
func (e *Engine) Validate(name string, doc map[string]any, opts ...validation.Option) (validation.Status, error) {
	v, err := e.Validation(name, append([]validation.Option{validation.WithNewContext()}, opts...)...)
	if err != nil {
		return validation.Status{}, err
	}
	return v.Validate(doc)
}
