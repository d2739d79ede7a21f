package schema

// DefaultContextName is the name NamedContext resolves the empty name to.
const DefaultContextName = "default"

// Schema is the capability contract every schema implementation satisfies.
// Constraint semantics belong to the implementation; callers only clean,
// narrow and validate through it.
type Schema interface {
	// Pick returns a schema restricted to the given keys.
	// It fails with ErrUnknownField when a key is not declared.
	Pick(keys ...string) (Schema, error)

	// NamedContext returns the validation context shared under name.
	// The empty name resolves to DefaultContextName.
	NamedContext(name string) Context

	// NewContext returns a fresh validation context.
	NewContext() Context

	// Clean returns a normalized copy of doc. doc itself is never modified.
	Clean(doc map[string]any, opts CleanOptions) (map[string]any, error)
}

// Context runs constraint checks and keeps the errors of its last run.
type Context interface {
	// Validate checks doc and replaces the context's error list.
	Validate(doc map[string]any) bool

	// ValidationErrors returns the ordered error list of the last Validate call.
	ValidationErrors() []ValidationError

	// KeyErrorMessage returns a human-readable message for key, or "" when
	// the last Validate call reported nothing for it.
	KeyErrorMessage(key string) string
}

// Compiler turns a schema document (JSON or YAML) into a Schema.
type Compiler interface {
	Compile(doc []byte) (Schema, error)
}

// CompilerFunc adapts a function to the Compiler interface.
type CompilerFunc func(doc []byte) (Schema, error)

// Compile calls f(doc).
func (f CompilerFunc) Compile(doc []byte) (Schema, error) {
	return f(doc)
}
