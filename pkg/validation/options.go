package validation

import (
	"log/slog"
	"time"

	"github.com/aretw0/formcheck/pkg/schema"
)

// Event describes a finished Validate call.
type Event struct {
	Timestamp     time.Time     `json:"timestamp"`
	Schema        string        `json:"schema,omitempty"`
	Context       string        `json:"context"`
	IsValid       bool          `json:"isValid"`
	InvalidFields []string      `json:"invalidFields,omitempty"`
	Duration      time.Duration `json:"duration"`
}

// Hooks are callbacks for validation observability.
type Hooks struct {
	OnValidated func(*Event)
}

// Merge returns hooks that call h then other.
func (h Hooks) Merge(other Hooks) Hooks {
	switch {
	case h.OnValidated == nil:
		return other
	case other.OnValidated == nil:
		return h
	}
	first, second := h.OnValidated, other.OnValidated
	return Hooks{OnValidated: func(e *Event) {
		first(e)
		second(e)
	}}
}

// Option configures a Validation.
type Option func(*Validation)

// WithPick validates against the sub-schema holding only keys, using a
// fresh context. An empty list is ignored.
func WithPick(keys ...string) Option {
	return func(v *Validation) {
		v.pick = keys
	}
}

// WithContextName selects the named schema context. Defaults to "default".
// It overrides an earlier WithNewContext.
func WithContextName(name string) Option {
	return func(v *Validation) {
		v.contextName = name
		v.freshContext = false
	}
}

// WithNewContext validates with a context owned by this Validation instead
// of the schema's shared named context. Use it when validations of the same
// schema run concurrently.
func WithNewContext() Option {
	return func(v *Validation) {
		v.freshContext = true
	}
}

// WithCleanOptions replaces the clean options used before validation.
func WithCleanOptions(opts schema.CleanOptions) Option {
	return func(v *Validation) {
		v.cleanOptions = &opts
	}
}

// WithName sets the schema name reported in events and logs.
func WithName(name string) Option {
	return func(v *Validation) {
		v.name = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validation) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithHooks registers lifecycle hooks. Repeated calls chain.
func WithHooks(hooks Hooks) Option {
	return func(v *Validation) {
		v.hooks = v.hooks.Merge(hooks)
	}
}
