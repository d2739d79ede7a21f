package validation

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/formcheck/internal/logging"
	"github.com/aretw0/formcheck/pkg/schema"
)

// ErrNilSchema is returned by New when no schema is given.
var ErrNilSchema = errors.New("validation: a schema is required")

// Validation binds a schema and one of its contexts to the status of the
// latest validated document.
type Validation struct {
	schema  schema.Schema
	context schema.Context

	pick         []string
	contextName  string
	freshContext bool
	cleanOptions *schema.CleanOptions
	name         string
	logger       *slog.Logger
	hooks        Hooks

	// run serializes use of the context, whose error list is shared state.
	run sync.Mutex

	mu     sync.RWMutex
	status Status
}

// New creates a Validation for s. With WithPick the context comes from the
// picked sub-schema; otherwise it is the schema's named context.
func New(s schema.Schema, opts ...Option) (*Validation, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	v := &Validation{
		schema:      s,
		contextName: schema.DefaultContextName,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if len(v.pick) > 0 {
		sub, err := s.Pick(v.pick...)
		if err != nil {
			return nil, err
		}
		v.context = sub.NewContext()
	} else if v.freshContext {
		v.context = s.NewContext()
	} else {
		v.context = s.NamedContext(v.contextName)
	}

	v.status = v.newStatus()
	return v, nil
}

// Schema returns the schema documents are cleaned with.
func (v *Validation) Schema() schema.Schema {
	return v.schema
}

// Context returns the validation context in use.
func (v *Validation) Context() schema.Context {
	return v.context
}

// CleanOptions returns the options passed to Schema.Clean: the configured
// value, or the defaults without auto values.
func (v *Validation) CleanOptions() schema.CleanOptions {
	if v.cleanOptions != nil {
		return *v.cleanOptions
	}
	opts := schema.DefaultCleanOptions()
	opts.GetAutoValues = false
	return opts
}

// Validate cleans doc, validates it and replaces the status. Errors from
// the schema are returned as is and leave the status untouched.
// Calls on one Validation are serialized; Validations sharing a named
// context must not run concurrently, see WithNewContext.
func (v *Validation) Validate(doc map[string]any) (Status, error) {
	start := time.Now()

	cleaned, err := v.schema.Clean(doc, v.CleanOptions())
	if err != nil {
		return v.Status(), err
	}

	v.run.Lock()
	isValid := v.context.Validate(cleaned)
	messages := make(map[string]Message)
	for _, e := range v.context.ValidationErrors() {
		messages[e.Key] = Message{
			ValidationError: e,
			IsValid:         false,
			Message:         v.context.KeyErrorMessage(e.Key),
		}
	}
	v.run.Unlock()

	fields := make(map[string]Field, len(cleaned))
	for key, value := range cleaned {
		_, invalid := messages[key]
		fields[key] = Field{IsValid: !invalid, Value: value}
	}

	status := v.newStatus()
	status.Validated = true
	status.IsValid = isValid
	status.Fields = fields
	status.Messages = messages

	v.mu.Lock()
	v.status = status
	v.mu.Unlock()
	status = status.clone()

	invalidFields := make([]string, 0, len(messages))
	for key := range messages {
		invalidFields = append(invalidFields, key)
	}
	sort.Strings(invalidFields)

	v.logger.Debug("document validated",
		"schema", v.name,
		"context", v.contextName,
		"valid", isValid,
		"invalid_fields", invalidFields,
	)

	if v.hooks.OnValidated != nil {
		v.hooks.OnValidated(&Event{
			Timestamp:     start,
			Schema:        v.name,
			Context:       v.contextName,
			IsValid:       isValid,
			InvalidFields: invalidFields,
			Duration:      time.Since(start),
		})
	}

	return status, nil
}

// IsFieldValid reports the validity of name in the latest status. known is
// false when the field is absent from it.
func (v *Validation) IsFieldValid(name string) (valid, known bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	f, ok := v.status.Fields[name]
	if !ok {
		return false, false
	}
	return f.IsValid, true
}

// Status returns a copy of the latest status.
func (v *Validation) Status() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status.clone()
}

func (v *Validation) newStatus() Status {
	return Status{
		Fields:       map[string]Field{},
		Messages:     map[string]Message{},
		IsFieldValid: v.IsFieldValid,
	}
}
