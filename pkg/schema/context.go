package schema

import (
	"fmt"
	"sync"
)

// LabelFunc returns the display label of a field key.
type LabelFunc func(key string) string

// MessageFunc builds the message shown for a validation error.
type MessageFunc func(label string, e ValidationError) string

// DefaultMessage renders "<Label> is required" for missing fields and
// "<Label> is invalid: <reason>" otherwise.
func DefaultMessage(label string, e ValidationError) string {
	if e.Type == ErrorRequired {
		return fmt.Sprintf("%s is required", label)
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s is invalid", label)
	}
	return fmt.Sprintf("%s is invalid: %s", label, e.Reason)
}

// ErrorList holds the error list of a validation context between runs.
// Adapters embed it to implement ValidationErrors and KeyErrorMessage.
// The zero value is ready to use and labels keys with Humanize.
type ErrorList struct {
	Label   LabelFunc
	Message MessageFunc

	mu   sync.RWMutex
	list []ValidationError
}

// Reset replaces the list with errs.
func (l *ErrorList) Reset(errs []ValidationError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list = errs
}

// ValidationErrors returns a copy of the current list.
func (l *ErrorList) ValidationErrors() []ValidationError {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ValidationError, len(l.list))
	copy(out, l.list)
	return out
}

// KeyErrorMessage returns the message of the first error reported for key.
func (l *ErrorList) KeyErrorMessage(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.list {
		if e.Key != key {
			continue
		}
		label := Humanize(key)
		if l.Label != nil {
			label = l.Label(key)
		}
		if l.Message != nil {
			return l.Message(label, e)
		}
		return DefaultMessage(label, e)
	}
	return ""
}

// ContextCache hands out one context per name.
type ContextCache struct {
	mu       sync.Mutex
	contexts map[string]Context
}

// Get returns the context cached under name, creating it with build on first use.
func (c *ContextCache) Get(name string, build func() Context) Context {
	if name == "" {
		name = DefaultContextName
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.contexts == nil {
		c.contexts = make(map[string]Context)
	}
	ctx, ok := c.contexts[name]
	if !ok {
		ctx = build()
		c.contexts[name] = ctx
	}
	return ctx
}
