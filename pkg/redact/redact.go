// Package redact masks sensitive values, such as card numbers and CVVs,
// before documents or validation reports leave the process.
package redact

import (
	"fmt"
	"regexp"

	"github.com/aretw0/formcheck/pkg/validation"
)

// Mask replaces every redacted value.
const Mask = "***"

// DefaultPatterns match the keys of the card formats and common secrets.
var DefaultPatterns = []string{`(?i)card`, `(?i)cvv|cvc`, `(?i)password|secret`}

// Masker masks the values of keys matching any of its patterns.
type Masker struct {
	patterns []*regexp.Regexp
}

// New compiles patterns. With no patterns DefaultPatterns are used.
func New(patterns ...string) (*Masker, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	m := &Masker{patterns: make([]*regexp.Regexp, len(patterns))}
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		m.patterns[i] = re
	}
	return m, nil
}

// Matches reports whether key is sensitive.
func (m *Masker) Matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

// Document returns a copy of doc with sensitive keys masked, nested
// mappings and lists included. doc itself is left untouched.
func (m *Masker) Document(doc map[string]any) map[string]any {
	out, _ := m.mapping(doc)
	return out
}

// Status returns a copy of s whose sensitive field values and error values
// are masked. A field holding a sensitive key anywhere below it counts as
// sensitive, so its error value is masked whole. Validity and messages are
// kept.
func (m *Masker) Status(s validation.Status) validation.Status {
	out := s
	sensitive := make(map[string]bool)

	out.Fields = make(map[string]validation.Field, len(s.Fields))
	for k, f := range s.Fields {
		if m.Matches(k) {
			f.Value = Mask
			sensitive[k] = true
		} else {
			var masked bool
			f.Value, masked = m.value(f.Value)
			sensitive[k] = masked
		}
		out.Fields[k] = f
	}

	out.Messages = make(map[string]validation.Message, len(s.Messages))
	for k, msg := range s.Messages {
		if msg.Value != nil && (m.Matches(k) || sensitive[k] || m.holdsSensitive(msg.Value)) {
			msg.Value = Mask
		}
		out.Messages[k] = msg
	}
	return out
}

func (m *Masker) holdsSensitive(v any) bool {
	_, masked := m.value(v)
	return masked
}

// value masks v, reporting whether anything below it was sensitive.
func (m *Masker) value(v any) (any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return m.mapping(t)
	case []any:
		out := make([]any, len(t))
		masked := false
		for i, item := range t {
			var hit bool
			out[i], hit = m.value(item)
			masked = masked || hit
		}
		return out, masked
	default:
		return v, false
	}
}

func (m *Masker) mapping(doc map[string]any) (map[string]any, bool) {
	out := make(map[string]any, len(doc))
	masked := false
	for k, v := range doc {
		if m.Matches(k) {
			out[k] = Mask
			masked = true
			continue
		}
		var hit bool
		out[k], hit = m.value(v)
		masked = masked || hit
	}
	return out, masked
}
