package schema

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/mitchellh/mapstructure"
)

// JSON value kinds used to describe fields to the cleaner.
const (
	KindString  = "string"
	KindInteger = "integer"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindArray   = "array"
	KindObject  = "object"
	KindNull    = "null"
)

// CleanOptions selects the normalization steps applied by Clean.
type CleanOptions struct {
	// Filter drops keys that the schema does not declare.
	Filter bool `json:"filter"`
	// AutoConvert coerces values to the declared kind where possible.
	AutoConvert bool `json:"autoConvert"`
	// TrimStrings trims leading and trailing whitespace.
	TrimStrings bool `json:"trimStrings"`
	// RemoveEmptyStrings drops keys whose value is an empty string.
	RemoveEmptyStrings bool `json:"removeEmptyStrings"`
	// StripControlChars removes control characters other than \n, \t and \r.
	StripControlChars bool `json:"stripControlChars"`
	// GetAutoValues fills missing keys with their declared default.
	GetAutoValues bool `json:"getAutoValues"`
}

// DefaultCleanOptions enables every step.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		Filter:             true,
		AutoConvert:        true,
		TrimStrings:        true,
		RemoveEmptyStrings: true,
		StripControlChars:  true,
		GetAutoValues:      true,
	}
}

// FieldSpec is what the cleaner needs to know about a declared field.
type FieldSpec struct {
	Kinds      []string // accepted kinds, first one is the conversion target
	ItemKinds  []string // element kinds for arrays
	Default    any
	HasDefault bool
}

// Clean returns a normalized copy of doc according to fields and opts.
// doc is never modified; a nil doc yields an empty map.
func Clean(doc map[string]any, fields map[string]FieldSpec, opts CleanOptions) map[string]any {
	out := make(map[string]any, len(doc))

	for key, value := range doc {
		spec, declared := fields[key]
		if opts.Filter && !declared {
			continue
		}

		value = cleanStrings(value, opts)
		if s, ok := value.(string); ok && s == "" && opts.RemoveEmptyStrings {
			continue
		}

		if opts.AutoConvert && declared {
			value = convert(value, spec.Kinds, spec.ItemKinds)
		}
		out[key] = value
	}

	if opts.GetAutoValues {
		for key, spec := range fields {
			if _, ok := out[key]; ok || !spec.HasDefault {
				continue
			}
			out[key] = cloneValue(spec.Default)
		}
	}

	return out
}

// cleanStrings applies the string steps to value and copies nested maps and arrays.
func cleanStrings(value any, opts CleanOptions) any {
	switch v := value.(type) {
	case string:
		if opts.StripControlChars {
			v = stripControl(v)
		}
		if opts.TrimStrings {
			v = strings.TrimSpace(v)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			item = cleanStrings(item, opts)
			if s, ok := item.(string); ok && s == "" && opts.RemoveEmptyStrings {
				continue
			}
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cleanStrings(item, opts)
		}
		return out
	default:
		return value
	}
}

// stripControl removes control characters that would poison logs or terminals.
func stripControl(input string) string {
	// Fast path: if no control chars, return as is.
	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func convert(value any, kinds, itemKinds []string) any {
	if value == nil || len(kinds) == 0 {
		return value
	}

	for _, kind := range kinds {
		if matchesKind(value, kind) {
			if kind == KindArray && len(itemKinds) > 0 {
				return convertItems(value, itemKinds)
			}
			return value
		}
	}

	for _, kind := range kinds {
		if kind == KindArray {
			if len(itemKinds) > 0 {
				return []any{convert(value, itemKinds, nil)}
			}
			return []any{value}
		}
		if out, ok := coerce(value, kind); ok {
			return out
		}
	}
	return value
}

func convertItems(value any, itemKinds []string) any {
	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = convert(rv.Index(i).Interface(), itemKinds, nil)
	}
	return out
}

// maxExactInt bounds the whole floats that convert to int64 without losing
// precision.
const maxExactInt = 1 << 53

// coerce converts scalars with mapstructure's weak decoding rules.
// Values that would silently change meaning are refused.
func coerce(value any, kind string) (any, bool) {
	if isComposite(value) {
		return nil, false
	}

	switch kind {
	case KindString:
		if b, ok := value.(bool); ok {
			return strconv.FormatBool(b), true
		}
		var s string
		if err := mapstructure.WeakDecode(value, &s); err != nil {
			return nil, false
		}
		return s, true

	case KindNumber, KindInteger:
		if _, ok := value.(bool); ok {
			return nil, false
		}
		if s, ok := value.(string); ok && kind == KindInteger {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n, true
			}
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return nil, false
		}
		var f float64
		if err := mapstructure.WeakDecode(value, &f); err != nil {
			return nil, false
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		if kind == KindInteger && f == math.Trunc(f) {
			if math.Abs(f) > maxExactInt {
				return nil, false
			}
			return int64(f), true
		}
		return f, true

	case KindBoolean:
		s, ok := value.(string)
		if !ok {
			return nil, false
		}
		var b bool
		if strings.TrimSpace(s) == "" {
			return nil, false
		}
		if err := mapstructure.WeakDecode(s, &b); err != nil {
			return nil, false
		}
		return b, true
	}

	return nil, false
}

func isComposite(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

func matchesKind(value any, kind string) bool {
	rv := reflect.ValueOf(value)
	switch kind {
	case KindNull:
		return value == nil
	case KindString:
		return rv.Kind() == reflect.String
	case KindBoolean:
		return rv.Kind() == reflect.Bool
	case KindInteger:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			f := rv.Float()
			return f == math.Trunc(f)
		}
	case KindNumber:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return true
		}
	case KindArray:
		return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
	case KindObject:
		return rv.Kind() == reflect.Map
	}
	return false
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
