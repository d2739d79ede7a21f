// Package jsonschema adapts JSON Schema (draft 4 to 7) object schemas to the
// schema contract using gojsonschema.
package jsonschema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/aretw0/formcheck/pkg/card"
	"github.com/aretw0/formcheck/pkg/schema"
)

// Schema is a compiled JSON Schema plus the document it was compiled from.
type Schema struct {
	raw      map[string]any
	compiled *gojsonschema.Schema
	contexts schema.ContextCache
}

var _ schema.Schema = (*Schema)(nil)

// Compiler compiles JSON Schema documents.
var Compiler schema.Compiler = schema.CompilerFunc(func(doc []byte) (schema.Schema, error) {
	return Compile(doc)
})

// Compile parses a JSON or YAML JSON Schema document describing an object.
func Compile(doc []byte) (*Schema, error) {
	raw, err := schema.DecodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
	}
	return New(raw)
}

// New compiles raw. raw is owned by the returned Schema.
func New(raw map[string]any) (*Schema, error) {
	registerFormats()

	if !isObject(raw) {
		return nil, schema.ErrNotObject
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
	}
	return &Schema{raw: raw, compiled: compiled}, nil
}

// Pick returns a schema with only keys in properties and required.
func (s *Schema) Pick(keys ...string) (schema.Schema, error) {
	props := s.properties()
	required := make(map[string]bool)
	for _, key := range s.required() {
		required[key] = true
	}

	pickedProps := make(map[string]any, len(keys))
	var pickedRequired []any
	for _, key := range keys {
		prop, ok := props[key]
		if !ok {
			return nil, fmt.Errorf("pick %q: %w", key, schema.ErrUnknownField)
		}
		pickedProps[key] = prop
		if required[key] {
			pickedRequired = append(pickedRequired, key)
		}
	}
	sort.Slice(pickedRequired, func(i, j int) bool {
		return pickedRequired[i].(string) < pickedRequired[j].(string)
	})

	raw := make(map[string]any, len(s.raw))
	for k, v := range s.raw {
		raw[k] = v
	}
	raw["properties"] = pickedProps
	if len(pickedRequired) > 0 {
		raw["required"] = pickedRequired
	} else {
		delete(raw, "required")
	}
	return New(raw)
}

// NamedContext returns the context shared under name.
func (s *Schema) NamedContext(name string) schema.Context {
	return s.contexts.Get(name, s.NewContext)
}

// NewContext returns a fresh validation context.
func (s *Schema) NewContext() schema.Context {
	return &validationContext{
		ErrorList: schema.ErrorList{Label: s.label},
		compiled:  s.compiled,
	}
}

// Clean normalizes doc using the property types and defaults.
func (s *Schema) Clean(doc map[string]any, opts schema.CleanOptions) (map[string]any, error) {
	switch ap := s.raw["additionalProperties"].(type) {
	case bool:
		if ap {
			opts.Filter = false
		}
	case map[string]any:
		opts.Filter = false
	}

	props := s.properties()
	fields := make(map[string]schema.FieldSpec, len(props))
	for key, v := range props {
		prop, _ := v.(map[string]any)
		spec := schema.FieldSpec{Kinds: kindsOf(prop["type"])}
		if items, ok := prop["items"].(map[string]any); ok {
			spec.ItemKinds = kindsOf(items["type"])
		}
		if def, ok := prop["default"]; ok {
			spec.Default = def
			spec.HasDefault = true
		}
		fields[key] = spec
	}
	return schema.Clean(doc, fields, opts), nil
}

func (s *Schema) properties() map[string]any {
	props, _ := s.raw["properties"].(map[string]any)
	return props
}

func (s *Schema) required() []string {
	list, _ := s.raw["required"].([]any)
	out := make([]string, 0, len(list))
	for _, v := range list {
		if key, ok := v.(string); ok {
			out = append(out, key)
		}
	}
	return out
}

func (s *Schema) label(key string) string {
	if prop, ok := s.properties()[key].(map[string]any); ok {
		if title, ok := prop["title"].(string); ok && title != "" {
			return title
		}
	}
	return schema.Humanize(key)
}

func isObject(raw map[string]any) bool {
	switch t := raw["type"].(type) {
	case string:
		return t == schema.KindObject
	case []any:
		for _, v := range t {
			if v == schema.KindObject {
				return true
			}
		}
		return false
	case nil:
		_, ok := raw["properties"].(map[string]any)
		return ok
	}
	return false
}

func kindsOf(t any) []string {
	switch v := t.(type) {
	case string:
		return []string{v}
	case []any:
		var kinds, tail []string
		for _, item := range v {
			kind, ok := item.(string)
			if !ok {
				continue
			}
			// null is never a conversion target
			if kind == schema.KindNull {
				tail = append(tail, kind)
				continue
			}
			kinds = append(kinds, kind)
		}
		return append(kinds, tail...)
	}
	return nil
}

type formatChecker card.Predicate

func (f formatChecker) IsFormat(input any) bool {
	return f(input)
}

var formatsOnce sync.Once

func registerFormats() {
	formatsOnce.Do(func() {
		for name, check := range card.Formats() {
			gojsonschema.FormatCheckers.Add(name, formatChecker(check))
		}
	})
}

const rootField = "(root)"

// firstSegment returns the top-level key of a gojsonschema field path.
func firstSegment(field string) string {
	if field == "" || field == rootField {
		return ""
	}
	field = strings.TrimPrefix(field, rootField+".")
	if i := strings.IndexByte(field, '.'); i >= 0 {
		return field[:i]
	}
	return field
}
