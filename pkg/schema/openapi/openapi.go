// Package openapi adapts kin-openapi object schemas to the schema contract.
package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/formcheck/pkg/schema"
)

// Schema wraps an OpenAPI schema of type object.
type Schema struct {
	def      *openapi3.Schema
	contexts schema.ContextCache
}

var _ schema.Schema = (*Schema)(nil)

// Compiler compiles OpenAPI schema documents.
var Compiler schema.Compiler = schema.CompilerFunc(func(doc []byte) (schema.Schema, error) {
	return Compile(doc)
})

// Compile parses a JSON or YAML OpenAPI schema object.
func Compile(doc []byte) (*Schema, error) {
	registerFormats()

	data, err := toJSON(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
	}

	def := &openapi3.Schema{}
	if err := json.Unmarshal(data, def); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
	}
	if err := def.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("%w: %v", schema.ErrInvalidDocument, err)
	}
	return New(def)
}

// New wraps def. It fails with schema.ErrNotObject unless def describes an object.
func New(def *openapi3.Schema) (*Schema, error) {
	registerFormats()
	if def == nil || !isObject(def) {
		return nil, schema.ErrNotObject
	}
	return &Schema{def: def}, nil
}

// Definition returns the wrapped schema.
func (s *Schema) Definition() *openapi3.Schema {
	return s.def
}

// Pick returns an object schema with only keys and their required flags.
func (s *Schema) Pick(keys ...string) (schema.Schema, error) {
	picked := openapi3.NewObjectSchema()
	picked.Title = s.def.Title
	picked.AdditionalProperties = s.def.AdditionalProperties

	required := make(map[string]bool, len(s.def.Required))
	for _, key := range s.def.Required {
		required[key] = true
	}

	for _, key := range keys {
		prop, ok := s.def.Properties[key]
		if !ok {
			return nil, fmt.Errorf("pick %q: %w", key, schema.ErrUnknownField)
		}
		picked.Properties[key] = prop
		if required[key] {
			picked.Required = append(picked.Required, key)
		}
	}
	sort.Strings(picked.Required)

	return &Schema{def: picked}, nil
}

// NamedContext returns the context shared under name.
func (s *Schema) NamedContext(name string) schema.Context {
	return s.contexts.Get(name, s.NewContext)
}

// NewContext returns a fresh validation context.
func (s *Schema) NewContext() schema.Context {
	return &validationContext{
		ErrorList: schema.ErrorList{Label: s.label},
		def:       s.def,
	}
}

// Clean normalizes doc using the property types and defaults.
// Unknown keys are kept when the schema allows additional properties.
func (s *Schema) Clean(doc map[string]any, opts schema.CleanOptions) (map[string]any, error) {
	if allowsAdditional(s.def) {
		opts.Filter = false
	}

	fields := make(map[string]schema.FieldSpec, len(s.def.Properties))
	for key, ref := range s.def.Properties {
		if ref == nil || ref.Value == nil {
			fields[key] = schema.FieldSpec{}
			continue
		}
		prop := ref.Value
		spec := schema.FieldSpec{
			Kinds:      kindsOf(prop),
			Default:    prop.Default,
			HasDefault: prop.Default != nil,
		}
		if prop.Items != nil && prop.Items.Value != nil {
			spec.ItemKinds = kindsOf(prop.Items.Value)
		}
		fields[key] = spec
	}

	return schema.Clean(doc, fields, opts), nil
}

func (s *Schema) label(key string) string {
	if ref, ok := s.def.Properties[key]; ok && ref != nil && ref.Value != nil && ref.Value.Title != "" {
		return ref.Value.Title
	}
	return schema.Humanize(key)
}

func isObject(def *openapi3.Schema) bool {
	if def.Type == nil {
		// Untyped schemas with properties are objects in practice.
		return len(def.Properties) > 0
	}
	return def.Type.Is(openapi3.TypeObject)
}

func allowsAdditional(def *openapi3.Schema) bool {
	ap := def.AdditionalProperties
	return (ap.Has != nil && *ap.Has) || ap.Schema != nil
}

func kindsOf(def *openapi3.Schema) []string {
	if def.Type == nil {
		return nil
	}
	var kinds []string
	for _, t := range def.Type.Slice() {
		if t == openapi3.TypeNull {
			continue
		}
		kinds = append(kinds, t)
	}
	if def.Nullable || def.Type.Includes(openapi3.TypeNull) {
		kinds = append(kinds, schema.KindNull)
	}
	return kinds
}

// toJSON accepts JSON or YAML and returns JSON.
func toJSON(doc []byte) ([]byte, error) {
	raw, err := schema.DecodeDocument(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}
