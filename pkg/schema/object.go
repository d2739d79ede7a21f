package schema

import (
	"fmt"
	"strings"
)

// Field declares one key of an Object schema.
type Field struct {
	Type       Type
	Optional   bool
	Default    any
	HasDefault bool
	Label      string
}

// Object is a schema built from the native type system: a map of field
// names to their expected types.
//
//	form := schema.NewObject(map[string]schema.Field{
//	    "email": {Type: schema.String()},
//	    "tags":  {Type: schema.Slice(schema.String()), Optional: true},
//	})
type Object struct {
	fields   map[string]Field
	contexts ContextCache
}

var _ Schema = (*Object)(nil)

// NewObject creates an Object schema. Fields with a nil Type are ignored.
func NewObject(fields map[string]Field) *Object {
	o := &Object{fields: make(map[string]Field, len(fields))}
	for key, f := range fields {
		if f.Type == nil {
			continue
		}
		o.fields[key] = f
	}
	return o
}

// ParseTypeMap converts a map of field names to type strings into an Object.
// A trailing "?" marks the field optional.
// Example: {"api_key": "string", "retries": "int?"}
func ParseTypeMap(typeMap map[string]string) (*Object, error) {
	fields := make(map[string]Field, len(typeMap))
	for key, typeStr := range typeMap {
		f, err := ParseField(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		fields[key] = f
	}
	return NewObject(fields), nil
}

// ParseField parses a type string with an optional "?" suffix.
func ParseField(typeStr string) (Field, error) {
	typeStr = strings.TrimSpace(typeStr)
	optional := strings.HasSuffix(typeStr, "?")
	t, err := ParseType(strings.TrimSuffix(typeStr, "?"))
	if err != nil {
		return Field{}, err
	}
	return Field{Type: t, Optional: optional}, nil
}

// Fields returns a copy of the declared fields.
func (o *Object) Fields() map[string]Field {
	out := make(map[string]Field, len(o.fields))
	for k, f := range o.fields {
		out[k] = f
	}
	return out
}

// Label returns the declared label of key, or its humanized form.
func (o *Object) Label(key string) string {
	if f, ok := o.fields[key]; ok && f.Label != "" {
		return f.Label
	}
	return Humanize(key)
}

// Pick returns an Object restricted to keys.
func (o *Object) Pick(keys ...string) (Schema, error) {
	fields := make(map[string]Field, len(keys))
	for _, key := range keys {
		f, ok := o.fields[key]
		if !ok {
			return nil, fmt.Errorf("pick %q: %w", key, ErrUnknownField)
		}
		fields[key] = f
	}
	return NewObject(fields), nil
}

// NamedContext returns the context shared under name.
func (o *Object) NamedContext(name string) Context {
	return o.contexts.Get(name, o.NewContext)
}

// NewContext returns a fresh validation context.
func (o *Object) NewContext() Context {
	return &objectContext{
		ErrorList: ErrorList{Label: o.Label},
		object:    o,
	}
}

// Clean normalizes doc against the declared fields.
func (o *Object) Clean(doc map[string]any, opts CleanOptions) (map[string]any, error) {
	specs := make(map[string]FieldSpec, len(o.fields))
	for key, f := range o.fields {
		kinds, itemKinds := kindsOf(f.Type)
		specs[key] = FieldSpec{
			Kinds:      kinds,
			ItemKinds:  itemKinds,
			Default:    f.Default,
			HasDefault: f.HasDefault,
		}
	}
	return Clean(doc, specs, opts), nil
}

type objectContext struct {
	ErrorList
	object *Object
}

func (c *objectContext) Validate(doc map[string]any) bool {
	errs := c.object.validate(doc)
	c.Reset(errs)
	return len(errs) == 0
}
