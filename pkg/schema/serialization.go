package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// fieldDocument is the long form of a field in a type-map document.
type fieldDocument struct {
	Type     string `yaml:"type" json:"type"`
	Optional bool   `yaml:"optional" json:"optional"`
	Default  any    `yaml:"default" json:"default,omitempty"`
	Label    string `yaml:"label" json:"label,omitempty"`
}

// MarshalJSON serializes the object as a map of field names to type strings.
// Fields carrying a default or label use the long form.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	raw := make(map[string]any, len(o.fields))
	for key, f := range o.fields {
		typeStr := f.Type.Name()
		if f.Optional {
			typeStr += "?"
		}
		if !f.HasDefault && f.Label == "" {
			raw[key] = typeStr
			continue
		}
		raw[key] = fieldDocument{
			Type:     f.Type.Name(),
			Optional: f.Optional,
			Default:  f.Default,
			Label:    f.Label,
		}
	}

	return json.Marshal(raw)
}

// UnmarshalJSON deserializes the object from a type-map document.
func (o *Object) UnmarshalJSON(data []byte) error {
	if o == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	parsed, err := decodeTypeMap(data)
	if err != nil {
		return err
	}
	o.fields = parsed.fields
	return nil
}

// CompileObject compiles a type-map document (JSON or YAML). Each key maps
// either to a type string ("string", "int?", "[string]", "card-cvv") or to
// {type, optional, default, label}.
func CompileObject(doc []byte) (Schema, error) {
	return decodeTypeMap(doc)
}

// ObjectCompiler compiles type-map documents.
var ObjectCompiler Compiler = CompilerFunc(CompileObject)

func decodeTypeMap(data []byte) (*Object, error) {
	// YAML is a superset of JSON, so one decoder serves both.
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}

	fields := make(map[string]Field, len(raw))
	for key, node := range raw {
		f, err := decodeField(&node)
		if err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrInvalidDocument, key, err)
		}
		fields[key] = f
	}
	return NewObject(fields), nil
}

func decodeField(node *yaml.Node) (Field, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var typeStr string
		if err := node.Decode(&typeStr); err != nil {
			return Field{}, err
		}
		return ParseField(typeStr)
	case yaml.MappingNode:
		var doc fieldDocument
		if err := node.Decode(&doc); err != nil {
			return Field{}, err
		}
		f, err := ParseField(doc.Type)
		if err != nil {
			return Field{}, err
		}
		f.Optional = f.Optional || doc.Optional
		f.Label = doc.Label
		if doc.Default != nil {
			f.Default = doc.Default
			f.HasDefault = true
		}
		return f, nil
	default:
		return Field{}, fmt.Errorf("expected type string or mapping")
	}
}

// DecodeDocument decodes a JSON or YAML mapping into plain JSON values:
// map[string]any, []any, string, float64, bool and nil.
func DecodeDocument(data []byte) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("empty document")
	}

	encoded, err := json.Marshal(normalizeYAML(raw))
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("document is not a mapping")
	}
	return doc, nil
}

// normalizeYAML rewrites the map[any]any yaml.v3 produces for non-string keys.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeYAML(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeYAML(item)
		}
		return t
	default:
		return v
	}
}
