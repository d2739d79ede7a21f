package validation

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/formcheck/pkg/schema"
)

// Field is the state of one cleaned document key.
type Field struct {
	IsValid bool `json:"isValid"`
	Value   any  `json:"value"`
}

// Message is an error entry enriched with its display message.
type Message struct {
	schema.ValidationError
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// Status is the outcome of the latest Validate call. The zero value is the
// unvalidated state.
type Status struct {
	Validated bool
	IsValid   bool
	Fields    map[string]Field
	Messages  map[string]Message

	// IsFieldValid is bound to the Validation that produced the status and
	// always reads its current state.
	IsFieldValid func(name string) (valid, known bool)
}

type statusJSON struct {
	IsValid  *bool              `json:"isValid"`
	Fields   map[string]Field   `json:"fields"`
	Messages map[string]Message `json:"messages"`
}

// MarshalJSON renders isValid as null until the first validation.
func (s Status) MarshalJSON() ([]byte, error) {
	out := statusJSON{
		Fields:   s.Fields,
		Messages: s.Messages,
	}
	if out.Fields == nil {
		out.Fields = map[string]Field{}
	}
	if out.Messages == nil {
		out.Messages = map[string]Message{}
	}
	if s.Validated {
		valid := s.IsValid
		out.IsValid = &valid
	}
	return json.Marshal(out)
}

// clone copies the field and message maps so callers cannot reach the
// Validation's own state through a snapshot. Values are shared.
func (s Status) clone() Status {
	out := s
	out.Fields = make(map[string]Field, len(s.Fields))
	for k, f := range s.Fields {
		out.Fields[k] = f
	}
	out.Messages = make(map[string]Message, len(s.Messages))
	for k, m := range s.Messages {
		out.Messages[k] = m
	}
	return out
}

// Values returns the cleaned value of every field.
func (s Status) Values() map[string]any {
	values := make(map[string]any, len(s.Fields))
	for key, f := range s.Fields {
		values[key] = f.Value
	}
	return values
}

// Decode copies the cleaned field values into out, a pointer to a struct or
// map. Struct fields are matched by their json tag.
func (s Status) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(s.Values())
}

// Document turns a struct (json tags) or map into a document for Validate.
func Document(v any) (map[string]any, error) {
	doc := map[string]any{}
	if v == nil {
		return doc, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(v); err != nil {
		return nil, err
	}
	return doc, nil
}
