package openapi

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/formcheck/pkg/schema"
)

type validationContext struct {
	schema.ErrorList
	def *openapi3.Schema
}

func (c *validationContext) Validate(doc map[string]any) bool {
	value, err := normalize(doc)
	if err != nil {
		c.Reset([]schema.ValidationError{{Type: schema.ErrorType, Reason: err.Error()}})
		return false
	}

	err = c.def.VisitJSON(value, openapi3.MultiErrors(), openapi3.EnableFormatValidation())
	errs := convertErrors(err)
	c.Reset(errs)
	return len(errs) == 0
}

// normalize turns doc into the plain JSON values VisitJSON expects.
func normalize(doc map[string]any) (any, error) {
	if doc == nil {
		doc = map[string]any{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func convertErrors(err error) []schema.ValidationError {
	if err == nil {
		return nil
	}
	var out []schema.ValidationError
	for _, e := range flatten(err) {
		out = append(out, convertError(e))
	}
	return out
}

func flatten(err error) []error {
	var me openapi3.MultiError
	if errors.As(err, &me) {
		var out []error
		for _, e := range me {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

var missingProperty = regexp.MustCompile(`property "([^"]+)" is missing`)

func convertError(err error) schema.ValidationError {
	var se *openapi3.SchemaError
	if !errors.As(err, &se) {
		return schema.ValidationError{Type: schema.ErrorUnknown, Reason: err.Error()}
	}

	out := schema.ValidationError{
		Type:   errorType(se.SchemaField),
		Reason: se.Reason,
	}
	if pointer := se.JSONPointer(); len(pointer) > 0 {
		out.Key = pointer[0]
	}

	if out.Type == schema.ErrorRequired {
		if out.Key == "" {
			if m := missingProperty.FindStringSubmatch(se.Reason); m != nil {
				out.Key = m[1]
			}
		}
		return out
	}
	out.Value = se.Value
	return out
}

func errorType(field string) string {
	switch field {
	case "required":
		return schema.ErrorRequired
	case "type", "nullable":
		return schema.ErrorType
	case "format":
		return schema.ErrorFormat
	case "":
		return schema.ErrorUnknown
	default:
		return schema.ErrorConstraint
	}
}
