package jsonschema

import (
	"github.com/xeipuuv/gojsonschema"

	"github.com/aretw0/formcheck/pkg/schema"
)

type validationContext struct {
	schema.ErrorList
	compiled *gojsonschema.Schema
}

func (c *validationContext) Validate(doc map[string]any) bool {
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := c.compiled.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		c.Reset([]schema.ValidationError{{Type: schema.ErrorType, Reason: err.Error()}})
		return false
	}

	var errs []schema.ValidationError
	for _, re := range result.Errors() {
		errs = append(errs, convertError(re))
	}
	c.Reset(errs)
	return result.Valid()
}

func convertError(re gojsonschema.ResultError) schema.ValidationError {
	out := schema.ValidationError{
		Key:    firstSegment(re.Field()),
		Type:   errorType(re.Type()),
		Reason: re.Description(),
	}
	if out.Type == schema.ErrorRequired {
		// required errors are reported on the parent object
		if prop, ok := re.Details()["property"].(string); ok && out.Key == "" {
			out.Key = prop
		}
		return out
	}
	out.Value = re.Value()
	return out
}

func errorType(t string) string {
	switch t {
	case "required":
		return schema.ErrorRequired
	case "invalid_type":
		return schema.ErrorType
	case "format":
		return schema.ErrorFormat
	default:
		return schema.ErrorConstraint
	}
}
