package schema

import "sort"

// validate checks if data conforms to the object and returns every failure,
// ordered by field name.
func (o *Object) validate(data map[string]any) []ValidationError {
	if len(o.fields) == 0 {
		// No fields = no validation
		return nil
	}

	keys := make([]string, 0, len(o.fields))
	for key := range o.fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []ValidationError
	for _, fieldName := range keys {
		field := o.fields[fieldName]
		value, exists := data[fieldName]
		if !exists || value == nil {
			if field.Optional {
				continue
			}
			errs = append(errs, ValidationError{
				Key:    fieldName,
				Type:   ErrorRequired,
				Reason: "required",
			})
			continue
		}

		// Validate the value against the type
		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, ValidationError{
				Key:    fieldName,
				Type:   errorTypeOf(field.Type),
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	return errs
}

func errorTypeOf(t Type) string {
	if isFormat(t) {
		return ErrorFormat
	}
	return ErrorType
}

// Validate checks data against s with a fresh context and returns an
// *AggregateError with all failures, or nil.
func Validate(s Schema, data map[string]any) error {
	ctx := s.NewContext()
	if ctx.Validate(data) {
		return nil
	}
	return Errors(ctx.ValidationErrors())
}
