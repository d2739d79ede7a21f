package registry

import (
	"fmt"

	"github.com/aretw0/formcheck/pkg/schema"
)

// Default is the process-wide table. Its methods read and write it directly.
var Default = New()

// RegisterSchema adds s to Default under name. Both arguments are untyped so
// values decoded from configuration or scripts can be passed straight in.
// A nil schema is accepted.
func RegisterSchema(name any, s any) error {
	key, ok := name.(string)
	if !ok {
		return fmt.Errorf("%w: A name string is required for the first arg of registerSchema", ErrInvalidArgument)
	}

	var sch schema.Schema
	if s != nil {
		sch, ok = s.(schema.Schema)
		if !ok {
			return fmt.Errorf("%w: A schema object is required for the second arg of registerSchema", ErrInvalidArgument)
		}
	}
	return Default.Register(key, sch)
}

// Get returns the schema registered in Default under name.
func Get(name string) (schema.Schema, bool) {
	return Default.Get(name)
}
