package openapi

import (
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/aretw0/formcheck/pkg/card"
)

var formatsOnce sync.Once

// registerFormats defines the card formats as string formats. kin-openapi
// keeps format validators in a package-level table.
func registerFormats() {
	formatsOnce.Do(func() {
		for name, check := range card.Formats() {
			name, check := name, check
			openapi3.DefineStringFormatValidator(name, openapi3.NewCallbackValidator(func(value string) error {
				if !check(value) {
					return fmt.Errorf("does not match format %q", name)
				}
				return nil
			}))
		}
	})
}
