// Package schema defines the contract shared by every schema implementation
// and a native object schema built on a small type system.
//
// A Schema cleans documents, narrows itself with Pick and hands out
// validation contexts. A Context validates a document and keeps the errors of
// its last run so callers can ask for per-key messages:
//
//	form, err := schema.ParseTypeMap(map[string]string{
//	    "number": "card-number",
//	    "cvv":    "card-cvv",
//	    "note":   "string?",
//	})
//
//	doc, _ := form.Clean(input, schema.DefaultCleanOptions())
//	ctx := form.NamedContext("checkout")
//	if !ctx.Validate(doc) {
//	    fmt.Println(ctx.KeyErrorMessage("cvv")) // "Cvv is invalid: ..."
//	}
//
// Type-map documents (JSON or YAML) are compiled with ObjectCompiler. The
// openapi and jsonschema subpackages provide compilers for richer dialects.
package schema
