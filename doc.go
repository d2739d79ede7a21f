/*
Package formcheck validates form-style documents against named schemas.

Schemas come from three dialects (OpenAPI schema objects, JSON Schema and a
compact type map), are registered by name and are shared through a
registry. A validation cleans the submitted document, validates it and
keeps a per-field status for UI code. Card number, expiry and CVV checks are
available to every dialect as string formats.

# Usage

	eng, err := formcheck.New(ctx, formcheck.WithStore(file.New("schemas")))
	if err != nil {
		log.Fatal(err)
	}

	_, err = eng.Register(ctx, "payment", []byte(`
	type: object
	required: [number, cvv]
	properties:
	  number: {type: string, format: card-number}
	  cvv:    {type: string, format: card-cvv}
	`))
	if err != nil {
		log.Fatal(err)
	}

	status, err := eng.Validate("payment", map[string]any{"number": "4111 1111"})
	if err != nil {
		log.Fatal(err)
	}
	for key, msg := range status.Messages {
		fmt.Println(key, msg.Message)
	}

Packages:

  - pkg/schema: the schema contract, cleaning and the native type map.
  - pkg/schema/openapi, pkg/schema/jsonschema: library-backed dialects.
  - pkg/registry: named schema tables.
  - pkg/validation: the validation adapter and its status.
  - pkg/card: Luhn and card field predicates.
  - pkg/adapters: memory, file and Redis document stores.
  - pkg/observability: Prometheus metrics hooks.
*/
package formcheck
