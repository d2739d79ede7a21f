/*
Package validation drives a schema for form-style code: it cleans the
submitted document, validates it and keeps a per-field status that UI code
can render.

	v, err := validation.New(form, validation.WithPick("email"))
	if err != nil {
		return err
	}
	status, err := v.Validate(input)
	if err != nil {
		return err
	}
	if !status.IsValid {
		fmt.Println(status.Messages["email"].Message)
	}

Each Validate call replaces the status wholesale. Keys missing from the
cleaned document never appear in Fields, so IsFieldValid reports them as
unknown; their required errors are still listed in Messages.
*/
package validation
