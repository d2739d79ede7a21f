package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestObject() *Object {
	return NewObject(map[string]Field{
		"api_key": {Type: String()},
		"retries": {Type: Int()},
		"timeout": {Type: Float(), Optional: true},
		"tags":    {Type: Slice(String()), Optional: true},
	})
}

func TestValidate_Success(t *testing.T) {
	err := Validate(newTestObject(), map[string]any{
		"api_key": "secret123",
		"retries": 3,
		"timeout": 30.5,
		"tags":    []string{"prod", "critical"},
	})
	assert.NoError(t, err)
}

func TestValidate_MissingField(t *testing.T) {
	err := Validate(newTestObject(), map[string]any{"api_key": "secret123"})
	require.Error(t, err)

	var aggr *AggregateError
	require.ErrorAs(t, err, &aggr)
	require.Len(t, aggr.Errors, 1)

	var vErr *ValidationError
	require.ErrorAs(t, aggr.Errors[0], &vErr)
	assert.Equal(t, "retries", vErr.Key)
	assert.Equal(t, ErrorRequired, vErr.Type)
}

func TestValidate_NilValueCountsAsMissing(t *testing.T) {
	ctx := newTestObject().NewContext()
	ok := ctx.Validate(map[string]any{"api_key": nil, "retries": 1, "timeout": nil})
	require.False(t, ok)

	errs := ctx.ValidationErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "api_key", errs[0].Key)
}

func TestValidate_MultipleErrorsOrdered(t *testing.T) {
	ctx := newTestObject().NewContext()
	ok := ctx.Validate(map[string]any{
		"retries": "not an int",
		"timeout": "not a float",
	})
	require.False(t, ok)

	errs := ctx.ValidationErrors()
	require.Len(t, errs, 3)
	assert.Equal(t, "api_key", errs[0].Key)
	assert.Equal(t, ErrorRequired, errs[0].Type)
	assert.Equal(t, "retries", errs[1].Key)
	assert.Equal(t, ErrorType, errs[1].Type)
	assert.Equal(t, "not an int", errs[1].Value)
	assert.Equal(t, "timeout", errs[2].Key)
}

func TestValidate_FormatErrors(t *testing.T) {
	obj, err := ParseTypeMap(map[string]string{"cvv": "card-cvv"})
	require.NoError(t, err)

	ctx := obj.NewContext()
	require.False(t, ctx.Validate(map[string]any{"cvv": "12"}))
	assert.Equal(t, ErrorFormat, ctx.ValidationErrors()[0].Type)
	assert.Equal(t, "Cvv is invalid: does not match format \"card-cvv\"", ctx.KeyErrorMessage("cvv"))
}

func TestValidate_EmptyObject(t *testing.T) {
	assert.NoError(t, Validate(NewObject(nil), map[string]any{"api_key": "x"}))
}

func TestContext_ErrorsReplacedEachRun(t *testing.T) {
	ctx := newTestObject().NewContext()
	require.False(t, ctx.Validate(map[string]any{}))
	assert.Len(t, ctx.ValidationErrors(), 2)
	assert.Equal(t, "Api key is required", ctx.KeyErrorMessage("api_key"))

	require.True(t, ctx.Validate(map[string]any{"api_key": "k", "retries": 2}))
	assert.Empty(t, ctx.ValidationErrors())
	assert.Empty(t, ctx.KeyErrorMessage("api_key"))
}

func TestNamedContext(t *testing.T) {
	obj := newTestObject()
	assert.Same(t, obj.NamedContext("default"), obj.NamedContext(""))
	assert.Same(t, obj.NamedContext("signup"), obj.NamedContext("signup"))
	assert.NotSame(t, obj.NamedContext("signup"), obj.NamedContext("default"))
	assert.NotSame(t, obj.NewContext(), obj.NewContext())
}

func TestObject_Pick(t *testing.T) {
	obj := newTestObject()

	picked, err := obj.Pick("api_key")
	require.NoError(t, err)
	ctx := picked.NewContext()
	assert.True(t, ctx.Validate(map[string]any{"api_key": "k", "retries": "ignored"}))

	_, err = obj.Pick("api_key", "unknown")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestObject_Label(t *testing.T) {
	obj := NewObject(map[string]Field{
		"zip": {Type: String(), Label: "Postal code"},
	})
	ctx := obj.NewContext()
	require.False(t, ctx.Validate(nil))
	assert.Equal(t, "Postal code is required", ctx.KeyErrorMessage("zip"))
}

func TestObject_Clean(t *testing.T) {
	obj := NewObject(map[string]Field{
		"name":    {Type: String()},
		"age":     {Type: Int()},
		"active":  {Type: Bool(), Optional: true, Default: true, HasDefault: true},
		"scores":  {Type: Slice(Float()), Optional: true},
		"comment": {Type: String(), Optional: true},
	})
	doc := map[string]any{
		"name":    "  Ada \x00",
		"age":     "36",
		"scores":  "9.5",
		"comment": "   ",
		"extra":   "dropped",
	}

	opts := DefaultCleanOptions()
	cleaned, err := obj.Clean(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "Ada",
		"age":    int64(36),
		"active": true,
		"scores": []any{9.5},
	}, cleaned)
	assert.Equal(t, "36", doc["age"], "input is not modified")

	opts.GetAutoValues = false
	cleaned, err = obj.Clean(doc, opts)
	require.NoError(t, err)
	assert.NotContains(t, cleaned, "active")

	require.NoError(t, Validate(obj, cleaned))
}

func TestValidationError_String(t *testing.T) {
	tests := []struct {
		err  *ValidationError
		want string
	}{
		{
			&ValidationError{Key: "api_key", Type: ErrorRequired},
			`field "api_key": required`,
		},
		{
			&ValidationError{Key: "retries", Reason: "expected int, got string", Value: "invalid"},
			`field "retries": expected int, got string (got string)`,
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestAggregateError(t *testing.T) {
	assert.NoError(t, Errors(nil))

	err := Errors([]ValidationError{
		{Key: "api_key", Type: ErrorRequired},
		{Key: "retries", Reason: "expected int", Value: "invalid"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 validation errors")
	assert.Len(t, ValidationErrors(err), 2)

	single := &ValidationError{Key: "api_key", Type: ErrorRequired}
	assert.Nil(t, ValidationErrors(single))
}
