package validation_test

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/formcheck/pkg/schema"
	"github.com/aretw0/formcheck/pkg/validation"
)

func signupSchema(t *testing.T) *schema.Object {
	t.Helper()
	s, err := schema.CompileObject([]byte(`
email: string
age: int?
newsletter:
  type: bool
  optional: true
  default: false
`))
	require.NoError(t, err)
	return s.(*schema.Object)
}

func TestNew(t *testing.T) {
	_, err := validation.New(nil)
	assert.ErrorIs(t, err, validation.ErrNilSchema)

	_, err = validation.New(signupSchema(t), validation.WithPick("missing"))
	assert.ErrorIs(t, err, schema.ErrUnknownField)
}

func TestUnvalidatedStatus(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	status := v.Status()
	assert.False(t, status.Validated)
	assert.Empty(t, status.Fields)
	assert.Empty(t, status.Messages)

	data, err := json.Marshal(status)
	require.NoError(t, err)
	assert.JSONEq(t, `{"isValid": null, "fields": {}, "messages": {}}`, string(data))

	_, known := v.IsFieldValid("email")
	assert.False(t, known)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	status, err := v.Validate(map[string]any{"age": "42"})
	require.NoError(t, err)

	assert.True(t, status.Validated)
	assert.False(t, status.IsValid)

	_, known := v.IsFieldValid("email")
	assert.False(t, known, "absent fields are unknown")
	assert.NotContains(t, status.Fields, "email")

	require.Contains(t, status.Messages, "email")
	msg := status.Messages["email"]
	assert.False(t, msg.IsValid)
	assert.Equal(t, schema.ErrorRequired, msg.Type)
	assert.Equal(t, "Email is required", msg.Message)

	valid, known := v.IsFieldValid("age")
	assert.True(t, known)
	assert.True(t, valid)
	assert.Equal(t, int64(42), status.Fields["age"].Value, "cleaning converts before validation")
}

func TestValidate_InvalidField(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	status, err := v.Validate(map[string]any{"email": "a@b.c", "age": "old"})
	require.NoError(t, err)
	assert.False(t, status.IsValid)

	valid, known := status.IsFieldValid("age")
	assert.True(t, known)
	assert.False(t, valid)
	assert.Equal(t, "old", status.Fields["age"].Value)
	assert.Equal(t, schema.ErrorType, status.Messages["age"].Type)

	valid, known = status.IsFieldValid("email")
	assert.True(t, known)
	assert.True(t, valid)
}

func TestValidate_ReplacesStatus(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	first, err := v.Validate(map[string]any{"age": "x"})
	require.NoError(t, err)
	require.Len(t, first.Messages, 2)

	second, err := v.Validate(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	assert.True(t, second.IsValid)
	assert.Empty(t, second.Messages)
	assert.Equal(t, map[string]validation.Field{"email": {IsValid: true, Value: "a@b.c"}}, second.Fields)

	_, known := first.IsFieldValid("age")
	assert.False(t, known, "bound IsFieldValid reads the current status")

	assert.Len(t, first.Messages, 2, "earlier snapshots are not mutated")
}

func TestCleanOptions(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	opts := v.CleanOptions()
	assert.False(t, opts.GetAutoValues)
	assert.True(t, opts.Filter)
	assert.True(t, opts.AutoConvert)

	status, err := v.Validate(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	assert.NotContains(t, status.Fields, "newsletter")

	custom := schema.DefaultCleanOptions()
	v, err = validation.New(signupSchema(t), validation.WithCleanOptions(custom))
	require.NoError(t, err)
	assert.Equal(t, custom, v.CleanOptions())

	status, err = v.Validate(map[string]any{"email": "a@b.c", "junk": 1})
	require.NoError(t, err)
	assert.Equal(t, false, status.Fields["newsletter"].Value)
	assert.NotContains(t, status.Fields, "junk")
}

func TestWithPick(t *testing.T) {
	v, err := validation.New(signupSchema(t), validation.WithPick("age"))
	require.NoError(t, err)

	status, err := v.Validate(map[string]any{"age": 3})
	require.NoError(t, err)
	assert.True(t, status.IsValid, "email is not part of the picked schema")
}

func TestWithContextName(t *testing.T) {
	s := signupSchema(t)
	v, err := validation.New(s, validation.WithContextName("signup"))
	require.NoError(t, err)
	assert.Same(t, s.NamedContext("signup"), v.Context())

	v, err = validation.New(s)
	require.NoError(t, err)
	assert.Same(t, s.NamedContext(schema.DefaultContextName), v.Context())
}

func TestWithNewContext(t *testing.T) {
	s := signupSchema(t)

	v, err := validation.New(s, validation.WithNewContext())
	require.NoError(t, err)
	assert.NotSame(t, s.NamedContext(schema.DefaultContextName), v.Context())

	v, err = validation.New(s, validation.WithNewContext(), validation.WithContextName("signup"))
	require.NoError(t, err)
	assert.Same(t, s.NamedContext("signup"), v.Context(), "a later context name wins")
}

func TestValidate_ConcurrentCalls(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				doc := map[string]any{"email": "a@b.c"}
				if (i+j)%2 == 0 {
					doc = map[string]any{"age": "x"}
				}
				status, err := v.Validate(doc)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, status.IsValid, len(status.Messages) == 0)
			}
		}(i)
	}
	wg.Wait()
}

func TestStatus_SnapshotsAreCopies(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	returned, err := v.Validate(map[string]any{"email": "a@b.c"})
	require.NoError(t, err)
	returned.Fields["email"] = validation.Field{IsValid: false}
	delete(returned.Messages, "email")

	snapshot := v.Status()
	snapshot.Fields["email"] = validation.Field{IsValid: false}
	snapshot.Messages["email"] = validation.Message{}

	valid, known := v.IsFieldValid("email")
	assert.True(t, known)
	assert.True(t, valid, "mutating a snapshot does not change the validation")
	assert.Empty(t, v.Status().Messages)
}

func TestHooks(t *testing.T) {
	var events []*validation.Event
	record := validation.Hooks{OnValidated: func(e *validation.Event) { events = append(events, e) }}

	v, err := validation.New(signupSchema(t),
		validation.WithName("signup"),
		validation.WithHooks(record),
		validation.WithHooks(record),
	)
	require.NoError(t, err)

	_, err = v.Validate(map[string]any{"age": "x"})
	require.NoError(t, err)

	require.Len(t, events, 2, "hooks chain")
	assert.Equal(t, "signup", events[0].Schema)
	assert.Equal(t, schema.DefaultContextName, events[0].Context)
	assert.False(t, events[0].IsValid)
	assert.Equal(t, []string{"age", "email"}, events[0].InvalidFields)
}

func TestStatusJSON(t *testing.T) {
	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)

	status, err := v.Validate(map[string]any{"age": "7"})
	require.NoError(t, err)

	data, err := json.Marshal(status)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"isValid": false,
		"fields": {"age": {"isValid": true, "value": 7}},
		"messages": {"email": {"name": "email", "type": "required", "reason": "required", "isValid": false, "message": "Email is required"}}
	}`, string(data))
}

type signup struct {
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
}

func TestDecodeAndDocument(t *testing.T) {
	doc, err := validation.Document(signup{Email: " a@b.c ", Age: 30})
	require.NoError(t, err)
	assert.Equal(t, " a@b.c ", doc["email"])

	v, err := validation.New(signupSchema(t))
	require.NoError(t, err)
	status, err := v.Validate(doc)
	require.NoError(t, err)
	require.True(t, status.IsValid)

	var out signup
	require.NoError(t, status.Decode(&out))
	assert.Equal(t, signup{Email: "a@b.c", Age: 30}, out)

	empty, err := validation.Document(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

var errBroken = errors.New("broken schema")

type brokenSchema struct{ schema.Schema }

func (brokenSchema) Clean(map[string]any, schema.CleanOptions) (map[string]any, error) {
	return nil, errBroken
}

func TestValidate_CleanErrorKeepsStatus(t *testing.T) {
	base := signupSchema(t)
	v, err := validation.New(brokenSchema{Schema: base})
	require.NoError(t, err)

	_, err = v.Validate(map[string]any{"email": "a@b.c"})
	assert.ErrorIs(t, err, errBroken)
	assert.False(t, v.Status().Validated)
}
