package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type typeCase struct {
	value   any
	wantErr bool
}

func checkType(t *testing.T, typ Type, cases []typeCase) {
	t.Helper()
	for _, tt := range cases {
		err := typ.Validate(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "%s.Validate(%#v)", typ.Name(), tt.value)
		} else {
			assert.NoError(t, err, "%s.Validate(%#v)", typ.Name(), tt.value)
		}
	}
}

func TestBuiltinTypes(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "string", String().Name())
		checkType(t, String(), []typeCase{
			{"hello", false},
			{"", false},
			{42, true},
			{true, true},
			{nil, true},
		})
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, "int", Int().Name())
		checkType(t, Int(), []typeCase{
			{42, false},
			{int8(42), false},
			{int64(42), false},
			{float64(42), false},
			{42.5, true},
			{"42", true},
			{nil, true},
		})
	})

	t.Run("float", func(t *testing.T) {
		assert.Equal(t, "float", Float().Name())
		checkType(t, Float(), []typeCase{
			{3.14, false},
			{float32(3.14), false},
			{int64(42), false},
			{"3.14", true},
			{true, true},
		})
	})

	t.Run("bool", func(t *testing.T) {
		assert.Equal(t, "bool", Bool().Name())
		checkType(t, Bool(), []typeCase{
			{true, false},
			{false, false},
			{1, true},
			{"true", true},
		})
	})
}

func TestSliceType(t *testing.T) {
	checkType(t, Slice(String()), []typeCase{
		{[]string{"a", "b"}, false},
		{[]string{}, false},
		{[]any{"a", "b"}, false},
		{[]int{1, 2}, true},
		{"not a slice", true},
	})
	checkType(t, Slice(Slice(String())), []typeCase{
		{[][]string{{"a"}, {"b", "c"}}, false},
		{[]any{[]any{"a"}, []any{1}}, true},
	})
}

func TestCustomType(t *testing.T) {
	errOdd := errors.New("not even")
	even := Custom("even", func(v any) error {
		i, ok := v.(int)
		if !ok || i%2 != 0 {
			return errOdd
		}
		return nil
	})

	assert.Equal(t, "even", even.Name())
	checkType(t, even, []typeCase{
		{2, false},
		{1, true},
		{"2", true},
	})

	kinds, _ := kindsOf(even)
	assert.Nil(t, kinds, "plain custom types are not converted")
}

func TestPredicate(t *testing.T) {
	short := Predicate("short", func(v any) bool {
		s, ok := v.(string)
		return ok && len(s) < 4
	})

	require.NoError(t, short.Validate("abc"))
	err := short.Validate("abcd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"short"`)

	kinds, _ := kindsOf(short)
	assert.Equal(t, []string{KindString}, kinds)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantErr  bool
		wantName string
	}{
		{"string", false, "string"},
		{"int", false, "int"},
		{"float", false, "float"},
		{"bool", false, "bool"},
		{"[string]", false, "[string]"},
		{"[[string]]", false, "[[string]]"},
		{"card-number", false, "card-number"},
		{"card-cvv", false, "card-cvv"},
		{"[card-expire-month]", false, "[card-expire-month]"},
		{"invalid", true, ""},
		{"[invalid]", true, ""},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.wantName, typ.Name())
	}
}

func TestCardFormatTypes(t *testing.T) {
	number, err := ParseType("card-number")
	require.NoError(t, err)
	checkType(t, number, []typeCase{
		{"4111111111111111", false},
		{"4111111111111112", true},
		{"4111", true},
	})

	month, err := ParseType("card-expire-month")
	require.NoError(t, err)
	checkType(t, month, []typeCase{
		{"12", false},
		{"123", true},
	})
}

func TestKindsOf(t *testing.T) {
	kinds, items := kindsOf(Slice(Int()))
	assert.Equal(t, []string{KindArray}, kinds)
	assert.Equal(t, []string{KindInteger}, items)

	kinds, items = kindsOf(Float())
	assert.Equal(t, []string{KindNumber}, kinds)
	assert.Nil(t, items)
}
