package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/formcheck/pkg/card"
)

// Type checks a single field value.
type Type interface {
	// Name is the type as written in a type map ("int", "[string]", "card-cvv").
	Name() string
	Validate(value any) error
}

// kinded is implemented by types the cleaner knows how to convert input for.
type kinded interface {
	kinds() (kinds, itemKinds []string)
}

type builtin struct {
	name   string
	kind   string
	accept func(any) bool
}

func (b *builtin) Name() string { return b.name }

func (b *builtin) Validate(value any) error {
	if !b.accept(value) {
		return fmt.Errorf("expected %s, got %T", b.name, value)
	}
	return nil
}

func (b *builtin) kinds() ([]string, []string) { return []string{b.kind}, nil }

var (
	stringType = &builtin{name: "string", kind: KindString, accept: func(v any) bool {
		_, ok := v.(string)
		return ok
	}}
	intType = &builtin{name: "int", kind: KindInteger, accept: func(v any) bool {
		switch n := v.(type) {
		case int, int8, int16, int32, int64:
			return true
		case float64:
			// JSON numbers decode as float64.
			return n == float64(int64(n))
		}
		return false
	}}
	floatType = &builtin{name: "float", kind: KindNumber, accept: func(v any) bool {
		switch v.(type) {
		case float32, float64, int, int8, int16, int32, int64:
			return true
		}
		return false
	}}
	boolType = &builtin{name: "bool", kind: KindBoolean, accept: func(v any) bool {
		_, ok := v.(bool)
		return ok
	}}
)

// String accepts strings.
func String() Type { return stringType }

// Int accepts Go integers and whole float64 values.
func Int() Type { return intType }

// Float accepts any Go number.
func Float() Type { return floatType }

// Bool accepts booleans.
func Bool() Type { return boolType }

type listType struct {
	elem Type
}

// Slice accepts slices and arrays whose every element is of type elem.
func Slice(elem Type) Type {
	return &listType{elem: elem}
}

func (l *listType) Name() string { return "[" + l.elem.Name() + "]" }

func (l *listType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected %s, got %T", l.Name(), value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := l.elem.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (l *listType) kinds() ([]string, []string) {
	elem, _ := kindsOf(l.elem)
	return []string{KindArray}, elem
}

// formatType is a named check layered over an optional kind. Its failures
// are reported as format errors.
type formatType struct {
	name  string
	kind  string
	check func(any) error
}

func (f *formatType) Name() string { return f.name }

func (f *formatType) Validate(value any) error { return f.check(value) }

func (f *formatType) kinds() ([]string, []string) {
	if f.kind == "" {
		return nil, nil
	}
	return []string{f.kind}, nil
}

// Custom returns a type named name that runs check. Values are not
// converted before the check.
func Custom(name string, check func(any) error) Type {
	return &formatType{name: name, check: check}
}

// CustomKind is Custom for values of a known kind (one of the Kind*
// constants), letting Clean convert input before check runs.
func CustomKind(name, kind string, check func(any) error) Type {
	return &formatType{name: name, kind: kind, check: check}
}

// Predicate wraps a boolean check as a custom string type.
func Predicate(name string, ok func(any) bool) Type {
	return CustomKind(name, KindString, func(v any) error {
		if !ok(v) {
			return fmt.Errorf("does not match format %q", name)
		}
		return nil
	})
}

func isFormat(t Type) bool {
	_, ok := t.(*formatType)
	return ok
}

// namedTypes resolves the scalar names of a type map.
var namedTypes = func() map[string]Type {
	types := map[string]Type{
		"string": stringType,
		"int":    intType,
		"float":  floatType,
		"bool":   boolType,
	}
	for name, check := range card.Formats() {
		types[name] = Predicate(name, check)
	}
	return types
}()

// ParseType resolves a type-map type string: a built-in ("string", "int",
// "float", "bool"), a card format ("card-number", ...) or a bracketed list
// of either ("[string]", "[[int]]").
func ParseType(typeStr string) (Type, error) {
	if inner, ok := strings.CutPrefix(typeStr, "["); ok {
		if elem, ok := strings.CutSuffix(inner, "]"); ok && elem != "" {
			t, err := ParseType(elem)
			if err != nil {
				return nil, err
			}
			return Slice(t), nil
		}
	}

	if t, ok := namedTypes[typeStr]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unsupported type: %s", typeStr)
}

// kindsOf maps a Type onto the kinds the cleaner converts to. Types outside
// this package are never converted.
func kindsOf(t Type) (kinds, itemKinds []string) {
	if k, ok := t.(kinded); ok {
		return k.kinds()
	}
	return nil, nil
}
