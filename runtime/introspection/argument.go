package introspection

import (
	"fmt"
	"reflect"
)

// Argument describes a typed, named value: a constructor argument, a
// property or a method parameter or return value.
//
// The reflect.Type is only used for identity and assignability checks;
// values are never read or written through reflection.
type Argument struct {
	name           string
	typ            reflect.Type
	nullable       bool
	annotations    AnnotationMetadata
	typeParameters []Argument
}

// NewArgument creates an argument descriptor
func NewArgument(name string, typ reflect.Type) Argument {
	return Argument{name: name, typ: typ}
}

// ArgumentOf creates an argument descriptor for the type parameter T
func ArgumentOf[T any](name string) Argument {
	return NewArgument(name, reflect.TypeFor[T]())
}

// WithNullable returns a copy of the argument declared nullable
func (a Argument) WithNullable() Argument {
	a.nullable = true
	return a
}

// WithAnnotations returns a copy of the argument carrying the metadata
func (a Argument) WithAnnotations(metadata AnnotationMetadata) Argument {
	a.annotations = metadata
	return a
}

// WithTypeParameters returns a copy of the argument with generic parameters
// such as slice elements or map keys and values.
func (a Argument) WithTypeParameters(params ...Argument) Argument {
	a.typeParameters = append([]Argument(nil), params...)
	return a
}

// Name returns the argument name
func (a Argument) Name() string {
	return a.name
}

// Type returns the declared type
func (a Argument) Type() reflect.Type {
	return a.typ
}

// TypeName returns the declared type as a string, or "any" when untyped
func (a Argument) TypeName() string {
	if a.typ == nil {
		return "any"
	}
	return a.typ.String()
}

// IsDeclaredNullable reports whether nil is an accepted value
func (a Argument) IsDeclaredNullable() bool {
	return a.nullable
}

// AnnotationMetadata returns the argument's annotations
func (a Argument) AnnotationMetadata() AnnotationMetadata {
	return a.annotations
}

// TypeParameters returns the generic parameters of the declared type
func (a Argument) TypeParameters() []Argument {
	return append([]Argument(nil), a.typeParameters...)
}

// Accepts reports whether a non-nil value can be passed where this argument
// is declared. Untyped arguments accept every value.
func (a Argument) Accepts(value any) bool {
	if value == nil || a.typ == nil {
		return true
	}
	return reflect.TypeOf(value).AssignableTo(a.typ)
}

// String returns "type name", e.g. "int x"
func (a Argument) String() string {
	return fmt.Sprintf("%s %s", a.TypeName(), a.name)
}

// ValueOr converts a dispatched argument to T, mapping nil to the zero
// value. Generated dispatchers use it for setter and constructor arguments.
func ValueOr[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
