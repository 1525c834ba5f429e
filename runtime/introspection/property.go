package introspection

import (
	"fmt"
	"reflect"
)

// Property is the view of one bean property. It validates its inputs and
// delegates the actual access to the owning type's dispatcher.
type Property struct {
	declaring *Introspection
	ref       PropertyRef
}

func newProperty(declaring *Introspection, ref PropertyRef) *Property {
	return &Property{declaring: declaring, ref: ref}
}

// Name returns the property name
func (p *Property) Name() string {
	return p.ref.Argument.Name()
}

// Type returns the declared property type
func (p *Property) Type() reflect.Type {
	return p.ref.Argument.Type()
}

// Argument returns the property value descriptor
func (p *Property) Argument() Argument {
	return p.ref.Argument
}

// AnnotationMetadata returns the property annotations
func (p *Property) AnnotationMetadata() AnnotationMetadata {
	return p.ref.Argument.AnnotationMetadata()
}

// DeclaringBean returns the owning introspection
func (p *Property) DeclaringBean() *Introspection {
	return p.declaring
}

// IsReadOnly reports whether the property accessor cannot write
func (p *Property) IsReadOnly() bool {
	return p.ref.ReadOnly
}

// IsWriteOnly reports whether the property can be written but not read
func (p *Property) IsWriteOnly() bool {
	return p.ref.GetIndex == NoIndex && (p.ref.SetIndex != NoIndex || p.ref.WithIndex != NoIndex)
}

// IsReadable reports whether Get can succeed
func (p *Property) IsReadable() bool {
	return p.ref.GetIndex != NoIndex
}

// HasSetterOrConstructorArgument reports whether the value can be supplied
// through a setter or a constructor argument
func (p *Property) HasSetterOrConstructorArgument() bool {
	return p.ref.Mutable
}

// Get reads the property from bean
func (p *Property) Get(bean any) (any, error) {
	if err := p.declaring.checkBean(bean, p.Name()); err != nil {
		return nil, err
	}
	if p.IsWriteOnly() {
		return nil, newError(ErrUnsupportedOperation, p.declaring.name, p.Name(), "cannot read from a write-only property")
	}
	return p.GetUnsafe(bean)
}

// GetUnsafe reads the property without checking the bean type
func (p *Property) GetUnsafe(bean any) (any, error) {
	return p.declaring.dispatcher.DispatchOne(p.ref.GetIndex, bean, nil)
}

// Set writes value to the property of bean
func (p *Property) Set(bean any, value any) error {
	if err := p.declaring.checkBean(bean, p.Name()); err != nil {
		return err
	}
	if p.IsReadOnly() {
		return newError(ErrUnsupportedOperation, p.declaring.name, p.Name(), "cannot write a read-only property: %s", p.Name())
	}
	if err := p.checkValue(value); err != nil {
		return err
	}
	return p.SetUnsafe(bean, value)
}

// SetUnsafe writes the property without checking the bean or value types
func (p *Property) SetUnsafe(bean any, value any) error {
	_, err := p.declaring.dispatcher.DispatchOne(p.ref.SetIndex, bean, value)
	return err
}

// WithValue returns a bean reflecting value: bean itself when the value is
// unchanged or was set in place, otherwise the copy produced by the
// with-method or the configured copier.
func (p *Property) WithValue(bean any, value any) (any, error) {
	if err := p.declaring.checkBean(bean, p.Name()); err != nil {
		return nil, err
	}
	if err := p.checkValue(value); err != nil {
		return nil, err
	}
	return p.WithValueUnsafe(bean, value)
}

// WithValueUnsafe is WithValue without the bean and value type checks
func (p *Property) WithValueUnsafe(bean any, value any) (any, error) {
	if !p.IsWriteOnly() {
		current, err := p.GetUnsafe(bean)
		if err != nil {
			return nil, err
		}
		if sameValue(current, value) {
			return bean, nil
		}
	}
	switch {
	case p.ref.WithIndex != NoIndex:
		return p.declaring.dispatcher.DispatchOne(p.ref.WithIndex, bean, value)
	case !p.ref.ReadOnly && p.ref.SetIndex != NoIndex:
		if _, err := p.declaring.dispatcher.DispatchOne(p.ref.SetIndex, bean, value); err != nil {
			return nil, err
		}
		return bean, nil
	case p.declaring.copier != nil:
		return p.declaring.copier(p, bean, value)
	}
	return nil, newError(ErrUnsupportedOperation, p.declaring.name, p.Name(), "no with-method, setter or copier to change the property")
}

// String implements fmt.Stringer
func (p *Property) String() string {
	return fmt.Sprintf("Property{beanType=%s, type=%s, name='%s'}", p.declaring.name, p.ref.Argument.TypeName(), p.Name())
}

func (p *Property) checkValue(value any) error {
	if !p.ref.Argument.Accepts(value) {
		return newError(ErrInvalidArgument, p.declaring.name, p.Name(),
			"specified value [%v] of type %T is not of the correct type: %s", value, value, p.ref.Argument.TypeName())
	}
	return nil
}

// sameValue reports whether value is the current value. Slices and maps
// match only when they share backing storage, funcs only when both are nil.
// It never panics on interface fields holding incomparable values.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return sameReflectValue(reflect.ValueOf(a), reflect.ValueOf(b))
}

func sameReflectValue(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Slice:
		return a.IsNil() == b.IsNil() && a.Len() == b.Len() && a.Pointer() == b.Pointer()
	case reflect.Map:
		return a.Pointer() == b.Pointer()
	case reflect.Func:
		return a.IsNil() && b.IsNil()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return sameReflectValue(a.Elem(), b.Elem())
	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !sameReflectValue(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !sameReflectValue(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	}
	return a.Equal(b)
}

// GetAs reads a property and asserts its type. A nil value yields the zero V.
func GetAs[V any](p *Property, bean any) (V, error) {
	var zero V
	v, err := p.Get(bean)
	if err != nil || v == nil {
		return zero, err
	}
	typed, ok := v.(V)
	if !ok {
		return zero, newError(ErrInvalidArgument, p.declaring.name, p.Name(), "value of type %T is not a %T", v, zero)
	}
	return typed, nil
}
