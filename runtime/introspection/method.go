package introspection

import (
	"fmt"
	"strings"
)

// Method is the view of one declared method.
type Method struct {
	declaring *Introspection
	ref       MethodRef
}

// Name returns the method name
func (m *Method) Name() string {
	return m.ref.Name
}

// ReturnType returns the return value descriptor
func (m *Method) ReturnType() Argument {
	return m.ref.ReturnType
}

// Arguments returns the parameter descriptors in declaration order
func (m *Method) Arguments() []Argument {
	return append([]Argument(nil), m.ref.Arguments...)
}

// AnnotationMetadata returns the method annotations
func (m *Method) AnnotationMetadata() AnnotationMetadata {
	return m.ref.Annotations
}

// DeclaringBean returns the owning introspection
func (m *Method) DeclaringBean() *Introspection {
	return m.declaring
}

// Invoke calls the method on instance. Arguments are not validated here;
// the generated dispatcher fails however the underlying call fails.
func (m *Method) Invoke(instance any, args ...any) (any, error) {
	return m.declaring.dispatcher.Dispatch(m.ref.Index, instance, args)
}

// String returns the method signature, e.g. "Deposit(int64 amount) error"
func (m *Method) String() string {
	params := make([]string, len(m.ref.Arguments))
	for i, a := range m.ref.Arguments {
		params[i] = a.String()
	}
	sig := fmt.Sprintf("%s(%s)", m.ref.Name, strings.Join(params, ", "))
	if m.ref.ReturnType.Type() == nil {
		return sig
	}
	return sig + " " + m.ref.ReturnType.TypeName()
}
