package introspection

import "reflect"

// NoIndex marks an operation the generated dispatcher does not support.
const NoIndex = -1

// PropertyRef is the compile-time descriptor of one property.
type PropertyRef struct {
	Argument  Argument
	GetIndex  int  // Dispatch index of the reader, or NoIndex
	SetIndex  int  // Dispatch index of the setter, or NoIndex
	WithIndex int  // Dispatch index of the copy-with method, or NoIndex
	ReadOnly  bool // No mutation path through the property accessor
	Mutable   bool // Settable through a setter or a constructor argument
}

// MethodRef is the compile-time descriptor of one method.
type MethodRef struct {
	ReturnType  Argument
	Name        string
	Annotations AnnotationMetadata
	Arguments   []Argument
	Index       int
}

// IndexedAnnotation lists, in declaration order, the properties carrying an
// annotation the generator was asked to index.
type IndexedAnnotation struct {
	Annotation string
	Indexes    []int
}

// InstantiateFunc builds a bean from validated constructor values.
type InstantiateFunc func(args []any) (any, error)

// DefaultFunc builds a bean with no arguments.
type DefaultFunc func() (any, error)

// CopyFunc returns a copy of bean in which property carries value. It is
// the last resort of Property.WithValue.
type CopyFunc func(property *Property, bean any, value any) (any, error)

// Definition holds everything a generator emits for one type. It is
// consumed once by New.
type Definition struct {
	BeanType               reflect.Type
	Annotations            AnnotationMetadata
	ConstructorAnnotations AnnotationMetadata
	ConstructorArguments   []Argument
	Properties             []PropertyRef
	Methods                []MethodRef
	Indexed                []IndexedAnnotation
	Dispatcher             Dispatcher
	Instantiate            InstantiateFunc
	New                    DefaultFunc
	Copier                 CopyFunc
}
