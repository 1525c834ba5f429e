package introspection

import (
	"errors"
	"fmt"
	"reflect"
)

// Introspection is the immutable metadata-and-accessor bundle for one bean
// type. Obtain instances through a Registry; New is used by the registry
// and by tests.
//
// All methods are safe for concurrent use. Bean state mutated through Set
// or WithValue is the caller's to synchronise.
type Introspection struct {
	beanType               reflect.Type
	name                   string
	annotations            AnnotationMetadata
	constructorAnnotations AnnotationMetadata
	constructorArguments   []Argument
	properties             []*Property
	propertiesByName       map[string]int
	methods                []*Method
	indexed                map[string][]int
	dispatcher             Dispatcher
	instantiate            InstantiateFunc
	newDefault             DefaultFunc
	copier                 CopyFunc
	constructor            *Constructor
}

// New builds an introspection from generated metadata tables. Views are
// created here, once, in declaration order.
func New(def Definition) (*Introspection, error) {
	if def.BeanType == nil {
		return nil, newError(ErrInvalidArgument, "", "", "bean type is required")
	}

	in := &Introspection{
		beanType:               def.BeanType,
		name:                   typeName(def.BeanType),
		annotations:            def.Annotations,
		constructorAnnotations: def.ConstructorAnnotations,
		constructorArguments:   append([]Argument(nil), def.ConstructorArguments...),
		propertiesByName:       make(map[string]int, len(def.Properties)),
		dispatcher:             def.Dispatcher,
		instantiate:            def.Instantiate,
		newDefault:             def.New,
		copier:                 def.Copier,
	}
	if in.dispatcher == nil {
		in.dispatcher = UnimplementedDispatcher{}
	}
	if len(in.constructorArguments) > 0 && in.instantiate == nil {
		return nil, newError(ErrInvalidArgument, in.name, "", "constructor arguments declared without an instantiation strategy")
	}

	in.properties = make([]*Property, 0, len(def.Properties))
	for i, ref := range def.Properties {
		name := ref.Argument.Name()
		if _, dup := in.propertiesByName[name]; dup {
			return nil, newError(ErrInvalidArgument, in.name, name, "duplicate property name")
		}
		if err := checkRef(ref); err != nil {
			return nil, newError(ErrInvalidArgument, in.name, name, "%s", err)
		}
		in.propertiesByName[name] = i
		in.properties = append(in.properties, newProperty(in, ref))
	}

	in.methods = make([]*Method, 0, len(def.Methods))
	for _, ref := range def.Methods {
		in.methods = append(in.methods, &Method{declaring: in, ref: ref})
	}

	if len(def.Indexed) > 0 {
		in.indexed = make(map[string][]int, len(def.Indexed))
		for _, idx := range def.Indexed {
			for _, i := range idx.Indexes {
				if i < 0 || i >= len(in.properties) {
					return nil, newError(ErrInvalidArgument, in.name, idx.Annotation, "indexed property %d out of range", i)
				}
			}
			in.indexed[idx.Annotation] = append([]int(nil), idx.Indexes...)
		}
	}

	in.constructor = &Constructor{declaring: in}
	return in, nil
}

// checkRef rejects property refs whose flags contradict their indexes
func checkRef(ref PropertyRef) error {
	for _, idx := range []int{ref.GetIndex, ref.SetIndex, ref.WithIndex} {
		if idx < NoIndex {
			return fmt.Errorf("invalid dispatch index %d", idx)
		}
	}
	switch {
	case ref.GetIndex == NoIndex && ref.SetIndex == NoIndex && ref.WithIndex == NoIndex:
		return errors.New("property has no dispatch index")
	case !ref.ReadOnly && ref.SetIndex == NoIndex:
		return errors.New("writable property has no setter index")
	}
	return nil
}

// typeName strips pointer indirection so *pkg.T and pkg.T share a name
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// BeanType returns the introspected type
func (in *Introspection) BeanType() reflect.Type {
	return in.beanType
}

// Name returns the type name without pointer indirection, e.g. "samples.Point"
func (in *Introspection) Name() string {
	return in.name
}

// AnnotationMetadata returns the type-level annotations
func (in *Introspection) AnnotationMetadata() AnnotationMetadata {
	return in.annotations
}

// ConstructorArguments returns the constructor arguments in declaration order
func (in *Introspection) ConstructorArguments() []Argument {
	return append([]Argument(nil), in.constructorArguments...)
}

// Properties returns the property views in declaration order
func (in *Introspection) Properties() []*Property {
	return append([]*Property(nil), in.properties...)
}

// PropertyNames returns the property names in declaration order
func (in *Introspection) PropertyNames() []string {
	names := make([]string, len(in.properties))
	for i, p := range in.properties {
		names[i] = p.Name()
	}
	return names
}

// Property finds a property by name
func (in *Introspection) Property(name string) (*Property, bool) {
	i, ok := in.propertiesByName[name]
	if !ok {
		return nil, false
	}
	return in.properties[i], true
}

// RequiredProperty finds a property by name or fails with ErrInvalidArgument
func (in *Introspection) RequiredProperty(name string) (*Property, error) {
	p, ok := in.Property(name)
	if !ok {
		return nil, newError(ErrInvalidArgument, in.name, name, "no such property")
	}
	return p, nil
}

// PropertyByIndex returns the property at a declaration index
func (in *Introspection) PropertyByIndex(index int) (*Property, bool) {
	if index < 0 || index >= len(in.properties) {
		return nil, false
	}
	return in.properties[index], true
}

// IndexedProperties returns the properties carrying an indexed annotation,
// in the order the generator recorded them.
func (in *Introspection) IndexedProperties(annotation string) *IndexedSubset[*Property] {
	return NewIndexedSubset(in.indexed[annotation], in.properties)
}

// IndexedProperty finds the indexed property whose annotation value equals value
func (in *Introspection) IndexedProperty(annotation, value string) (*Property, bool) {
	for p := range in.IndexedProperties(annotation).All() {
		if v, ok := p.AnnotationMetadata().StringValue(annotation, ValueMember); ok && v == value {
			return p, true
		}
	}
	return nil, false
}

// Methods returns the method views in declaration order
func (in *Introspection) Methods() []*Method {
	return append([]*Method(nil), in.methods...)
}

// Method finds the first method with the given name
func (in *Introspection) Method(name string) (*Method, bool) {
	for _, m := range in.methods {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Constructor returns the constructor view
func (in *Introspection) Constructor() *Constructor {
	return in.constructor
}

// Instantiate builds a bean with the zero-argument strategy
func (in *Introspection) Instantiate() (any, error) {
	if in.newDefault == nil {
		return nil, newError(ErrNoDefaultConstructor, in.name, "", "No default constructor exists")
	}
	return in.newDefault()
}

// InstantiateWith builds a bean from positional constructor values. With no
// values it uses the zero-argument strategy. Under strictNullable, nil is
// only accepted for arguments declared nullable.
func (in *Introspection) InstantiateWith(strictNullable bool, values ...any) (any, error) {
	if len(values) == 0 {
		return in.Instantiate()
	}
	if len(values) != len(in.constructorArguments) {
		return nil, newError(ErrArgumentCountMismatch, in.name, "",
			"argument count [%d] doesn't match required argument count: %d", len(values), len(in.constructorArguments))
	}
	for i, arg := range in.constructorArguments {
		v := values[i]
		if v == nil {
			if arg.IsDeclaredNullable() || !strictNullable {
				continue
			}
			return nil, newError(ErrNullNotAllowed, in.name, arg.Name(),
				"null argument specified for [%s]; declare the argument nullable to allow it", arg.Name())
		}
		if !arg.Accepts(v) {
			return nil, newError(ErrTypeMismatch, in.name, arg.Name(),
				"invalid argument [%v] of type %T specified for argument: %s", v, v, arg)
		}
	}
	return in.instantiate(append([]any(nil), values...))
}

// String implements fmt.Stringer
func (in *Introspection) String() string {
	return fmt.Sprintf("Introspection{type=%s}", in.name)
}

// checkBean verifies bean is a non-nil instance of the introspected type
func (in *Introspection) checkBean(bean any, member string) error {
	if bean == nil {
		return newError(ErrInvalidArgument, in.name, member, "bean must not be nil")
	}
	t := reflect.TypeOf(bean)
	if t != in.beanType {
		return newError(ErrInvalidArgument, in.name, member, "invalid bean [%v] of type %s for type: %s", bean, t, in.beanType)
	}
	if t.Kind() == reflect.Pointer && reflect.ValueOf(bean).IsNil() {
		return newError(ErrInvalidArgument, in.name, member, "bean must not be a nil pointer")
	}
	return nil
}

// Constructor exposes the constructor of an introspected type.
type Constructor struct {
	declaring *Introspection
}

// DeclaringBean returns the owning introspection
func (c *Constructor) DeclaringBean() *Introspection {
	return c.declaring
}

// Arguments returns the constructor arguments
func (c *Constructor) Arguments() []Argument {
	return c.declaring.ConstructorArguments()
}

// AnnotationMetadata returns the constructor annotations
func (c *Constructor) AnnotationMetadata() AnnotationMetadata {
	return c.declaring.constructorAnnotations
}

// Instantiate builds a bean with strict nullability
func (c *Constructor) Instantiate(values ...any) (any, error) {
	return c.declaring.InstantiateWith(true, values...)
}
