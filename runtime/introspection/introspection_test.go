package introspection_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/beans/runtime/introspection"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*introspection.Definition)
	}{
		{
			name:   "missing bean type",
			mutate: func(d *introspection.Definition) { d.BeanType = nil },
		},
		{
			name: "duplicate property",
			mutate: func(d *introspection.Definition) {
				d.Properties = append(d.Properties, d.Properties[0])
			},
		},
		{
			name:   "constructor arguments without instantiate",
			mutate: func(d *introspection.Definition) { d.Instantiate = nil },
		},
		{
			name: "indexed property out of range",
			mutate: func(d *introspection.Definition) {
				d.Indexed = []introspection.IndexedAnnotation{{Annotation: "Column", Indexes: []int{0, 9}}}
			},
		},
		{
			name: "writable property without setter",
			mutate: func(d *introspection.Definition) {
				d.Properties[1].SetIndex = introspection.NoIndex
			},
		},
		{
			name: "property without any dispatch index",
			mutate: func(d *introspection.Definition) {
				d.Properties[0].GetIndex = introspection.NoIndex
			},
		},
		{
			name: "negative dispatch index",
			mutate: func(d *introspection.Definition) {
				d.Properties[1].GetIndex = -2
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := accountDefinition()
			tt.mutate(&def)
			_, err := introspection.New(def)
			assert.ErrorIs(t, err, introspection.ErrInvalidArgument)
		})
	}
}

func TestNew_NilDispatcherFailsEveryAccess(t *testing.T) {
	def := pointDefinition()
	def.Dispatcher = nil
	in := mustNew(def)

	x, _ := in.Property("x")
	_, err := x.Get(&Point{})
	assert.ErrorIs(t, err, introspection.ErrUnknownDispatchIndex)
}

func TestIntrospection_Metadata(t *testing.T) {
	in := mustNew(accountDefinition())

	assert.Equal(t, reflect.TypeFor[*Account](), in.BeanType())
	assert.Equal(t, "introspection_test.Account", in.Name())
	assert.Equal(t, "Introspection{type=introspection_test.Account}", in.String())
	assert.Equal(t, []string{"id", "owner", "password", "balance", "tags"}, in.PropertyNames())

	require.Len(t, in.ConstructorArguments(), 2)
	assert.Equal(t, "id", in.ConstructorArguments()[0].Name())

	p, ok := in.PropertyByIndex(3)
	require.True(t, ok)
	assert.Equal(t, "balance", p.Name())
	_, ok = in.PropertyByIndex(5)
	assert.False(t, ok)
	_, ok = in.PropertyByIndex(-1)
	assert.False(t, ok)

	_, err := in.RequiredProperty("email")
	assert.ErrorIs(t, err, introspection.ErrInvalidArgument)

	point := mustNew(pointDefinition())
	assert.True(t, point.AnnotationMetadata().Has("Introspected"))
	assert.False(t, in.AnnotationMetadata().Has("Introspected"))
}

func TestIntrospection_ReturnsCopies(t *testing.T) {
	in := mustNew(accountDefinition())

	props := in.Properties()
	props[0] = nil
	assert.NotNil(t, in.Properties()[0])

	methods := in.Methods()
	methods[0] = nil
	assert.NotNil(t, in.Methods()[0])

	args := in.ConstructorArguments()
	args[0] = introspection.ArgumentOf[int]("changed")
	assert.Equal(t, "id", in.ConstructorArguments()[0].Name())
}

func TestIntrospection_ViewsAreStable(t *testing.T) {
	in := mustNew(pointDefinition())

	a, _ := in.Property("x")
	b, _ := in.Property("x")
	assert.Same(t, a, b)
	assert.Same(t, a, in.Properties()[0])
	assert.Same(t, in.Constructor(), in.Constructor())
}

func TestIntrospection_IndexedProperties(t *testing.T) {
	in := mustNew(accountDefinition())

	columns := in.IndexedProperties("Column")
	require.Equal(t, 2, columns.Len())

	var names []string
	for p := range columns.All() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"balance", "id"}, names)

	p, ok := in.IndexedProperty("Column", "account_id")
	require.True(t, ok)
	assert.Equal(t, "id", p.Name())

	_, ok = in.IndexedProperty("Column", "owner")
	assert.False(t, ok)

	assert.Equal(t, 0, in.IndexedProperties("Id").Len())
	_, ok = in.IndexedProperty("Id", "id")
	assert.False(t, ok)
}

func TestIntrospection_MethodLookupReturnsFirstMatch(t *testing.T) {
	def := pointDefinition()
	def.Methods = append(def.Methods, introspection.MethodRef{Name: "Translate", Index: 99})
	in := mustNew(def)

	m, ok := in.Method("Translate")
	require.True(t, ok)
	_, err := m.Invoke(&Point{}, 1, 1)
	assert.NoError(t, err)
	assert.Len(t, in.Methods(), 3)
}

func TestAnnotationMetadata(t *testing.T) {
	source := map[string]map[string]any{
		"Size":   {"min": 1, "max": "10"},
		"Column": {introspection.ValueMember: "name"},
	}
	md := introspection.NewAnnotationMetadata(source)
	source["Size"]["min"] = 99

	assert.False(t, md.IsEmpty())
	assert.Equal(t, []string{"Column", "Size"}, md.Names())

	lo, ok := md.IntValue("Size", "min")
	require.True(t, ok)
	assert.Equal(t, int64(1), lo)

	hi, ok := md.IntValue("Size", "max")
	require.True(t, ok)
	assert.Equal(t, int64(10), hi)

	v, ok := md.StringValue("Column", introspection.ValueMember)
	require.True(t, ok)
	assert.Equal(t, "name", v)

	_, ok = md.Value("Column", "missing")
	assert.False(t, ok)
	_, ok = md.Value("Missing", introspection.ValueMember)
	assert.False(t, ok)

	assert.True(t, introspection.EmptyAnnotationMetadata.IsEmpty())
	assert.True(t, introspection.Annotations("A", "B").Has("B"))
}

func TestArgument(t *testing.T) {
	arg := introspection.ArgumentOf[int64]("amount")

	assert.Equal(t, "amount", arg.Name())
	assert.Equal(t, "int64", arg.TypeName())
	assert.Equal(t, "int64 amount", arg.String())
	assert.False(t, arg.IsDeclaredNullable())
	assert.True(t, arg.WithNullable().IsDeclaredNullable())

	assert.True(t, arg.Accepts(int64(1)))
	assert.True(t, arg.Accepts(nil))
	assert.False(t, arg.Accepts(1))

	untyped := introspection.NewArgument("any", nil)
	assert.Equal(t, "any", untyped.TypeName())
	assert.True(t, untyped.Accepts("anything"))

	generic := introspection.ArgumentOf[[]string]("tags").
		WithTypeParameters(introspection.ArgumentOf[string]("E"))
	require.Len(t, generic.TypeParameters(), 1)
	assert.Equal(t, "E", generic.TypeParameters()[0].Name())

	var err error = &introspection.Error{Kind: introspection.ErrInvalidArgument}
	assert.True(t, introspection.ArgumentOf[error]("err").Accepts(err))
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, 0, introspection.ValueOr[int](nil))
	assert.Equal(t, 4, introspection.ValueOr[int](4))
	assert.Nil(t, introspection.ValueOr[[]string](nil))
}

func TestNew_ReadOnlyPropertyWithoutSetter(t *testing.T) {
	def := accountDefinition()
	def.Properties[1].ReadOnly = true
	def.Properties[1].SetIndex = introspection.NoIndex

	in, err := introspection.New(def)
	require.NoError(t, err)
	owner, _ := in.Property("owner")
	err = owner.Set(NewAccount("a-1", "ann"), "bob")
	assert.ErrorIs(t, err, introspection.ErrUnsupportedOperation)
}
