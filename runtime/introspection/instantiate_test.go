package introspection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/beans/runtime/introspection"
)

func TestInstantiate_Default(t *testing.T) {
	in := mustNew(pointDefinition())

	bean, err := in.Instantiate()
	require.NoError(t, err)
	assert.Equal(t, &Point{}, bean)

	// no values delegates to the zero-argument path
	bean, err = in.InstantiateWith(true)
	require.NoError(t, err)
	assert.Equal(t, &Point{}, bean)
}

func TestInstantiate_NoDefaultConstructor(t *testing.T) {
	in := mustNew(moneyDefinition())

	_, err := in.Instantiate()
	assert.ErrorIs(t, err, introspection.ErrNoDefaultConstructor)
	assert.True(t, introspection.IsInstantiationError(err))

	_, err = in.InstantiateWith(false)
	assert.ErrorIs(t, err, introspection.ErrNoDefaultConstructor)
}

func TestInstantiate_WithArguments(t *testing.T) {
	in := mustNew(moneyDefinition())

	bean, err := in.InstantiateWith(true, int64(12), "EUR")
	require.NoError(t, err)
	assert.Equal(t, Money{Amount: 12, Currency: "EUR"}, bean)
}

func TestInstantiate_ArgumentCountMismatch(t *testing.T) {
	in := mustNew(moneyDefinition())

	for _, values := range [][]any{
		{int64(1)},
		{int64(1), "EUR", "extra"},
		{int64(1), "EUR", nil, nil},
	} {
		_, err := in.InstantiateWith(false, values...)
		assert.ErrorIs(t, err, introspection.ErrArgumentCountMismatch, "%d values", len(values))
	}
}

func TestInstantiate_Nullability(t *testing.T) {
	in := mustNew(accountDefinition())

	tests := []struct {
		name    string
		strict  bool
		values  []any
		wantErr error
	}{
		{name: "nullable argument accepts nil", strict: true, values: []any{"a-1", nil}},
		{name: "non-nullable argument rejects nil", strict: true, values: []any{nil, "ann"}, wantErr: introspection.ErrNullNotAllowed},
		{name: "lenient mode accepts nil", strict: false, values: []any{nil, nil}},
		{name: "wrong type", strict: true, values: []any{42, "ann"}, wantErr: introspection.ErrTypeMismatch},
		{name: "wrong type in lenient mode", strict: false, values: []any{"a-1", 3.5}, wantErr: introspection.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bean, err := in.InstantiateWith(tt.strict, tt.values...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, bean)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &Account{}, bean)
		})
	}
}

func TestInstantiate_NullNotAllowedNamesArgument(t *testing.T) {
	in := mustNew(accountDefinition())

	_, err := in.InstantiateWith(true, nil, nil)
	var ierr *introspection.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "id", ierr.Member)
	assert.Equal(t, "introspection_test.Account", ierr.BeanType)
}

func TestConstructor(t *testing.T) {
	in := mustNew(accountDefinition())
	ctor := in.Constructor()

	assert.Same(t, in, ctor.DeclaringBean())
	require.Len(t, ctor.Arguments(), 2)
	assert.True(t, ctor.Arguments()[1].IsDeclaredNullable())
	assert.True(t, ctor.AnnotationMetadata().IsEmpty())

	bean, err := ctor.Instantiate("a-9", "zoe")
	require.NoError(t, err)
	assert.Equal(t, "a-9", bean.(*Account).ID())

	_, err = ctor.Instantiate(nil, "zoe")
	assert.ErrorIs(t, err, introspection.ErrNullNotAllowed)
}
