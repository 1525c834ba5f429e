package introspection_test

import (
	"errors"
	"reflect"

	"github.com/conduit-lang/beans/runtime/introspection"
)

// The definitions below are written the way the generator emits them.

// Point is a mutable bean with a default constructor.
type Point struct {
	X, Y int
}

func (p *Point) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

func (p *Point) Norm2() int {
	return p.X*p.X + p.Y*p.Y
}

type pointDispatcher struct {
	introspection.UnimplementedDispatcher
}

func (pointDispatcher) DispatchOne(index int, target any, arg any) (any, error) {
	p := target.(*Point)
	switch index {
	case 0:
		return p.X, nil
	case 1:
		p.X = introspection.ValueOr[int](arg)
		return nil, nil
	case 2:
		return p.Y, nil
	case 3:
		p.Y = introspection.ValueOr[int](arg)
		return nil, nil
	}
	return nil, introspection.UnknownDispatchIndex(index)
}

func (pointDispatcher) Dispatch(index int, target any, args []any) (any, error) {
	p := target.(*Point)
	switch index {
	case 4:
		p.Translate(args[0].(int), args[1].(int))
		return nil, nil
	case 5:
		return p.Norm2(), nil
	}
	return nil, introspection.UnknownDispatchIndex(index)
}

func pointDefinition() introspection.Definition {
	return introspection.Definition{
		BeanType:    reflect.TypeFor[*Point](),
		Annotations: introspection.Annotations("Introspected"),
		Properties: []introspection.PropertyRef{
			{Argument: introspection.ArgumentOf[int]("x"), GetIndex: 0, SetIndex: 1, WithIndex: introspection.NoIndex, Mutable: true},
			{Argument: introspection.ArgumentOf[int]("y"), GetIndex: 2, SetIndex: 3, WithIndex: introspection.NoIndex, Mutable: true},
		},
		Methods: []introspection.MethodRef{
			{
				ReturnType: introspection.NewArgument("", nil),
				Name:       "Translate",
				Arguments:  []introspection.Argument{introspection.ArgumentOf[int]("dx"), introspection.ArgumentOf[int]("dy")},
				Index:      4,
			},
			{ReturnType: introspection.ArgumentOf[int](""), Name: "Norm2", Index: 5},
		},
		Dispatcher: pointDispatcher{},
		New: func() (any, error) {
			return &Point{}, nil
		},
	}
}

// Money is an immutable value record with a copy-with method for amount.
type Money struct {
	Amount   int64
	Currency string
}

func (m Money) WithAmount(amount int64) Money {
	m.Amount = amount
	return m
}

func moneyDefinition() introspection.Definition {
	return introspection.Definition{
		BeanType: reflect.TypeFor[Money](),
		ConstructorArguments: []introspection.Argument{
			introspection.ArgumentOf[int64]("amount"),
			introspection.ArgumentOf[string]("currency"),
		},
		Properties: []introspection.PropertyRef{
			{Argument: introspection.ArgumentOf[int64]("amount"), GetIndex: 0, SetIndex: introspection.NoIndex, WithIndex: 1, ReadOnly: true, Mutable: true},
			{Argument: introspection.ArgumentOf[string]("currency"), GetIndex: 2, SetIndex: introspection.NoIndex, WithIndex: introspection.NoIndex, ReadOnly: true, Mutable: true},
		},
		Dispatcher: &introspection.DispatchTable{
			One: []introspection.OneFunc{
				0: func(target any, _ any) (any, error) { return target.(Money).Amount, nil },
				1: func(target any, arg any) (any, error) {
					return target.(Money).WithAmount(introspection.ValueOr[int64](arg)), nil
				},
				2: func(target any, _ any) (any, error) { return target.(Money).Currency, nil },
			},
		},
		Instantiate: func(args []any) (any, error) {
			return Money{
				Amount:   introspection.ValueOr[int64](args[0]),
				Currency: introspection.ValueOr[string](args[1]),
			}, nil
		},
		Copier: introspection.CopyViaConstructor,
	}
}

// Account has a read-only id, a write-only password and methods.
type Account struct {
	id       string
	Owner    string
	password string
	Balance  int64
	Tags     []string
}

func NewAccount(id, owner string) *Account {
	return &Account{id: id, Owner: owner}
}

func (a *Account) ID() string { return a.id }

func (a *Account) SetPassword(p string) { a.password = p }

func (a *Account) CheckPassword(p string) bool { return a.password != "" && a.password == p }

var errNonPositive = errors.New("amount must be positive")

func (a *Account) Deposit(amount int64) error {
	if amount <= 0 {
		return errNonPositive
	}
	a.Balance += amount
	return nil
}

type accountDispatcher struct {
	introspection.UnimplementedDispatcher
}

func (accountDispatcher) DispatchOne(index int, target any, arg any) (any, error) {
	a := target.(*Account)
	switch index {
	case 0:
		return a.ID(), nil
	case 1:
		return a.Owner, nil
	case 2:
		a.Owner = introspection.ValueOr[string](arg)
		return nil, nil
	case 3:
		a.SetPassword(introspection.ValueOr[string](arg))
		return nil, nil
	case 4:
		return a.Balance, nil
	case 5:
		a.Balance = introspection.ValueOr[int64](arg)
		return nil, nil
	case 6:
		return a.Tags, nil
	case 7:
		a.Tags = introspection.ValueOr[[]string](arg)
		return nil, nil
	}
	return nil, introspection.UnknownDispatchIndex(index)
}

func (accountDispatcher) Dispatch(index int, target any, args []any) (any, error) {
	a := target.(*Account)
	switch index {
	case 8:
		return nil, a.Deposit(args[0].(int64))
	case 9:
		return a.CheckPassword(args[0].(string)), nil
	}
	return nil, introspection.UnknownDispatchIndex(index)
}

func column(name string) introspection.AnnotationMetadata {
	return introspection.NewAnnotationMetadata(map[string]map[string]any{
		"Column": {introspection.ValueMember: name},
	})
}

func accountDefinition() introspection.Definition {
	return introspection.Definition{
		BeanType: reflect.TypeFor[*Account](),
		ConstructorArguments: []introspection.Argument{
			introspection.ArgumentOf[string]("id"),
			introspection.ArgumentOf[string]("owner").WithNullable(),
		},
		Properties: []introspection.PropertyRef{
			{Argument: introspection.ArgumentOf[string]("id").WithAnnotations(column("account_id")), GetIndex: 0, SetIndex: introspection.NoIndex, WithIndex: introspection.NoIndex, ReadOnly: true, Mutable: true},
			{Argument: introspection.ArgumentOf[string]("owner"), GetIndex: 1, SetIndex: 2, WithIndex: introspection.NoIndex, Mutable: true},
			{Argument: introspection.ArgumentOf[string]("password"), GetIndex: introspection.NoIndex, SetIndex: 3, WithIndex: introspection.NoIndex, Mutable: true},
			{Argument: introspection.ArgumentOf[int64]("balance").WithAnnotations(column("balance_cents")), GetIndex: 4, SetIndex: 5, WithIndex: introspection.NoIndex, Mutable: true},
			{Argument: introspection.ArgumentOf[[]string]("tags"), GetIndex: 6, SetIndex: 7, WithIndex: introspection.NoIndex, Mutable: true},
		},
		Methods: []introspection.MethodRef{
			{
				ReturnType: introspection.ArgumentOf[error](""),
				Name:       "Deposit",
				Arguments:  []introspection.Argument{introspection.ArgumentOf[int64]("amount")},
				Index:      8,
			},
			{
				ReturnType: introspection.ArgumentOf[bool](""),
				Name:       "CheckPassword",
				Arguments:  []introspection.Argument{introspection.ArgumentOf[string]("password")},
				Index:      9,
			},
		},
		Indexed: []introspection.IndexedAnnotation{
			{Annotation: "Column", Indexes: []int{3, 0}},
		},
		Dispatcher: accountDispatcher{},
		Instantiate: func(args []any) (any, error) {
			return NewAccount(introspection.ValueOr[string](args[0]), introspection.ValueOr[string](args[1])), nil
		},
		Copier: introspection.CopyViaConstructor,
	}
}

func mustNew(def introspection.Definition) *introspection.Introspection {
	in, err := introspection.New(def)
	if err != nil {
		panic(err)
	}
	return in
}
