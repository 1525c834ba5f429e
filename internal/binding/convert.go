package binding

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var (
	uuidType     = reflect.TypeFor[uuid.UUID]()
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
	stringType   = reflect.TypeFor[string]()
)

// Convert coerces value to t. Values already assignable to t are returned
// unchanged; nil stays nil.
func (b *Binder) Convert(value any, t reflect.Type) (any, error) {
	if value == nil || t == nil {
		return value, nil
	}
	vt := reflect.TypeOf(value)
	if vt.AssignableTo(t) {
		return value, nil
	}

	switch t {
	case uuidType:
		return wrap(toUUID(value))
	case durationType:
		return wrap(cast.ToDurationE(value))
	case timeType:
		return wrap(cast.ToTimeE(value))
	}

	if b.registry().Contains(t) {
		return b.convertBean(value, t)
	}

	switch t.Kind() {
	case reflect.String:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		return reflect.ValueOf(s).Convert(t).Interface(), nil
	case reflect.Bool:
		v, err := cast.ToBoolE(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		return reflect.ValueOf(v).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		out := reflect.New(t).Elem()
		if out.OverflowInt(n) {
			return nil, fmt.Errorf("%w: %d overflows %s", ErrConversion, n, t)
		}
		out.SetInt(n)
		return out.Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		out := reflect.New(t).Elem()
		if out.OverflowUint(n) {
			return nil, fmt.Errorf("%w: %d overflows %s", ErrConversion, n, t)
		}
		out.SetUint(n)
		return out.Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConversion, err)
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	case reflect.Slice:
		return b.convertSlice(value, t)
	case reflect.Map:
		return b.convertMap(value, t)
	case reflect.Pointer:
		elem, err := b.Convert(value, t.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(reflect.ValueOf(elem))
		return ptr.Interface(), nil
	}

	if vt.ConvertibleTo(t) {
		return reflect.ValueOf(value).Convert(t).Interface(), nil
	}
	return nil, conversionError(value, t)
}

// convertBean binds a nested map into a registered type
func (b *Binder) convertBean(value any, t reflect.Type) (any, error) {
	values, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, conversionError(value, t)
	}
	in, err := b.registry().Lookup(t)
	if err != nil {
		return nil, err
	}
	bean, err := b.Bind(in, values)
	if err != nil {
		return nil, err
	}
	return adapt(bean, t)
}

// adapt bridges *T and T when a registered bean type differs from the
// declared type only by indirection
func adapt(bean any, t reflect.Type) (any, error) {
	v := reflect.ValueOf(bean)
	switch {
	case v.Type() == t:
		return bean, nil
	case t.Kind() == reflect.Pointer && v.Type() == t.Elem():
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(v)
		return ptr.Interface(), nil
	case v.Kind() == reflect.Pointer && v.Type().Elem() == t:
		return v.Elem().Interface(), nil
	}
	return nil, conversionError(bean, t)
}

func (b *Binder) convertSlice(value any, t reflect.Type) (any, error) {
	if t.Elem() == stringType {
		return wrap(cast.ToStringSliceE(value))
	}
	if t.Elem().Kind() == reflect.Uint8 {
		if s, ok := value.(string); ok {
			return reflect.ValueOf([]byte(s)).Convert(t).Interface(), nil
		}
	}

	src := reflect.ValueOf(value)
	if src.Kind() != reflect.Slice && src.Kind() != reflect.Array {
		return nil, conversionError(value, t)
	}
	out := reflect.MakeSlice(t, src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		elem, err := b.Convert(src.Index(i).Interface(), t.Elem())
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		if elem != nil {
			out.Index(i).Set(reflect.ValueOf(elem))
		}
	}
	return out.Interface(), nil
}

func (b *Binder) convertMap(value any, t reflect.Type) (any, error) {
	if t.Key().Kind() != reflect.String {
		return nil, conversionError(value, t)
	}
	switch t {
	case reflect.TypeFor[map[string]string]():
		return wrap(cast.ToStringMapStringE(value))
	case reflect.TypeFor[map[string]any]():
		return wrap(cast.ToStringMapE(value))
	}

	src, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, conversionError(value, t)
	}
	out := reflect.MakeMapWithSize(t, len(src))
	for k, v := range src {
		elem, err := b.Convert(v, t.Elem())
		if err != nil {
			return nil, fmt.Errorf("[%s]: %w", k, err)
		}
		ev := reflect.Zero(t.Elem())
		if elem != nil {
			ev = reflect.ValueOf(elem)
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
	}
	return out.Interface(), nil
}

func toUUID(value any) (uuid.UUID, error) {
	switch v := value.(type) {
	case string:
		return uuid.Parse(v)
	case []byte:
		return uuid.ParseBytes(v)
	case [16]byte:
		return uuid.UUID(v), nil
	}
	return uuid.Nil, fmt.Errorf("unable to cast %#v of type %T to uuid.UUID", value, value)
}

// wrap adapts a typed conversion result, tagging failures with ErrConversion
func wrap[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return v, nil
}

func conversionError(value any, t reflect.Type) error {
	return fmt.Errorf("%w: cannot convert %T to %s", ErrConversion, value, t)
}
