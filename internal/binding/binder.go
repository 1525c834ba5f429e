// Package binding builds and updates introspected beans from loosely typed
// values such as decoded JSON or YAML documents, configuration maps and
// database rows.
package binding

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.uber.org/multierr"

	"github.com/conduit-lang/beans/runtime/introspection"
)

var (
	// ErrUnknownProperty is returned for a key that names no property or constructor argument
	ErrUnknownProperty = errors.New("unknown property")

	// ErrConversion is returned when a value cannot be converted to the declared type
	ErrConversion = errors.New("conversion failed")
)

// FieldError is a failure to bind a single key.
type FieldError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *FieldError) Unwrap() error {
	return e.Err
}

// Binder converts value maps into beans.
type Binder struct {
	// StrictNullable rejects nil for constructor arguments not declared nullable
	StrictNullable bool

	// IgnoreUnknown skips keys that match no property instead of failing
	IgnoreUnknown bool

	// Registry resolves nested introspected types; nil uses the default registry
	Registry *introspection.Registry
}

// NewBinder creates a strict binder over registry
func NewBinder(registry *introspection.Registry) *Binder {
	return &Binder{
		StrictNullable: true,
		Registry:       registry,
	}
}

func (b *Binder) registry() *introspection.Registry {
	if b.Registry == nil {
		return introspection.Default()
	}
	return b.Registry
}

// NormalizeKey folds case and drops '-' and '_' so that "balance_cents",
// "balance-cents" and "balanceCents" all match.
func NormalizeKey(key string) string {
	var sb strings.Builder
	sb.Grow(len(key))
	for _, r := range strings.ToLower(key) {
		if r == '-' || r == '_' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Bind instantiates a bean of in's type from values. Constructor arguments
// are taken by name; remaining keys are written to properties. Failures for
// all keys are reported together.
func (b *Binder) Bind(in *introspection.Introspection, values map[string]any) (any, error) {
	keys := normalizedKeys(values)
	used := make(map[string]bool, len(values))

	var errs error
	args := in.ConstructorArguments()
	ctorValues := make([]any, len(args))
	for i, arg := range args {
		norm, key, ok := lookupKey(in, arg.Name(), keys)
		if !ok {
			continue
		}
		used[norm] = true
		v, err := b.Convert(values[key], arg.Type())
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: key, Err: err})
			continue
		}
		ctorValues[i] = v
	}
	if errs != nil {
		return nil, errs
	}

	var (
		bean any
		err  error
	)
	if len(args) == 0 {
		bean, err = in.Instantiate()
	} else {
		bean, err = in.InstantiateWith(b.StrictNullable, ctorValues...)
	}
	if err != nil {
		return nil, fmt.Errorf("instantiate %s: %w", in.Name(), err)
	}

	remaining := make(map[string]any, len(values))
	for norm, key := range keys {
		if !used[norm] {
			remaining[key] = values[key]
		}
	}
	return b.BindInto(in, bean, remaining)
}

// BindInto writes values to the properties of an existing bean and returns
// the resulting bean. For immutable types this is a new instance.
func (b *Binder) BindInto(in *introspection.Introspection, bean any, values map[string]any) (any, error) {
	props := propertiesByKey(in)

	var errs error
	for _, key := range sortedKeys(values) {
		p, ok := props[NormalizeKey(key)]
		if !ok {
			if !b.IgnoreUnknown {
				errs = multierr.Append(errs, &FieldError{Field: key, Err: ErrUnknownProperty})
			}
			continue
		}
		v, err := b.Convert(values[key], p.Type())
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: key, Err: err})
			continue
		}
		updated, err := p.WithValue(bean, v)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: key, Err: err})
			continue
		}
		bean = updated
	}
	if errs != nil {
		return nil, errs
	}
	return bean, nil
}

// Errors splits an error returned by Bind into its per-field errors
func Errors(err error) []error {
	return multierr.Errors(err)
}

func sortedKeys(values map[string]any) []string {
	return slices.Sorted(maps.Keys(values))
}

// lookupKey finds the key supplying a constructor argument, by name or by
// the column of the same-named property
func lookupKey(in *introspection.Introspection, name string, keys map[string]string) (string, string, bool) {
	norm := NormalizeKey(name)
	if key, ok := keys[norm]; ok {
		return norm, key, true
	}
	if p, ok := in.Property(name); ok {
		if column, ok := p.AnnotationMetadata().StringValue("Column", introspection.ValueMember); ok {
			norm = NormalizeKey(column)
			if key, ok := keys[norm]; ok {
				return norm, key, true
			}
		}
	}
	return "", "", false
}

func normalizedKeys(values map[string]any) map[string]string {
	keys := make(map[string]string, len(values))
	for _, key := range sortedKeys(values) {
		norm := NormalizeKey(key)
		if _, dup := keys[norm]; !dup {
			keys[norm] = key
		}
	}
	return keys
}

func propertiesByKey(in *introspection.Introspection) map[string]*introspection.Property {
	props := make(map[string]*introspection.Property)
	for _, p := range in.Properties() {
		props[NormalizeKey(p.Name())] = p
	}
	// Column names are accepted as aliases
	for p := range in.IndexedProperties("Column").All() {
		if column, ok := p.AnnotationMetadata().StringValue("Column", introspection.ValueMember); ok {
			if _, taken := props[NormalizeKey(column)]; !taken {
				props[NormalizeKey(column)] = p
			}
		}
	}
	return props
}
