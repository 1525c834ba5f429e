// Package validation checks introspected beans against the constraint
// annotations declared on their properties and constructor arguments.
package validation

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/conduit-lang/beans/runtime/introspection"
)

// Constraint annotations
const (
	NotNull  = "NotNull"
	NotBlank = "NotBlank"
	Min      = "Min"
	Max      = "Max"
	Size     = "Size"
	Pattern  = "Pattern"
	Email    = "Email"
	Valid    = "Valid"
)

// Engine validates beans. It is safe for concurrent use.
type Engine struct {
	registry *introspection.Registry
	logger   *zap.Logger

	// Compiled Pattern constraints
	patterns sync.Map // string -> *regexp.Regexp
}

// NewEngine creates a validation engine. Nested beans annotated Valid are
// resolved through registry.
func NewEngine(registry *introspection.Registry, logger *zap.Logger) *Engine {
	if registry == nil {
		registry = introspection.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger}
}

// Validate checks every readable property of bean. It returns
// *ValidationErrors when a constraint is violated.
func (e *Engine) Validate(ctx context.Context, in *introspection.Introspection, bean any) error {
	errors := NewValidationErrors()
	if err := e.validateBean(ctx, in, bean, errors, 0); err != nil {
		return err
	}
	if errors.HasErrors() {
		e.logger.Debug("validation failed",
			zap.String("type", in.Name()),
			zap.Int("violations", errors.Count()),
		)
		return errors
	}
	return nil
}

// maxDepth stops recursion through cyclic bean graphs
const maxDepth = 32

func (e *Engine) validateBean(
	ctx context.Context,
	in *introspection.Introspection,
	bean any,
	errors *ValidationErrors,
	depth int,
) error {
	if depth > maxDepth {
		return fmt.Errorf("validate %s: nesting deeper than %d", in.Name(), maxDepth)
	}
	for _, p := range in.Properties() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !p.IsReadable() {
			continue
		}
		md := p.AnnotationMetadata()
		if md.IsEmpty() {
			continue
		}

		value, err := p.Get(bean)
		if err != nil {
			return fmt.Errorf("validate %s.%s: %w", in.Name(), p.Name(), err)
		}

		e.validateValue(p.Name(), md, value, errors)

		if md.Has(Valid) {
			if err := e.validateNested(ctx, p.Name(), value, errors, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateNested descends into an introspected value or a slice of them
func (e *Engine) validateNested(ctx context.Context, path string, value any, errors *ValidationErrors, depth int) error {
	if isNil(value) {
		return nil
	}
	t := reflect.TypeOf(value)
	if e.registry.Contains(t) {
		in, err := e.registry.Lookup(t)
		if err != nil {
			return err
		}
		nested := NewValidationErrors()
		if err := e.validateBean(ctx, in, value, nested, depth+1); err != nil {
			return err
		}
		errors.Merge(path, nested)
		return nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		for i := 0; i < v.Len(); i++ {
			if err := e.validateNested(ctx, fmt.Sprintf("%s[%d]", path, i), v.Index(i).Interface(), errors, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateArguments checks constructor values before instantiation. An
// argument without annotations uses those of the same-named property.
func (e *Engine) ValidateArguments(in *introspection.Introspection, values []any) error {
	args := in.ConstructorArguments()
	if len(values) != len(args) {
		return fmt.Errorf("validate %s: %w", in.Name(), introspection.ErrArgumentCountMismatch)
	}

	errors := NewValidationErrors()
	for i, arg := range args {
		value := values[i]
		if isNil(value) && !arg.IsDeclaredNullable() {
			errors.Add(arg.Name(), "is required")
			continue
		}
		md := arg.AnnotationMetadata()
		if md.IsEmpty() {
			if p, ok := in.Property(arg.Name()); ok {
				md = p.AnnotationMetadata()
			}
		}
		e.validateValue(arg.Name(), md, value, errors)
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// ValidateValue checks a single value against annotations
func (e *Engine) ValidateValue(path string, md introspection.AnnotationMetadata, value any) error {
	errors := NewValidationErrors()
	e.validateValue(path, md, value, errors)
	if errors.HasErrors() {
		return errors
	}
	return nil
}

func (e *Engine) validateValue(path string, md introspection.AnnotationMetadata, value any, errors *ValidationErrors) {
	validators, err := e.validatorsFor(md)
	if err != nil {
		errors.Add(path, err.Error())
		return
	}
	for _, validator := range validators {
		if err := validator.Validate(value); err != nil {
			errors.Add(path, err.Error())
		}
	}
}

// validatorsFor maps constraint annotations to validators in a fixed order
func (e *Engine) validatorsFor(md introspection.AnnotationMetadata) ([]Validator, error) {
	var validators []Validator

	if md.Has(NotNull) {
		validators = append(validators, &NotNullValidator{})
	}
	if md.Has(NotBlank) {
		validators = append(validators, &NotBlankValidator{})
	}
	if md.Has(Min) {
		n, ok := md.IntValue(Min, introspection.ValueMember)
		if !ok {
			return nil, fmt.Errorf("invalid min constraint")
		}
		validators = append(validators, &MinValidator{Min: n})
	}
	if md.Has(Max) {
		n, ok := md.IntValue(Max, introspection.ValueMember)
		if !ok {
			return nil, fmt.Errorf("invalid max constraint")
		}
		validators = append(validators, &MaxValidator{Max: n})
	}
	if md.Has(Size) {
		size := &SizeValidator{Min: -1, Max: -1}
		if n, ok := md.IntValue(Size, "min"); ok {
			size.Min = int(n)
		}
		if n, ok := md.IntValue(Size, "max"); ok {
			size.Max = int(n)
		}
		validators = append(validators, size)
	}
	if md.Has(Pattern) {
		expr, ok := md.StringValue(Pattern, "regexp")
		if !ok {
			return nil, fmt.Errorf("invalid pattern constraint")
		}
		re, err := e.compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		validators = append(validators, &PatternValidator{Pattern: re})
	}
	if md.Has(Email) {
		validators = append(validators, &EmailValidator{})
	}
	return validators, nil
}

func (e *Engine) compile(expr string) (*regexp.Regexp, error) {
	if re, ok := e.patterns.Load(expr); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	actual, _ := e.patterns.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}
