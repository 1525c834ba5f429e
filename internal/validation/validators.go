package validation

import (
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Validator checks a single property value. Nil values pass every
// validator except NotNullValidator.
type Validator interface {
	Validate(value any) error
}

// NotNullValidator rejects nil and nil pointers, slices and maps
type NotNullValidator struct{}

// Validate implements the Validator interface
func (v *NotNullValidator) Validate(value any) error {
	if isNil(value) {
		return fmt.Errorf("must not be null")
	}
	return nil
}

// NotBlankValidator rejects nil and whitespace-only strings
type NotBlankValidator struct{}

// Validate implements the Validator interface
func (v *NotBlankValidator) Validate(value any) error {
	if isNil(value) {
		return fmt.Errorf("must not be blank")
	}
	strVal, ok := value.(string)
	if !ok {
		return nil
	}
	if strings.TrimSpace(strVal) == "" {
		return fmt.Errorf("must not be blank")
	}
	return nil
}

// MinValidator validates minimum values for numbers and string lengths
type MinValidator struct {
	Min int64
}

// Validate implements the Validator interface
func (v *MinValidator) Validate(value any) error {
	if isNil(value) {
		return nil
	}

	if strVal, ok := value.(string); ok {
		if int64(utf8.RuneCountInString(strVal)) < v.Min {
			return fmt.Errorf("must be at least %d characters", v.Min)
		}
		return nil
	}

	if isFloat(value) {
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("expected numeric value")
		}
		if f < float64(v.Min) {
			return fmt.Errorf("must be at least %d", v.Min)
		}
		return nil
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("expected numeric value")
	}
	if n < v.Min {
		return fmt.Errorf("must be at least %d", v.Min)
	}
	return nil
}

// MaxValidator validates maximum values for numbers and string lengths
type MaxValidator struct {
	Max int64
}

// Validate implements the Validator interface
func (v *MaxValidator) Validate(value any) error {
	if isNil(value) {
		return nil
	}

	if strVal, ok := value.(string); ok {
		if int64(utf8.RuneCountInString(strVal)) > v.Max {
			return fmt.Errorf("must be at most %d characters", v.Max)
		}
		return nil
	}

	if isFloat(value) {
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("expected numeric value")
		}
		if f > float64(v.Max) {
			return fmt.Errorf("must be at most %d", v.Max)
		}
		return nil
	}

	n, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("expected numeric value")
	}
	if n > v.Max {
		return fmt.Errorf("must be at most %d", v.Max)
	}
	return nil
}

// SizeValidator bounds the length of strings, slices and maps. A negative
// bound is not checked.
type SizeValidator struct {
	Min int
	Max int
}

// Validate implements the Validator interface
func (v *SizeValidator) Validate(value any) error {
	if isNil(value) {
		return nil
	}

	var size int
	if strVal, ok := value.(string); ok {
		size = utf8.RuneCountInString(strVal)
	} else {
		val := reflect.ValueOf(value)
		switch val.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			size = val.Len()
		default:
			return fmt.Errorf("size validation requires a string, slice or map value")
		}
	}

	if v.Min >= 0 && size < v.Min {
		return fmt.Errorf("size must be at least %d", v.Min)
	}
	if v.Max >= 0 && size > v.Max {
		return fmt.Errorf("size must be at most %d", v.Max)
	}
	return nil
}

// PatternValidator validates string values against a regex pattern
type PatternValidator struct {
	Pattern *regexp.Regexp
}

// Validate implements the Validator interface
func (v *PatternValidator) Validate(value any) error {
	if isNil(value) {
		return nil
	}

	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("pattern validation requires string value")
	}

	if !v.Pattern.MatchString(strVal) {
		return fmt.Errorf("must match %q", v.Pattern.String())
	}

	return nil
}

// EmailValidator validates email addresses. Empty strings pass; combine
// with NotBlank to require a value.
type EmailValidator struct{}

// Validate implements the Validator interface
func (v *EmailValidator) Validate(value any) error {
	if isNil(value) {
		return nil
	}

	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("email validation requires string value")
	}
	if strVal == "" {
		return nil
	}

	// RFC 5322 address without a display name
	addr, err := mail.ParseAddress(strVal)
	if err != nil || addr.Address != strVal {
		return fmt.Errorf("must be a valid email address")
	}

	return nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func isFloat(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	}
	return false
}
