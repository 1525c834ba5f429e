package introspection

import (
	"errors"
	"fmt"
)

// Error kinds returned by the introspection runtime. Every *Error unwraps to
// exactly one of these.
var (
	// ErrUnknownDispatchIndex is returned when a dispatcher receives an index it does not declare
	ErrUnknownDispatchIndex = errors.New("unknown dispatch index")

	// ErrInvalidArgument is returned for a bean of the wrong type or a value not assignable to a property
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedOperation is returned when reading a write-only or writing a read-only property
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrNoDefaultConstructor is returned when a type cannot be built without arguments
	ErrNoDefaultConstructor = errors.New("no default constructor exists")

	// ErrArgumentCountMismatch is returned when the number of constructor values is wrong
	ErrArgumentCountMismatch = errors.New("argument count mismatch")

	// ErrNullNotAllowed is returned when nil is passed for a non-nullable constructor argument
	ErrNullNotAllowed = errors.New("null not allowed")

	// ErrTypeMismatch is returned when a constructor value is not assignable to its argument
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNoSuchElement is returned when an iterator is advanced past its end
	ErrNoSuchElement = errors.New("no such element")

	// ErrNotIntrospected is returned when no introspection is registered for a type
	ErrNotIntrospected = errors.New("type is not introspected")

	// ErrAlreadyRegistered is returned when a type is registered twice
	ErrAlreadyRegistered = errors.New("type already registered")
)

// Error describes a failed introspection operation.
type Error struct {
	Kind     error  // One of the Err* sentinels
	BeanType string // Type being introspected, if known
	Member   string // Property, method or argument name, if any
	Message  string // Diagnostic detail (expected vs actual)
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg = e.Message
	}
	switch {
	case e.BeanType != "" && e.Member != "":
		return fmt.Sprintf("%s.%s: %s", e.BeanType, e.Member, msg)
	case e.BeanType != "":
		return fmt.Sprintf("%s: %s", e.BeanType, msg)
	default:
		return msg
	}
}

// Unwrap returns the error kind so errors.Is works against the sentinels
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, beanType, member, format string, args ...any) *Error {
	return &Error{
		Kind:     kind,
		BeanType: beanType,
		Member:   member,
		Message:  fmt.Sprintf(format, args...),
	}
}

// UnknownDispatchIndex returns the error generated dispatchers use for an
// index they do not handle.
func UnknownDispatchIndex(index int) error {
	return &Error{
		Kind:    ErrUnknownDispatchIndex,
		Message: fmt.Sprintf("unknown dispatch at index: %d", index),
	}
}

// IsUnsupportedOperation returns true if the error is ErrUnsupportedOperation
func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// IsInvalidArgument returns true if the error is ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotIntrospected returns true if the error is ErrNotIntrospected
func IsNotIntrospected(err error) bool {
	return errors.Is(err, ErrNotIntrospected)
}

// IsInstantiationError returns true if the error came from building a bean
func IsInstantiationError(err error) bool {
	return errors.Is(err, ErrNoDefaultConstructor) ||
		errors.Is(err, ErrArgumentCountMismatch) ||
		errors.Is(err, ErrNullNotAllowed) ||
		errors.Is(err, ErrTypeMismatch)
}
