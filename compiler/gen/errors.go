package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the analysis failure classes.
var (
	// ErrInvalidRowClass indicates a row class without a usable
	// constructor or factory.
	ErrInvalidRowClass = errors.New("drift: invalid row class")
	// ErrUnmatchedParameter indicates a required parameter with no
	// matching column.
	ErrUnmatchedParameter = errors.New("drift: unmatched parameter")
	// ErrMissingAccessor indicates insertable generation without getters
	// for every column.
	ErrMissingAccessor = errors.New("drift: missing accessor")
	// ErrTypeMismatch indicates a host type that is not assignable to the
	// type required by a column or converter.
	ErrTypeMismatch = errors.New("drift: type mismatch")
	// ErrNullability indicates a converter/column nullability combination
	// that can lose or mishandle null.
	ErrNullability = errors.New("drift: nullability mismatch")
	// ErrUnsupported indicates a construct the generator cannot model.
	ErrUnsupported = errors.New("drift: unsupported construct")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("drift: missing configuration")
)

// RowClassError reports a structurally unusable row class.
type RowClassError struct {
	Class   string // row class name
	Element string // table/view/query name
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RowClassError) Error() string {
	var b strings.Builder
	b.WriteString("drift: row class error")
	if e.Class != "" {
		b.WriteString(" on class ")
		b.WriteString(e.Class)
	}
	if e.Element != "" {
		b.WriteString(" for ")
		b.WriteString(e.Element)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RowClassError) Unwrap() error { return e.Cause }

// Is reports whether the target matches the sentinel error for RowClassError.
func (e *RowClassError) Is(target error) bool { return target == ErrInvalidRowClass }

// NewRowClassError creates a new RowClassError.
func NewRowClassError(class, element, message string) *RowClassError {
	return &RowClassError{Class: class, Element: element, Message: message}
}

// ParameterError reports a required constructor parameter with no
// matching column. Unmatched parameters are reported individually, one
// error per parameter.
type ParameterError struct {
	Parameter string
	Class     string
	Element   string
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("drift: parameter %q of %s has no matching column", e.Parameter, e.Class)
}

// Is reports whether the target matches the sentinel error for ParameterError.
func (e *ParameterError) Is(target error) bool { return target == ErrUnmatchedParameter }

// AccessorError aggregates every column lacking a readable accessor when
// insertable generation was requested.
type AccessorError struct {
	Class   string
	Element string
	Columns []string // host-side identifiers, in column order
}

// Error implements the error interface.
func (e *AccessorError) Error() string {
	return fmt.Sprintf(
		"drift: class %s used as insertable is missing getters for columns: %s",
		e.Class, strings.Join(e.Columns, ", "),
	)
}

// Is reports whether the target matches the sentinel error for AccessorError.
func (e *AccessorError) Is(target error) bool { return target == ErrMissingAccessor }

// TypeError reports a host type that is not assignable where a column or
// converter requires another type.
type TypeError struct {
	Element string
	Column  string
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	var b strings.Builder
	b.WriteString("drift: type error")
	if e.Element != "" {
		b.WriteString(" on ")
		b.WriteString(e.Element)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for TypeError.
func (e *TypeError) Is(target error) bool { return target == ErrTypeMismatch }

// NewTypeError creates a new TypeError.
func NewTypeError(element, column, message string) *TypeError {
	return &TypeError{Element: element, Column: column, Message: message}
}

// NullabilityError reports a converter/column combination that can lose
// or mishandle null values.
type NullabilityError struct {
	Element string
	Column  string
	Message string
}

// Error implements the error interface.
func (e *NullabilityError) Error() string {
	var b strings.Builder
	b.WriteString("drift: nullability error")
	if e.Element != "" {
		b.WriteString(" on ")
		b.WriteString(e.Element)
	}
	if e.Column != "" {
		b.WriteString(" column ")
		b.WriteString(e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for NullabilityError.
func (e *NullabilityError) Is(target error) bool { return target == ErrNullability }

// NewNullabilityError creates a new NullabilityError.
func NewNullabilityError(element, column, message string) *NullabilityError {
	return &NullabilityError{Element: element, Column: column, Message: message}
}

// UnsupportedError reports a construct the generator cannot model, such
// as positional fields on a record used as a row class.
type UnsupportedError struct {
	Element string
	Message string
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("drift: unsupported construct on %s: %s", e.Element, e.Message)
	}
	return "drift: unsupported construct: " + e.Message
}

// Is reports whether the target matches the sentinel error for UnsupportedError.
func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("drift: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("drift: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsRowClassError reports whether the error is a RowClassError.
func IsRowClassError(err error) bool {
	var e *RowClassError
	return errors.As(err, &e)
}

// IsAccessorError reports whether the error is an AccessorError.
func IsAccessorError(err error) bool {
	var e *AccessorError
	return errors.As(err, &e)
}

// IsTypeError reports whether the error is a TypeError.
func IsTypeError(err error) bool {
	var e *TypeError
	return errors.As(err, &e)
}

// IsNullabilityError reports whether the error is a NullabilityError.
func IsNullabilityError(err error) bool {
	var e *NullabilityError
	return errors.As(err, &e)
}
