package drift

import (
	"errors"
	"fmt"
)

// Standard sentinel errors reported by generated data-access code.
var (
	// ErrConversion is returned when a type converter rejects a value.
	ErrConversion = errors.New("drift: conversion failed")

	// ErrNullInNonNullable is returned when a NULL arrives in a column
	// that was declared NOT NULL.
	ErrNullInNonNullable = errors.New("drift: null value in non-nullable column")
)

// ConversionError reports a value a type converter could not map.
type ConversionError struct {
	column string
	value  any // the rejected value, if available
	wrap   error
}

// Error returns the error string.
func (e *ConversionError) Error() string {
	if e.value != nil {
		return fmt.Sprintf("drift: cannot convert value %v of column %q", e.value, e.column)
	}
	return fmt.Sprintf("drift: cannot convert value of column %q", e.column)
}

// Is reports whether the target error matches ConversionError.
// This allows errors.Is(convErr, ErrConversion) to return true.
func (e *ConversionError) Is(err error) bool {
	return err == ErrConversion
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.wrap
}

// Column returns the column whose value was rejected.
func (e *ConversionError) Column() string {
	return e.column
}

// Value returns the rejected value, if available.
func (e *ConversionError) Value() any {
	return e.value
}

// NewConversionError returns a new ConversionError for the given column.
func NewConversionError(column string, value any, wrap error) *ConversionError {
	return &ConversionError{column: column, value: value, wrap: wrap}
}

// IsConversion returns true if the error is a ConversionError.
func IsConversion(err error) bool {
	if err == nil {
		return false
	}
	var e *ConversionError
	return errors.As(err, &e) || errors.Is(err, ErrConversion)
}

// NullError reports a NULL read from a column declared NOT NULL.
type NullError struct {
	column string
}

// Error returns the error string.
func (e *NullError) Error() string {
	return fmt.Sprintf("drift: column %q is not nullable but the row holds null", e.column)
}

// Is reports whether the target error matches NullError.
func (e *NullError) Is(err error) bool {
	return err == ErrNullInNonNullable
}

// Column returns the offending column.
func (e *NullError) Column() string {
	return e.column
}

// NewNullError returns a new NullError for the given column.
func NewNullError(column string) *NullError {
	return &NullError{column: column}
}

// IsNull returns true if the error is a NullError.
func IsNull(err error) bool {
	if err == nil {
		return false
	}
	var e *NullError
	return errors.As(err, &e) || errors.Is(err, ErrNullInNonNullable)
}
