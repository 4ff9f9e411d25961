package drift

import (
	"errors"
	"fmt"
)

// Standard sentinel errors reported by the bundled converters.
var (
	// ErrValueNotInEnum is returned when a stored value does not map back
	// to any declared enum value.
	ErrValueNotInEnum = errors.New("drift: stored value is not part of the enum")
)

// TypeConverter maps between the application representation D of a column
// and its SQL storage representation S. Implementations must be pure:
// the analyzer assumes converting a value and converting it back is the
// identity.
type TypeConverter[D, S any] interface {
	// ToSQL converts the application value to the value stored in the
	// database.
	ToSQL(value D) S
	// FromSQL reads the value stored in the database back into the
	// application representation.
	FromSQL(value S) D
}

// JSONTypeConverter is a TypeConverter that additionally participates in
// JSON (de)serialization through the intermediate representation J.
type JSONTypeConverter[D, S, J any] interface {
	TypeConverter[D, S]
	// ToJSON converts the application value to its JSON intermediate.
	ToJSON(value D) J
	// FromJSON reads a JSON intermediate back into the application
	// representation.
	FromJSON(value J) D
}

// NullAware wraps a converter with non-nullable sides so that it can be
// applied to a nullable column: null passes straight through, every other
// value goes through the inner converter.
type NullAware[D, S any] struct {
	inner TypeConverter[D, S]
}

// WrapNullAware returns a null-aware adapter around inner.
func WrapNullAware[D, S any](inner TypeConverter[D, S]) *NullAware[D, S] {
	return &NullAware[D, S]{inner: inner}
}

// ToSQL converts a possibly-absent application value.
func (c *NullAware[D, S]) ToSQL(value *D) *S {
	if value == nil {
		return nil
	}
	s := c.inner.ToSQL(*value)
	return &s
}

// FromSQL reads a possibly-absent stored value.
func (c *NullAware[D, S]) FromSQL(value *S) *D {
	if value == nil {
		return nil
	}
	d := c.inner.FromSQL(*value)
	return &d
}

// EnumIndexConverter stores an enum value as the integer index into its
// declared value enumeration.
type EnumIndexConverter[E comparable] struct {
	// Values is the enum's full value enumeration, in declaration order.
	Values []E
}

// ToSQL returns the index of the value within the enumeration.
func (c EnumIndexConverter[E]) ToSQL(value E) int64 {
	for i, v := range c.Values {
		if v == value {
			return int64(i)
		}
	}
	panic(fmt.Errorf("%w: %v", ErrValueNotInEnum, value))
}

// FromSQL returns the enum value at the stored index.
func (c EnumIndexConverter[E]) FromSQL(value int64) E {
	if value < 0 || value >= int64(len(c.Values)) {
		panic(fmt.Errorf("%w: index %d", ErrValueNotInEnum, value))
	}
	return c.Values[value]
}

// ToJSON mirrors the storage representation.
func (c EnumIndexConverter[E]) ToJSON(value E) int64 { return c.ToSQL(value) }

// FromJSON mirrors the storage representation.
func (c EnumIndexConverter[E]) FromJSON(value int64) E { return c.FromSQL(value) }

// EnumNameConverter stores an enum value under its declared name.
type EnumNameConverter[E comparable] struct {
	// Values maps each declared name to its enum value, and Names the
	// reverse direction. Both cover the full enumeration.
	Values map[string]E
	Names  map[E]string
}

// ToSQL returns the declared name of the value.
func (c EnumNameConverter[E]) ToSQL(value E) string {
	name, ok := c.Names[value]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrValueNotInEnum, value))
	}
	return name
}

// FromSQL returns the enum value declared under the stored name.
func (c EnumNameConverter[E]) FromSQL(value string) E {
	v, ok := c.Values[value]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrValueNotInEnum, value))
	}
	return v
}

// ToJSON mirrors the storage representation.
func (c EnumNameConverter[E]) ToJSON(value E) string { return c.ToSQL(value) }

// FromJSON mirrors the storage representation.
func (c EnumNameConverter[E]) FromJSON(value string) E { return c.FromSQL(value) }
