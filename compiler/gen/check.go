package gen

import (
	"errors"
	"fmt"

	"github.com/Leylan24/drift/sqltype"
)

// IsAssignable reports whether a value of the actual host type can be
// stored in a column of the expected SQL scalar type. Each scalar type
// has exactly one canonical host representation; nullableInSQL widens
// the expected type to accept null.
func IsAssignable(expected sqltype.Type, actual *sqltype.HostType, nullableInSQL bool) bool {
	return assignable(expected.HostType(nullableInSQL), actual)
}

func assignable(expected, actual *sqltype.HostType) bool {
	if expected == nil || actual == nil {
		return false
	}
	// The open/dynamic host type is assignable in both directions.
	if expected.IsDynamic() || actual.IsDynamic() {
		return true
	}
	// A nullable value cannot flow into a non-nullable slot.
	if actual.Nullable && !expected.Nullable {
		return false
	}
	return expected.EqualIgnoreNull(actual)
}

// CheckAssignable is IsAssignable returning a descriptive mismatch
// instead of a bool. The mismatch is meant to be attached to the source
// element as a diagnostic, never raised as a fatal error.
func CheckAssignable(expected sqltype.Type, actual *sqltype.HostType, nullableInSQL bool) error {
	exp := expected.HostType(nullableInSQL)
	if assignable(exp, actual) {
		return nil
	}
	return &TypeError{
		Message: fmt.Sprintf("%s is not assignable to %s", actual, exp),
	}
}

// CheckColumn validates that the actual host type can be stored in the
// given column. When the column carries a converter, the expected type
// is the converter's host-side type instead of the canonical one; if
// the converter is null-skippable and the column is nullable, the
// actual type is stripped of its nullability first because the
// converter inserts the null check itself.
func CheckColumn(col *Column, actual *sqltype.HostType) error {
	if conv := col.Converter; conv != nil {
		expected := conv.HostType
		if conv.Skippable() && col.Nullable {
			expected = expected.WithNullable(true)
			actual = actual.NonNull()
		}
		if assignable(expected, actual) {
			return nil
		}
		return &TypeError{
			Column:  col.Name,
			Message: fmt.Sprintf("%s is not assignable to converter type %s", actual, expected),
		}
	}
	if err := CheckAssignable(col.Type, actual, col.Nullable); err != nil {
		var terr *TypeError
		if errors.As(err, &terr) {
			terr.Column = col.Name
		}
		return err
	}
	return nil
}
