package drift

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversionError(t *testing.T) {
	require := require.New(t)

	err := NewConversionError("color", "purple", ErrValueNotInEnum)
	require.EqualError(err, `drift: cannot convert value purple of column "color"`)
	require.ErrorIs(err, ErrConversion)
	require.ErrorIs(err, ErrValueNotInEnum)
	require.Equal("color", err.Column())
	require.Equal("purple", err.Value())
	require.True(IsConversion(err))
	require.True(IsConversion(fmt.Errorf("wrapped: %w", err)))
	require.False(IsConversion(errors.New("other")))
	require.False(IsConversion(nil))

	err = NewConversionError("color", nil, nil)
	require.EqualError(err, `drift: cannot convert value of column "color"`)
}

func TestNullError(t *testing.T) {
	require := require.New(t)

	err := NewNullError("name")
	require.EqualError(err, `drift: column "name" is not nullable but the row holds null`)
	require.ErrorIs(err, ErrNullInNonNullable)
	require.Equal("name", err.Column())
	require.True(IsNull(err))
	require.True(IsNull(fmt.Errorf("scan: %w", err)))
	require.False(IsNull(errors.New("other")))
	require.False(IsNull(nil))
}
