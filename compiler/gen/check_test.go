package gen

import (
	"testing"

	"github.com/Leylan24/drift/sqltype"

	"github.com/stretchr/testify/require"
)

func TestIsAssignable(t *testing.T) {
	require := require.New(t)

	// Canonical scalar representations.
	require.True(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "int64"}, false))
	require.True(IsAssignable(sqltype.TypeText, &sqltype.HostType{Ident: "string"}, false))
	require.True(IsAssignable(sqltype.TypeTimestamp, &sqltype.HostType{Ident: "Time", PkgPath: "time"}, false))
	require.False(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "string"}, false))

	// A non-null value flows into a nullable slot, not the other way.
	require.True(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "int64"}, true))
	require.False(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "int64", Nullable: true}, false))
	require.True(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "int64", Nullable: true}, true))

	// The open type is assignable in both directions.
	require.True(IsAssignable(sqltype.TypeAny, &sqltype.HostType{Ident: "string"}, false))
	require.True(IsAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "any"}, false))
}

func TestCheckAssignable(t *testing.T) {
	require := require.New(t)

	require.NoError(CheckAssignable(sqltype.TypeBool, &sqltype.HostType{Ident: "bool"}, false))

	err := CheckAssignable(sqltype.TypeInt, &sqltype.HostType{Ident: "string"}, false)
	require.Error(err)
	require.ErrorIs(err, ErrTypeMismatch)
	require.ErrorContains(err, "string is not assignable to int64")
}

func TestCheckColumnConverter(t *testing.T) {
	require := require.New(t)

	color := &sqltype.HostType{Ident: "Color", PkgPath: "example.com/app/model"}
	conv := &AppliedConverter{HostType: color, SQLType: sqltype.TypeInt}
	require.True(conv.Skippable())

	col := &Column{Name: "color", Type: sqltype.TypeInt, Converter: conv}
	require.NoError(CheckColumn(col, color))
	require.Error(CheckColumn(col, &sqltype.HostType{Ident: "string"}))

	// A nullable column with a skippable converter accepts a nullable
	// actual type; the converter never sees null.
	col.Nullable = true
	require.NoError(CheckColumn(col, color.WithNullable(true)))
	require.NoError(CheckColumn(col, color))
}

// The null-stripping rule: for a skippable converter on a nullable
// column, checking the nullable actual type must agree with checking
// the converter's declared non-null host type directly.
func TestSkippableConverterStripsNullability(t *testing.T) {
	require := require.New(t)

	for _, host := range []*sqltype.HostType{
		{Ident: "Color", PkgPath: "example.com/app/model"},
		{Ident: "string"},
		{Ident: "Duration", PkgPath: "time"},
	} {
		conv := &AppliedConverter{HostType: host, SQLType: sqltype.TypeText}
		col := &Column{Name: "c", Type: sqltype.TypeText, Nullable: true, Converter: conv}
		nullable := host.WithNullable(true)
		viaColumn := CheckColumn(col, nullable) == nil
		direct := assignable(conv.HostType.WithNullable(true), nullable.NonNull())
		require.Equal(direct, viaColumn, "host %s", host)
		require.True(viaColumn)
	}
}

func TestColumnHostType(t *testing.T) {
	require := require.New(t)

	col := &Column{Name: "name", Type: sqltype.TypeText}
	require.Equal("string", col.HostType().Ident)
	require.False(col.HostType().Nullable)

	col.Nullable = true
	require.True(col.HostType().Nullable)

	// A skippable converter on a nullable column widens to nullable.
	color := &sqltype.HostType{Ident: "Color", PkgPath: "example.com/app/model"}
	col.Converter = &AppliedConverter{HostType: color, SQLType: sqltype.TypeText}
	require.Equal("Color", col.HostType().Ident)
	require.True(col.HostType().Nullable)

	col.Nullable = false
	require.False(col.HostType().Nullable)
}
