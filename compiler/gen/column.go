package gen

import (
	"github.com/Leylan24/drift/sqltype"
)

// Column is a single resolved table/view/query column. Columns are
// immutable once resolved and owned by their parent element.
type Column struct {
	// Name is the column name as written in SQL.
	Name string
	// HostName is the identifier used in generated code. Derived from
	// Name when the schema does not override it.
	HostName string
	// Type is the semantic SQL scalar type.
	Type sqltype.Type
	// Nullable reports whether the column accepts NULL in SQL.
	Nullable bool
	// HostNullable forces a nullable host type even for a NOT NULL
	// column, e.g. for columns filled in by database defaults.
	HostNullable bool
	// Converter is the applied type converter, if any.
	Converter *AppliedConverter
	// Pos is the source position of the column definition.
	Pos string
}

// FieldName returns the host-side field identifier for the column.
func (c *Column) FieldName() string {
	if c.HostName != "" {
		return c.HostName
	}
	return camel(c.Name)
}

// GetterName returns the accessor name expected on user row classes.
func (c *Column) GetterName() string { return c.FieldName() }

// NullableInHost reports whether the host-side type of the column is
// nullable. A non-skippable converter with a nullable host side makes
// the host type nullable even for a NOT NULL column.
func (c *Column) NullableInHost() bool {
	if c.Nullable || c.HostNullable {
		return true
	}
	return c.Converter != nil && c.Converter.HostType.Nullable
}

// HostType returns the host-language type a value of this column has
// after reading it from the database. With a converter it is the
// converter's host-side type; a skippable converter on a nullable
// column widens it to nullable because null bypasses the converter.
func (c *Column) HostType() *sqltype.HostType {
	if conv := c.Converter; conv != nil {
		if conv.Skippable() && (c.Nullable || c.HostNullable) {
			return conv.HostType.WithNullable(true)
		}
		return conv.HostType
	}
	return c.Type.HostType(c.Nullable || c.HostNullable)
}

// AppliedConverter describes a bidirectional mapping between a storage
// scalar type and a richer host type. Converters are immutable once
// constructed and shared by reference between the columns using them.
type AppliedConverter struct {
	// Expr is the source expression that instantiates the converter.
	Expr string
	// HostType is the converter's host-side type.
	HostType *sqltype.HostType
	// JSONType is the optional intermediate type used for JSON
	// (de)serialization. Nil when the converter is not JSON-capable.
	JSONType *sqltype.HostType
	// SQLType is the storage-side scalar type.
	SQLType sqltype.Type
	// SQLNullable reports whether the storage-side type argument is
	// nullable.
	SQLNullable bool
	// IsEnum marks converters auto-derived from an enum declaration.
	IsEnum bool
}

// Skippable reports whether null values can bypass the converter
// entirely. That is the case when both sides are non-nullable, so a
// null in a nullable column maps to a null host value without the
// converter ever seeing it.
func (c *AppliedConverter) Skippable() bool {
	return !c.SQLNullable && !c.HostType.Nullable
}

// JSONCapable reports whether the converter also participates in JSON
// (de)serialization.
func (c *AppliedConverter) JSONCapable() bool { return c.JSONType != nil }
