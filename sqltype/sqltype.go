// Package sqltype defines the abstract SQL scalar types understood by the
// analyzer and the host-type descriptors used for type checking and code
// generation.
package sqltype

import (
	"fmt"
	"strings"
)

// A Type is an abstract SQL scalar type. Every column, query result and
// converter storage side resolves to exactly one Type.
type Type uint8

const (
	TypeInvalid Type = iota
	// TypeInt is a 64-bit integer column.
	TypeInt
	// TypeBigInt is an arbitrary-precision integer column. It is stored as
	// INTEGER but mapped to big.Int on the host side.
	TypeBigInt
	// TypeText is a string column.
	TypeText
	// TypeBool is a boolean column, stored as INTEGER (0/1).
	TypeBool
	// TypeFloat is a double-precision floating point column.
	TypeFloat
	// TypeTimestamp is a date-time column, stored as INTEGER (unix seconds).
	TypeTimestamp
	// TypeBlob is a byte-sequence column.
	TypeBlob
	// TypeAny is an open column type with no checked host representation.
	TypeAny
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:   "invalid",
	TypeInt:       "int",
	TypeBigInt:    "bigInt",
	TypeText:      "text",
	TypeBool:      "bool",
	TypeFloat:     "float",
	TypeTimestamp: "timestamp",
	TypeBlob:      "blob",
	TypeAny:       "any",
}

// sqliteNames holds the column type as written in SQLite DDL.
var sqliteNames = [...]string{
	TypeInvalid:   "",
	TypeInt:       "INTEGER",
	TypeBigInt:    "INTEGER",
	TypeText:      "TEXT",
	TypeBool:      "INTEGER",
	TypeFloat:     "REAL",
	TypeTimestamp: "INTEGER",
	TypeBlob:      "BLOB",
	TypeAny:       "ANY",
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid=%d", t)
}

// Valid reports if the given type is a valid scalar type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// SQLiteName returns the type name used in SQLite DDL for this type.
func (t Type) SQLiteName() string {
	if t < endTypes {
		return sqliteNames[t]
	}
	return ""
}

// Numeric reports if the type is stored as a numeric SQL value.
func (t Type) Numeric() bool {
	switch t {
	case TypeInt, TypeBigInt, TypeBool, TypeFloat, TypeTimestamp:
		return true
	}
	return false
}

// hostTypes is the canonical scalar to host-type table. It is initialized
// once and never mutated; HostType returns copies.
var hostTypes = [...]HostType{
	TypeInt:       {Ident: "int64"},
	TypeBigInt:    {Ident: "Int", PkgPath: "math/big"},
	TypeText:      {Ident: "string"},
	TypeBool:      {Ident: "bool"},
	TypeFloat:     {Ident: "float64"},
	TypeTimestamp: {Ident: "Time", PkgPath: "time"},
	TypeBlob:      {Ident: "[]byte"},
	TypeAny:       {Ident: "any"},
}

// HostType returns the canonical host representation for the scalar type,
// with the given nullability. The returned value is owned by the caller.
func (t Type) HostType(nullable bool) *HostType {
	if !t.Valid() {
		return nil
	}
	h := hostTypes[t]
	h.Nullable = nullable
	return &h
}

// FromHost returns the scalar type whose canonical host representation
// matches h, ignoring nullability. The second result is false when no
// scalar type maps to h.
func FromHost(h *HostType) (Type, bool) {
	if h == nil {
		return TypeInvalid, false
	}
	for t := TypeInt; t < endTypes; t++ {
		c := hostTypes[t]
		if c.Ident == h.Ident && c.PkgPath == h.PkgPath && h.Record == nil && len(h.TypeArgs) == 0 {
			return t, true
		}
	}
	return TypeInvalid, false
}

// A HostType describes a type on the host-language side of the generator:
// a builtin, a named declaration with its defining package, or a record
// (structural product) type. A nil TypeArgs means the declaration was not
// generic or was not instantiated.
type HostType struct {
	// Ident is the local identifier of the type (e.g. "int64", "Time",
	// "MyEnum"). Empty for record types.
	Ident string
	// PkgPath is the import path of the defining package. Empty for
	// builtins and record types.
	PkgPath string
	// Nullable reports if the type admits null/absent values.
	Nullable bool
	// TypeArgs holds the generic instantiation, if any.
	TypeArgs []*HostType
	// Record is non-nil for structural product types.
	Record *RecordType
}

// A RecordType is a structural product type: an ordered set of named
// fields, plus positional fields for record types that declare them.
type RecordType struct {
	Fields     []RecordField
	Positional []*HostType
}

// A RecordField is a single named field of a record type.
type RecordField struct {
	Name string
	Type *HostType
}

// futureIdent is the identifier of the completion wrapper used by
// asynchronous row-class factories.
const futureIdent = "Future"

// Futured returns t wrapped in the completion type used by asynchronous
// factories.
func Futured(t *HostType) *HostType {
	return &HostType{Ident: futureIdent, TypeArgs: []*HostType{t}}
}

// IsFuture reports if the type is a completion wrapper.
func (h *HostType) IsFuture() bool {
	return h != nil && h.Ident == futureIdent && h.PkgPath == "" && len(h.TypeArgs) == 1
}

// Awaited unwraps one level of completion wrapping, if present.
func (h *HostType) Awaited() *HostType {
	if h.IsFuture() {
		return h.TypeArgs[0]
	}
	return h
}

// IsDynamic reports if the type is the open "any" type, which is
// assignable from every host type.
func (h *HostType) IsDynamic() bool {
	return h != nil && h.Ident == "any" && h.PkgPath == "" && h.Record == nil
}

// NonNull returns a shallow copy of the type with nullability stripped.
// The receiver is not modified.
func (h *HostType) NonNull() *HostType {
	if h == nil || !h.Nullable {
		return h
	}
	c := *h
	c.Nullable = false
	return &c
}

// WithNullable returns a copy of the type with the given nullability.
func (h *HostType) WithNullable(nullable bool) *HostType {
	if h == nil || h.Nullable == nullable {
		return h
	}
	c := *h
	c.Nullable = nullable
	return &c
}

// Equal reports deep structural equality, including nullability.
func (h *HostType) Equal(other *HostType) bool {
	switch {
	case h == other:
		return true
	case h == nil || other == nil:
		return false
	case h.Ident != other.Ident || h.PkgPath != other.PkgPath || h.Nullable != other.Nullable:
		return false
	case len(h.TypeArgs) != len(other.TypeArgs):
		return false
	}
	for i := range h.TypeArgs {
		if !h.TypeArgs[i].Equal(other.TypeArgs[i]) {
			return false
		}
	}
	return equalRecords(h.Record, other.Record)
}

// EqualIgnoreNull reports structural equality ignoring top-level
// nullability.
func (h *HostType) EqualIgnoreNull(other *HostType) bool {
	return h.NonNull().Equal(other.NonNull())
}

func equalRecords(r1, r2 *RecordType) bool {
	switch {
	case r1 == r2:
		return true
	case r1 == nil || r2 == nil:
		return false
	case len(r1.Fields) != len(r2.Fields) || len(r1.Positional) != len(r2.Positional):
		return false
	}
	for i := range r1.Fields {
		if r1.Fields[i].Name != r2.Fields[i].Name || !r1.Fields[i].Type.Equal(r2.Fields[i].Type) {
			return false
		}
	}
	for i := range r1.Positional {
		if !r1.Positional[i].Equal(r2.Positional[i]) {
			return false
		}
	}
	return true
}

// String renders the type for diagnostics. Named types are rendered as
// pkg.Ident, records as ({T name, ...}), and nullable types with a
// trailing "?".
func (h *HostType) String() string {
	if h == nil {
		return "<nil>"
	}
	var b strings.Builder
	switch {
	case h.Record != nil:
		b.WriteString("(")
		if len(h.Record.Positional) > 0 {
			for i, p := range h.Record.Positional {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(p.String())
			}
		}
		if len(h.Record.Fields) > 0 {
			if len(h.Record.Positional) > 0 {
				b.WriteString(", ")
			}
			b.WriteString("{")
			for i, f := range h.Record.Fields {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(f.Type.String())
				b.WriteString(" ")
				b.WriteString(f.Name)
			}
			b.WriteString("}")
		}
		b.WriteString(")")
	case h.PkgPath != "":
		b.WriteString(pkgBase(h.PkgPath))
		b.WriteString(".")
		b.WriteString(h.Ident)
	default:
		b.WriteString(h.Ident)
	}
	if len(h.TypeArgs) > 0 && h.Record == nil {
		b.WriteString("[")
		for i, a := range h.TypeArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString("]")
	}
	if h.Nullable {
		b.WriteString("?")
	}
	return b.String()
}

func pkgBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
