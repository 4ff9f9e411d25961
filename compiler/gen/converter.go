package gen

import (
	"fmt"

	"github.com/Leylan24/drift"
	"github.com/Leylan24/drift/compiler/load"
	"github.com/Leylan24/drift/sqltype"
)

// resolveConverter resolves a converter request declared on the given
// column into an applied converter. The schema is consulted for enum
// declarations referenced by enum-derived converters.
func resolveConverter(sc *load.Schema, col *load.Column) (*AppliedConverter, error) {
	ref := col.Converter
	switch {
	case ref == nil:
		return nil, nil
	case ref.Expr != nil:
		return resolveExprConverter(col, ref.Expr)
	case ref.Enum != nil:
		return resolveEnumConverter(sc, col, ref.Enum)
	}
	return nil, &UnsupportedError{Message: fmt.Sprintf("empty converter request on column %q", col.Name)}
}

// resolveExprConverter validates an explicit converter expression. The
// expression's static type must be an instantiation of the converter
// capability with two or three type arguments; a third argument marks
// the converter as JSON-capable.
func resolveExprConverter(col *load.Column, expr *load.Expr) (*AppliedConverter, error) {
	t := expr.Type
	if t == nil || t.PkgPath != drift.PkgPath {
		return nil, NewTypeError("", col.Name, fmt.Sprintf("expression %q is not a type converter", expr.Source))
	}
	var wantArgs int
	switch t.Ident {
	case drift.ConverterIdent:
		wantArgs = 2
	case drift.JSONConverterIdent:
		wantArgs = 3
	default:
		return nil, NewTypeError("", col.Name, fmt.Sprintf("expression %q is not a type converter", expr.Source))
	}
	if len(t.TypeArgs) != wantArgs {
		return nil, NewTypeError("", col.Name, fmt.Sprintf(
			"converter %s expects %d type arguments, got %d", t.Ident, wantArgs, len(t.TypeArgs),
		))
	}
	conv := &AppliedConverter{
		Expr:        expr.Source,
		HostType:    t.TypeArgs[0],
		SQLNullable: t.TypeArgs[1].Nullable,
	}
	if wantArgs == 3 {
		conv.JSONType = t.TypeArgs[2]
	}
	storage := t.TypeArgs[1]
	scalar, ok := sqltype.FromHost(storage.NonNull())
	if !ok {
		return nil, NewTypeError("", col.Name, fmt.Sprintf(
			"converter storage type %s is not a supported SQL representation", storage,
		))
	}
	conv.SQLType = scalar
	// A converter on a NOT NULL column must not be able to produce null.
	if !col.Nullable && conv.SQLNullable {
		return nil, NewNullabilityError("", col.Name, fmt.Sprintf(
			"converter %q can map to null, but is applied to a non-nullable SQL type", expr.Source,
		))
	}
	// A nullable column either needs a converter accepting null on the
	// storage side, or one that can be skipped for null values.
	if col.Nullable && !conv.SQLNullable && !conv.Skippable() {
		return nil, NewNullabilityError("", col.Name, fmt.Sprintf(
			"converter %q won't be able to map null values of the nullable column; "+
				"wrap it in a null-aware converter to handle null explicitly", expr.Source,
		))
	}
	if err := CheckAssignable(col.Type, storage.NonNull(), col.Nullable); err != nil {
		return nil, err
	}
	return conv, nil
}

// resolveEnumConverter synthesizes a converter for an enum declaration.
// Index-based encodings store the value index as an integer, name-based
// encodings the value name as text. The JSON side mirrors the storage
// side.
func resolveEnumConverter(sc *load.Schema, col *load.Column, req *load.EnumRequest) (*AppliedConverter, error) {
	enum, ok := sc.EnumByType(req.Type)
	if !ok {
		return nil, NewTypeError("", col.Name, fmt.Sprintf("%s is not an enum declaration", req.Type))
	}
	conv := &AppliedConverter{
		HostType: enum.HostType(),
		IsEnum:   true,
	}
	if req.ByName {
		conv.SQLType = sqltype.TypeText
		conv.Expr = fmt.Sprintf("EnumNameConverter(%s.values)", enum.Name)
	} else {
		conv.SQLType = sqltype.TypeInt
		conv.Expr = fmt.Sprintf("EnumIndexConverter(%s.values)", enum.Name)
	}
	conv.JSONType = conv.SQLType.HostType(false)
	if err := CheckAssignable(col.Type, conv.SQLType.HostType(false), col.Nullable); err != nil {
		return nil, err
	}
	return conv, nil
}
