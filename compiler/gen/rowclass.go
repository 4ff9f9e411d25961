package gen

import (
	"fmt"

	"github.com/Leylan24/drift/compiler/load"
	"github.com/Leylan24/drift/sqltype"
)

// RowClass describes how result rows of a table, view or query are
// constructed: the target type, the selected constructor or factory and
// the parameter-to-column bindings. Built once per element, immutable
// thereafter.
type RowClass struct {
	// Type is the full target type, including any instantiation.
	Type *sqltype.HostType
	// Class is the resolved class declaration. Nil for record types.
	Class *load.Class
	// Constructor is the selected constructor or factory name; empty
	// for the unnamed constructor and for record types.
	Constructor string
	// IsAsync marks factories returning a completion-wrapped instance.
	IsAsync bool
	// IsRecord marks structural product targets, bound by field order
	// instead of a constructor.
	IsRecord bool
	// Positional holds the column names bound by position, in order.
	Positional []string
	// Named maps named parameters to the column bound to them.
	Named map[string]string
	// GenerateInsertable requests an insertable wrapper over the class
	// getters.
	GenerateInsertable bool
}

// FoundClass is a resolved reference to a class declaration plus the
// type arguments of the reference when the declaration is generic. It
// is transient, used only while resolving a single row class.
type FoundClass struct {
	Class    *load.Class
	TypeArgs []*sqltype.HostType
}

// parameterType returns the declared parameter type with the class's
// type parameters substituted by the reference's type arguments.
func (f *FoundClass) parameterType(t *sqltype.HostType) *sqltype.HostType {
	if len(f.Class.TypeParams) == 0 || len(f.TypeArgs) == 0 {
		return t
	}
	return instantiate(t, f.Class.TypeParams, f.TypeArgs)
}

// instantiate substitutes type parameters by the matching type
// arguments, recursively. Unknown identifiers pass through unchanged.
func instantiate(t *sqltype.HostType, params []string, args []*sqltype.HostType) *sqltype.HostType {
	if t == nil {
		return nil
	}
	if t.PkgPath == "" && t.Record == nil && len(t.TypeArgs) == 0 {
		for i, p := range params {
			if p == t.Ident && i < len(args) {
				if t.Nullable {
					return args[i].WithNullable(true)
				}
				return args[i]
			}
		}
	}
	if len(t.TypeArgs) == 0 {
		return t
	}
	c := *t
	c.TypeArgs = make([]*sqltype.HostType, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		c.TypeArgs[i] = instantiate(a, params, args)
	}
	return &c
}

// synthesizeRowClass builds the anonymous structural row type used when
// no explicit row class is supplied: a named-field record whose field
// order follows column order.
func synthesizeRowClass(columns []*Column) *RowClass {
	rec := &sqltype.RecordType{Fields: make([]sqltype.RecordField, 0, len(columns))}
	rc := &RowClass{IsRecord: true, Named: make(map[string]string, len(columns))}
	for _, c := range columns {
		rec.Fields = append(rec.Fields, sqltype.RecordField{
			Name: c.FieldName(),
			Type: c.HostType(),
		})
		rc.Positional = append(rc.Positional, c.Name)
		rc.Named[c.FieldName()] = c.Name
	}
	rc.Type = &sqltype.HostType{Record: rec}
	return rc
}

// resolveRowClass resolves a row-class request against the element's
// columns. Findings are recorded in diags; a nil result means the
// element must be marked invalid.
func resolveRowClass(sc *load.Schema, element, pos string, ref *load.RowClassRef, columns []*Column, diags *Diagnostics) *RowClass {
	if ref == nil {
		return synthesizeRowClass(columns)
	}
	class, ok := sc.ClassByType(ref.Type)
	if !ok {
		// A plain record type needs no class declaration.
		if ref.Type != nil && ref.Type.Record != nil {
			return resolveRecordRowClass(element, pos, ref, ref.Type.Record, columns, diags)
		}
		diags.Add(element, pos, NewRowClassError(typeName(ref.Type), element, "unknown class"))
		return nil
	}
	found := &FoundClass{Class: class, TypeArgs: ref.Type.TypeArgs}
	// Classes declaring a structural supertype bind fields directly,
	// without a constructor.
	if class.Record != nil {
		rc := resolveRecordRowClass(element, pos, ref, class.Record, columns, diags)
		if rc != nil {
			rc.Class = class
		}
		return rc
	}
	params, isAsync, err := findConstructor(found, ref)
	if err != nil {
		setElement(err, element)
		diags.Add(element, pos, err)
		return nil
	}
	rc := &RowClass{
		Type:               ref.Type,
		Class:              class,
		Constructor:        ref.Constructor,
		IsAsync:            isAsync,
		GenerateInsertable: ref.GenerateInsertable,
		Named:              make(map[string]string),
	}
	matchParameters(found, rc, element, pos, params, columns, diags)
	if ref.GenerateInsertable {
		checkAccessors(class, element, pos, columns, diags)
	}
	return rc
}

// findConstructor selects the constructor or static factory matching
// the requested name. Constructors take precedence; a factory is only
// accepted when it is static and returns a (possibly completion-
// wrapped) instance of the class.
func findConstructor(found *FoundClass, ref *load.RowClassRef) ([]*load.Parameter, bool, error) {
	class := found.Class
	if ctor, ok := class.Constructor(ref.Constructor); ok {
		return ctor.Parameters, false, nil
	}
	if m, ok := class.Method(ref.Constructor); ok {
		if !m.Static {
			return nil, false, NewRowClassError(class.Name, "", fmt.Sprintf(
				"%q must be a constructor or a static method to be used as a factory", m.Name,
			))
		}
		instance := &sqltype.HostType{Ident: class.Name, PkgPath: class.PkgPath, TypeArgs: found.TypeArgs}
		ret := m.ReturnType
		if ret == nil || !ret.Awaited().EqualIgnoreNull(instance) {
			return nil, false, NewRowClassError(class.Name, "", fmt.Sprintf(
				"factory %q must return an instance of %s, or a future completing with one", m.Name, class.Name,
			))
		}
		// The factory is asynchronous exactly when awaiting its return
		// type changes it.
		return m.Parameters, ret.IsFuture(), nil
	}
	name := ref.Constructor
	if name == "" {
		name = "<unnamed>"
	}
	return nil, false, NewRowClassError(class.Name, "", fmt.Sprintf(
		"class has no constructor or static factory named %s", name,
	))
}

// matchParameters binds constructor parameters to columns by exact name
// against each column's host-side identifier. Required parameters with
// no match are reported individually; leftover columns are permitted.
func matchParameters(found *FoundClass, rc *RowClass, element, pos string, params []*load.Parameter, columns []*Column, diags *Diagnostics) {
	byHost := make(map[string]*Column, len(columns))
	for _, c := range columns {
		byHost[c.FieldName()] = c
	}
	for _, p := range params {
		col, ok := byHost[p.Name]
		if !ok {
			if p.Required {
				diags.Add(element, pos, &ParameterError{
					Parameter: p.Name,
					Class:     found.Class.Name,
					Element:   element,
				})
			}
			continue
		}
		if pt := found.parameterType(p.Type); pt != nil {
			if err := checkBinding(col, pt); err != nil {
				setElement(err, element)
				diags.Add(element, col.Pos, err)
			}
		}
		if p.Named {
			rc.Named[p.Name] = col.Name
		} else {
			rc.Positional = append(rc.Positional, col.Name)
		}
	}
}

// checkBinding verifies that the column's host-side value can flow into
// a parameter or field of the given type.
func checkBinding(col *Column, param *sqltype.HostType) error {
	actual := col.HostType()
	if assignable(param, actual) {
		return nil
	}
	return &TypeError{
		Column:  col.Name,
		Message: fmt.Sprintf("column type %s is not assignable to parameter type %s", actual, param),
	}
}

// resolveRecordRowClass binds a structural product type by field
// declaration order. Positional record fields have no stable name and
// are rejected.
func resolveRecordRowClass(element, pos string, ref *load.RowClassRef, rec *sqltype.RecordType, columns []*Column, diags *Diagnostics) *RowClass {
	if len(rec.Positional) > 0 {
		diags.Add(element, pos, &UnsupportedError{
			Element: element,
			Message: "records with positional fields are not supported as row classes, use named fields",
		})
		return nil
	}
	byHost := make(map[string]*Column, len(columns))
	for _, c := range columns {
		byHost[c.FieldName()] = c
	}
	rc := &RowClass{
		Type:               ref.Type,
		IsRecord:           true,
		GenerateInsertable: ref.GenerateInsertable,
		Named:              make(map[string]string, len(rec.Fields)),
	}
	for _, f := range rec.Fields {
		col, ok := byHost[f.Name]
		if !ok {
			diags.Add(element, pos, &ParameterError{
				Parameter: f.Name,
				Class:     typeName(ref.Type),
				Element:   element,
			})
			continue
		}
		if err := checkBinding(col, f.Type); err != nil {
			setElement(err, element)
			diags.Add(element, col.Pos, err)
		}
		rc.Positional = append(rc.Positional, col.Name)
		rc.Named[f.Name] = col.Name
	}
	return rc
}

// checkAccessors verifies that every column has a readable accessor on
// the class when insertable generation was requested. Missing accessors
// are aggregated into a single error listing all missing names.
func checkAccessors(class *load.Class, element, pos string, columns []*Column, diags *Diagnostics) {
	var missing []string
	for _, c := range columns {
		if _, ok := class.Getter(c.GetterName()); !ok {
			missing = append(missing, c.GetterName())
		}
	}
	if len(missing) > 0 {
		diags.Add(element, pos, &AccessorError{
			Class:   class.Name,
			Element: element,
			Columns: missing,
		})
	}
}

func typeName(t *sqltype.HostType) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
