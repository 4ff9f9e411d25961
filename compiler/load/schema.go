// Package load defines the descriptors handed to the analyzer by the
// upstream collaborators: the SQL frontend (parsed tables, views and
// queries) and the host-language symbol resolver (classes, enums and
// record types). Descriptors are plain data and carry no behavior beyond
// validation; the compiler/gen package resolves them into the typed model.
package load

import (
	"encoding/json"
	"fmt"

	"github.com/Leylan24/drift/sqltype"
)

// Schema is one analyzed source module: every SQL element declared in it
// together with the host-language declarations it references.
type Schema struct {
	// Name is the module name, used for diagnostics.
	Name string `json:"name,omitempty"`
	// SourceURI identifies the module for import resolution between
	// generated output units.
	SourceURI string   `json:"source_uri,omitempty"`
	Tables    []*Table `json:"tables,omitempty"`
	Views     []*View  `json:"views,omitempty"`
	Queries   []*Query `json:"queries,omitempty"`
	Classes   []*Class `json:"classes,omitempty"`
	Enums     []*Enum  `json:"enums,omitempty"`
}

// Table is a parsed CREATE TABLE element.
type Table struct {
	Name       string       `json:"name,omitempty"`
	Pos        string       `json:"pos,omitempty"`
	Columns    []*Column    `json:"columns,omitempty"`
	PrimaryKey []string     `json:"primary_key,omitempty"`
	RowClass   *RowClassRef `json:"row_class,omitempty"`
}

// View is a parsed CREATE VIEW element. Its columns are the resolved
// result columns of the view's SELECT.
type View struct {
	Name     string       `json:"name,omitempty"`
	Pos      string       `json:"pos,omitempty"`
	Columns  []*Column    `json:"columns,omitempty"`
	RowClass *RowClassRef `json:"row_class,omitempty"`
}

// Query is a named query whose result columns were inferred by the SQL
// frontend.
type Query struct {
	Name     string       `json:"name,omitempty"`
	Pos      string       `json:"pos,omitempty"`
	SQL      string       `json:"sql,omitempty"`
	Columns  []*Column    `json:"columns,omitempty"`
	RowClass *RowClassRef `json:"row_class,omitempty"`
}

// Column is a single parsed column of a table, view or query.
type Column struct {
	// Name is the column name as written in SQL.
	Name string `json:"name,omitempty"`
	// HostName overrides the host-side identifier derived from Name.
	HostName string       `json:"host_name,omitempty"`
	Type     sqltype.Type `json:"type,omitempty"`
	Nullable bool         `json:"nullable,omitempty"`
	// Converter is the applied type converter request, if any.
	Converter *ConverterRef `json:"converter,omitempty"`
	Pos       string        `json:"pos,omitempty"`
}

// ConverterRef requests a type converter for a column: either an explicit
// converter expression or an enum-derived converter, never both.
type ConverterRef struct {
	Expr *Expr        `json:"expr,omitempty"`
	Enum *EnumRequest `json:"enum,omitempty"`
}

// Expr is a host-language expression together with its statically
// resolved type, as reported by the symbol-resolution service.
type Expr struct {
	Source string            `json:"source,omitempty"`
	Type   *sqltype.HostType `json:"type,omitempty"`
}

// EnumRequest asks for an auto-derived enum converter.
type EnumRequest struct {
	// Type references the enum declaration by host type.
	Type *sqltype.HostType `json:"type,omitempty"`
	// ByName selects name-based encoding instead of index-based.
	ByName bool `json:"by_name,omitempty"`
}

// RowClassRef asks the analyzer to map an element's result rows onto an
// existing host type instead of a synthesized one.
type RowClassRef struct {
	// Type is the requested row type. It may be a record type, in which
	// case no class declaration is involved.
	Type *sqltype.HostType `json:"type,omitempty"`
	// Constructor selects a named constructor or static factory; empty
	// selects the unnamed constructor.
	Constructor string `json:"constructor,omitempty"`
	// GenerateInsertable requests an insertable wrapper derived from the
	// class getters.
	GenerateInsertable bool `json:"generate_insertable,omitempty"`
}

// Class is a host-language class declaration resolved by the symbol
// service.
type Class struct {
	Name    string `json:"name,omitempty"`
	PkgPath string `json:"pkg_path,omitempty"`
	// TypeParams holds the names of declared type parameters, if the
	// class is generic.
	TypeParams []string `json:"type_params,omitempty"`
	// Record is non-nil when the class declares a structural product
	// supertype; its fields are then used instead of a constructor.
	Record       *sqltype.RecordType `json:"record,omitempty"`
	Constructors []*Constructor      `json:"constructors,omitempty"`
	Methods      []*Method           `json:"methods,omitempty"`
	Getters      []*Getter           `json:"getters,omitempty"`
}

// Constructor returns the constructor with the given name, if any. The
// unnamed constructor has an empty name.
func (c *Class) Constructor(name string) (*Constructor, bool) {
	for _, ctor := range c.Constructors {
		if ctor.Name == name {
			return ctor, true
		}
	}
	return nil, false
}

// Method returns the method with the given name, if any.
func (c *Class) Method(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Getter returns the getter with the given name, if any.
func (c *Class) Getter(name string) (*Getter, bool) {
	for _, g := range c.Getters {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Constructor is a class constructor; the unnamed constructor has an
// empty name.
type Constructor struct {
	Name       string       `json:"name,omitempty"`
	Parameters []*Parameter `json:"parameters,omitempty"`
}

// Method is a class method, possibly a static factory.
type Method struct {
	Name       string            `json:"name,omitempty"`
	Static     bool              `json:"static,omitempty"`
	ReturnType *sqltype.HostType `json:"return_type,omitempty"`
	Parameters []*Parameter      `json:"parameters,omitempty"`
}

// Getter is a readable accessor on a class.
type Getter struct {
	Name string            `json:"name,omitempty"`
	Type *sqltype.HostType `json:"type,omitempty"`
}

// Parameter is a constructor or method parameter.
type Parameter struct {
	Name string            `json:"name,omitempty"`
	Type *sqltype.HostType `json:"type,omitempty"`
	// Named reports if the parameter is passed by name rather than
	// position.
	Named    bool `json:"named,omitempty"`
	Required bool `json:"required,omitempty"`
}

// Enum is a host-language enum declaration.
type Enum struct {
	Name    string   `json:"name,omitempty"`
	PkgPath string   `json:"pkg_path,omitempty"`
	Values  []string `json:"values,omitempty"`
}

// HostType returns the host type referring to the enum declaration.
func (e *Enum) HostType() *sqltype.HostType {
	return &sqltype.HostType{Ident: e.Name, PkgPath: e.PkgPath}
}

// MarshalSchema encodes a schema so it can cross the frontend boundary.
func MarshalSchema(s *Schema) ([]byte, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalSchema decodes the given buffer into a loaded schema and
// validates it.
func UnmarshalSchema(buf []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(buf, s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	for _, t := range s.Tables {
		if err := validColumns(t.Name, t.Columns); err != nil {
			return err
		}
	}
	for _, v := range s.Views {
		if err := validColumns(v.Name, v.Columns); err != nil {
			return err
		}
	}
	for _, q := range s.Queries {
		if err := validColumns(q.Name, q.Columns); err != nil {
			return err
		}
	}
	return nil
}

func validColumns(owner string, columns []*Column) error {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		switch {
		case c.Name == "":
			return fmt.Errorf("%s: column name cannot be empty", owner)
		case !c.Type.Valid():
			return fmt.Errorf("%s: invalid type for column %q", owner, c.Name)
		case c.Converter != nil && c.Converter.Expr != nil && c.Converter.Enum != nil:
			return fmt.Errorf("%s: column %q cannot have both an explicit and an enum converter", owner, c.Name)
		case c.Converter != nil && c.Converter.Expr == nil && c.Converter.Enum == nil:
			return fmt.Errorf("%s: column %q has an empty converter request", owner, c.Name)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%s: column %q redeclared", owner, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

// ClassByType returns the class declaration matching the given host type,
// if any.
func (s *Schema) ClassByType(t *sqltype.HostType) (*Class, bool) {
	if t == nil {
		return nil, false
	}
	for _, c := range s.Classes {
		if c.Name == t.Ident && c.PkgPath == t.PkgPath {
			return c, true
		}
	}
	return nil, false
}

// EnumByType returns the enum declaration matching the given host type,
// if any.
func (s *Schema) EnumByType(t *sqltype.HostType) (*Enum, bool) {
	if t == nil {
		return nil, false
	}
	for _, e := range s.Enums {
		if e.Name == t.Ident && e.PkgPath == t.PkgPath {
			return e, true
		}
	}
	return nil, false
}
