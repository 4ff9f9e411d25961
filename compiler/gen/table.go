package gen

import (
	"github.com/Leylan24/drift/compiler/load"
)

// Table is a resolved CREATE TABLE element.
type Table struct {
	graph *Graph
	// Name is the table name as written in SQL.
	Name string
	// Pos is the source position of the declaration.
	Pos string
	// Columns holds the resolved columns in declaration order.
	Columns []*Column
	// PrimaryKey names the primary-key columns, if declared.
	PrimaryKey []string
	// RowClass describes the host type rows are mapped onto.
	RowClass *RowClass
	// Invalid marks elements that had error diagnostics attached. They
	// stay in the graph but are skipped during emission.
	Invalid bool
}

// EntityName returns the singular pascal-cased name of the table, used
// for the generated row class of tables without a custom one.
func (t *Table) EntityName() string { return pascal(singular(t.Name)) }

// DataClassName returns the name of the generated or user row class.
func (t *Table) DataClassName() string {
	if t.RowClass != nil && t.RowClass.Class != nil {
		return t.RowClass.Class.Name
	}
	return t.EntityName()
}

// CompanionName returns the name of the generated companion builder.
// With the UseRowClassCompanionName option the companion is named after
// the row class instead of the table.
func (t *Table) CompanionName() string {
	if t.graph != nil && t.graph.Config.Options.UseRowClassCompanionName {
		return t.DataClassName() + "Companion"
	}
	return t.EntityName() + "Companion"
}

// InfoName returns the name of the generated table info accessor.
func (t *Table) InfoName() string { return pascal(plural(t.Name)) }

// Column returns the column with the given SQL name, if any.
func (t *Table) Column(name string) (*Column, bool) { return columnByName(t.Columns, name) }

// PrimaryKeyColumns returns the resolved primary-key columns in
// declaration order.
func (t *Table) PrimaryKeyColumns() []*Column {
	var out []*Column
	for _, name := range t.PrimaryKey {
		if c, ok := t.Column(name); ok {
			out = append(out, c)
		}
	}
	return out
}

// View is a resolved CREATE VIEW element.
type View struct {
	graph    *Graph
	Name     string
	Pos      string
	Columns  []*Column
	RowClass *RowClass
	Invalid  bool
}

// EntityName returns the singular pascal-cased name of the view.
func (v *View) EntityName() string { return pascal(singular(v.Name)) }

// DataClassName returns the name of the generated or user row class.
func (v *View) DataClassName() string {
	if v.RowClass != nil && v.RowClass.Class != nil {
		return v.RowClass.Class.Name
	}
	return v.EntityName()
}

// Column returns the column with the given SQL name, if any.
func (v *View) Column(name string) (*Column, bool) { return columnByName(v.Columns, name) }

// Query is a resolved named query.
type Query struct {
	graph    *Graph
	Name     string
	Pos      string
	SQL      string
	Columns  []*Column
	RowClass *RowClass
	Invalid  bool
}

// MethodName returns the camel-cased name of the generated query
// method.
func (q *Query) MethodName() string { return camel(q.Name) }

// ResultClassName returns the name of the generated or user result
// class for the query.
func (q *Query) ResultClassName() string {
	if q.RowClass != nil && q.RowClass.Class != nil {
		return q.RowClass.Class.Name
	}
	return pascal(q.Name) + "Result"
}

// Column returns the column with the given SQL name, if any.
func (q *Query) Column(name string) (*Column, bool) { return columnByName(q.Columns, name) }

func columnByName(columns []*Column, name string) (*Column, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// resolveColumns resolves loaded columns, including their converters.
// Converter errors are recorded and leave the column converter-less so
// sibling resolution continues.
func resolveColumns(sc *load.Schema, element string, cols []*load.Column, diags *Diagnostics) []*Column {
	out := make([]*Column, 0, len(cols))
	for _, lc := range cols {
		c := &Column{
			Name:     lc.Name,
			HostName: lc.HostName,
			Type:     lc.Type,
			Nullable: lc.Nullable,
			Pos:      lc.Pos,
		}
		if c.HostName == "" {
			c.HostName = camel(lc.Name)
		}
		conv, err := resolveConverter(sc, lc)
		if err != nil {
			setElement(err, element)
			diags.Add(element, lc.Pos, err)
		}
		c.Converter = conv
		out = append(out, c)
	}
	return out
}

// setElement fills the element name on typed errors created before the
// owning element was known.
func setElement(err error, element string) {
	switch e := err.(type) {
	case *TypeError:
		if e.Element == "" {
			e.Element = element
		}
	case *NullabilityError:
		if e.Element == "" {
			e.Element = element
		}
	case *UnsupportedError:
		if e.Element == "" {
			e.Element = element
		}
	case *RowClassError:
		if e.Element == "" {
			e.Element = element
		}
	case *ParameterError:
		if e.Element == "" {
			e.Element = element
		}
	case *AccessorError:
		if e.Element == "" {
			e.Element = element
		}
	}
}
