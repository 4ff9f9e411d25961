package gen

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leylan24/drift"
	"github.com/Leylan24/drift/compiler/load"
	"github.com/Leylan24/drift/sqltype"
)

// Generate resolves the given schemas and runs the configured generator
// over the graph, with any hooks applied outermost first. Elements with
// error diagnostics are excluded from the output, not the whole run:
// the generator still emits every valid sibling, and the collected
// diagnostics are returned after emission.
func Generate(ctx context.Context, cfg *Config, schemas ...*load.Schema) error {
	g, err := Resolve(ctx, cfg, schemas...)
	if g == nil {
		return err
	}
	gen := cfg.Generator
	if gen == nil {
		gen = GenerateFunc(generateFiles)
	}
	for i := len(cfg.Hooks) - 1; i >= 0; i-- {
		gen = cfg.Hooks[i](gen)
	}
	if genErr := gen.Generate(g); genErr != nil {
		return errors.Join(genErr, err)
	}
	return err
}

// generateFiles is the default generator. It emits one output file, or
// one file per schema source when modular generation is enabled, and
// skips elements marked invalid.
func generateFiles(g *Graph) error {
	if !g.Config.Options.Modular {
		w := NewWriter(g.Config)
		writeHeader(w, g.Config)
		for _, t := range g.Tables {
			writeTable(w, t)
		}
		for _, v := range g.Views {
			writeView(w, v)
		}
		for _, q := range g.Queries {
			writeQuery(w, q)
		}
		return w.Flush("drift.go")
	}
	for _, sc := range g.Schemas {
		w := NewWriter(g.Config)
		writeHeader(w, g.Config)
		for _, t := range g.Tables {
			if owns(sc, t.Name) {
				writeTable(w, t)
			}
		}
		for _, v := range g.Views {
			if ownsView(sc, v.Name) {
				writeView(w, v)
			}
		}
		for _, q := range g.Queries {
			if ownsQuery(sc, q.Name) {
				writeQuery(w, q)
			}
		}
		if err := w.Flush(snake(sc.Name) + ".drift.go"); err != nil {
			return err
		}
	}
	return nil
}

func owns(sc *load.Schema, table string) bool {
	for _, t := range sc.Tables {
		if t.Name == table {
			return true
		}
	}
	return false
}

func ownsView(sc *load.Schema, view string) bool {
	for _, v := range sc.Views {
		if v.Name == view {
			return true
		}
	}
	return false
}

func ownsQuery(sc *load.Schema, query string) bool {
	for _, q := range sc.Queries {
		if q.Name == query {
			return true
		}
	}
	return false
}

func writeHeader(w *Writer, cfg *Config) {
	h := w.Header().Leaf()
	h.Writeln("// Code generated by driftgen. DO NOT EDIT.")
	h.Writeln("")
	h.Writef("package %s\n\n", cfg.pkgName())
}

// writeTable emits the row struct and column metadata for one table.
func writeTable(w *Writer, t *Table) {
	if t.Invalid {
		return
	}
	s := w.Body().Child()
	row := s.Child()
	row.Leaf().Writef("// %s holds a row of the %q table.\n", t.DataClassName(), t.Name)
	writeRowStruct(row, t.DataClassName(), t.Columns, t.RowClass)
	e := s.Leaf()
	e.Writef("// %s describes the %q table.\n", t.InfoName(), t.Name)
	e.Writef("var %s = ", t.InfoName())
	e.Symbol("TableInfo", drift.PkgPath)
	e.Writef("{Name: %q, Columns: %s}\n\n", t.Name, columnList(t.Columns))
	if t.graph.Config.Options.Companions {
		writeCompanion(s.Child(), t)
	}
}

func writeView(w *Writer, v *View) {
	if v.Invalid {
		return
	}
	s := w.Body().Child()
	s.Leaf().Writef("// %s holds a row of the %q view.\n", v.DataClassName(), v.Name)
	writeRowStruct(s, v.DataClassName(), v.Columns, v.RowClass)
}

func writeQuery(w *Writer, q *Query) {
	if q.Invalid {
		return
	}
	s := w.Body().Child()
	s.Leaf().Writef("// %s holds one result row of the %s query.\n", q.ResultClassName(), q.MethodName())
	writeRowStruct(s, q.ResultClassName(), q.Columns, q.RowClass)
	s.Leaf().Writef("const %sSQL = %q\n\n", q.MethodName(), q.SQL)
}

// writeRowStruct emits a struct declaration for the element's row type.
// Elements mapped onto a user class reference it instead of declaring a
// new type. Field names that collapse to the same identifier are
// deduplicated within the struct's scope.
func writeRowStruct(s *Scope, name string, columns []*Column, rc *RowClass) {
	e := s.Leaf()
	if rc != nil && rc.Class != nil {
		e.Writef("// %s is mapped onto ", name)
		e.Symbol(rc.Class.Name, rc.Class.PkgPath)
		e.Writeln(".")
		e.Writeln("")
		return
	}
	e.Writef("type %s struct {\n", name)
	for _, c := range columns {
		e.Writef("\t%s ", s.UniqueName(pascal(c.FieldName())))
		emitGoType(e, goType(c))
		e.Writef(" `db:%q`\n", c.Name)
	}
	e.Writeln("}")
	e.Writeln("")
}

// writeCompanion emits the partial-row builder used for inserts and
// updates, with every field optional.
func writeCompanion(s *Scope, t *Table) {
	e := s.Leaf()
	e.Writef("// %s is a partial row of %q for inserts and updates.\n", t.CompanionName(), t.Name)
	e.Writef("type %s struct {\n", t.CompanionName())
	for _, c := range t.Columns {
		e.Writef("\t%s ", s.UniqueName(pascal(c.FieldName())))
		emitGoType(e, goType(c).WithNullable(true))
		e.Writef(" `db:%q`\n", c.Name)
	}
	e.Writeln("}")
	e.Writeln("")
}

func goType(c *Column) *sqltype.HostType {
	return c.HostType()
}

// emitGoType renders a host type in Go syntax. Nullable types become
// pointers; named declarations reference their package through the
// import table.
func emitGoType(e *TextEmitter, t *sqltype.HostType) {
	if t.Nullable {
		e.Write("*")
	}
	if t.PkgPath != "" {
		e.Symbol(t.Ident, t.PkgPath)
		return
	}
	e.Write(t.Ident)
}

func columnList(columns []*Column) string {
	out := "[]string{"
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%q", c.Name)
	}
	return out + "}"
}
