package gen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Leylan24/drift/compiler/load"
)

// Graph is the resolved model of every schema handed to a generation
// run. Elements with error diagnostics stay in the graph marked
// invalid; the diagnostics are surfaced together at the end.
type Graph struct {
	Config  *Config
	Schemas []*load.Schema
	Tables  []*Table
	Views   []*View
	Queries []*Query

	diags Diagnostics
}

// NewGraph resolves the given schemas into a graph. All diagnostics are
// collected; the returned error joins the error-severity ones and is
// nil when resolution succeeded. The graph is returned even on error so
// callers can inspect the partial result.
func NewGraph(cfg *Config, schemas ...*load.Schema) (*Graph, error) {
	g := &Graph{Config: cfg, Schemas: schemas}
	for _, sc := range schemas {
		g.resolveSchema(sc)
	}
	return g, g.diags.Err()
}

// Resolve resolves the given schemas concurrently, one worker per
// schema, and merges the results in input order. The context cancels
// outstanding work.
func Resolve(ctx context.Context, cfg *Config, schemas ...*load.Schema) (*Graph, error) {
	parts := make([]*Graph, len(schemas))
	grp, ctx := errgroup.WithContext(ctx)
	for i, sc := range schemas {
		i, sc := i, sc
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := &Graph{Config: cfg}
			p.resolveSchema(sc)
			parts[i] = p
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}
	g := &Graph{Config: cfg, Schemas: schemas}
	for _, p := range parts {
		g.Tables = append(g.Tables, p.Tables...)
		g.Views = append(g.Views, p.Views...)
		g.Queries = append(g.Queries, p.Queries...)
		g.diags.all = append(g.diags.all, p.diags.all...)
	}
	for _, t := range g.Tables {
		t.graph = g
	}
	for _, v := range g.Views {
		v.graph = g
	}
	for _, q := range g.Queries {
		q.graph = g
	}
	return g, g.diags.Err()
}

// Diagnostics returns every finding collected during resolution.
func (g *Graph) Diagnostics() []*Diagnostic { return g.diags.All() }

// Table returns the resolved table with the given SQL name, if any.
func (g *Graph) Table(name string) (*Table, bool) {
	for _, t := range g.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// resolveSchema resolves one schema's elements in order: tables, then
// views, then queries. Resolution never aborts on a diagnostic; the
// offending element is marked invalid and its siblings still resolve.
func (g *Graph) resolveSchema(sc *load.Schema) {
	for _, lt := range sc.Tables {
		before := len(g.diags.all)
		t := &Table{
			graph:      g,
			Name:       lt.Name,
			Pos:        lt.Pos,
			PrimaryKey: lt.PrimaryKey,
			Columns:    resolveColumns(sc, lt.Name, lt.Columns, &g.diags),
		}
		t.RowClass = resolveRowClass(sc, lt.Name, lt.Pos, lt.RowClass, t.Columns, &g.diags)
		t.Invalid = t.RowClass == nil || hasErrors(g.diags.all[before:])
		g.Tables = append(g.Tables, t)
	}
	for _, lv := range sc.Views {
		before := len(g.diags.all)
		v := &View{
			graph:   g,
			Name:    lv.Name,
			Pos:     lv.Pos,
			Columns: resolveColumns(sc, lv.Name, lv.Columns, &g.diags),
		}
		v.RowClass = resolveRowClass(sc, lv.Name, lv.Pos, lv.RowClass, v.Columns, &g.diags)
		v.Invalid = v.RowClass == nil || hasErrors(g.diags.all[before:])
		g.Views = append(g.Views, v)
	}
	for _, lq := range sc.Queries {
		before := len(g.diags.all)
		q := &Query{
			graph:   g,
			Name:    lq.Name,
			Pos:     lq.Pos,
			SQL:     lq.SQL,
			Columns: resolveColumns(sc, lq.Name, lq.Columns, &g.diags),
		}
		q.RowClass = resolveRowClass(sc, lq.Name, lq.Pos, lq.RowClass, q.Columns, &g.diags)
		q.Invalid = q.RowClass == nil || hasErrors(g.diags.all[before:])
		g.Queries = append(g.Queries, q)
	}
}

func hasErrors(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
