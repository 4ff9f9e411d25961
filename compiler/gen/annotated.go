package gen

import (
	"fmt"
	"strings"

	"github.com/Leylan24/drift/sqltype"
)

// TopLevelSymbol is a reference to a named top-level declaration in
// some output unit or package. How the reference is spelled in the
// final output depends on the import table of the file it ends up in,
// so symbols stay unresolved until the writer is flattened.
type TopLevelSymbol struct {
	// Name is the declared identifier.
	Name string
	// ImportPath is the package or output unit defining the symbol.
	// Empty for symbols declared in the generated file itself.
	ImportPath string
}

// Code is an ordered sequence of literal text fragments and symbolic
// references. It is immutable once built; rendering resolves the
// symbolic references against an import table.
type Code struct {
	parts []any // string or *TopLevelSymbol
}

// Render resolves the code against the given import table. Every
// referenced symbol registers its import and is prefixed with the
// assigned alias.
func (c *Code) Render(imports *ImportTable) string {
	var b strings.Builder
	for _, p := range c.parts {
		switch p := p.(type) {
		case string:
			b.WriteString(p)
		case *TopLevelSymbol:
			if p.ImportPath == "" {
				b.WriteString(p.Name)
				continue
			}
			b.WriteString(imports.Alias(p.ImportPath))
			b.WriteString(".")
			b.WriteString(p.Name)
		}
	}
	return b.String()
}

// A CodeBuilder assembles a Code fragment.
type CodeBuilder struct {
	parts []any
}

// NewCode returns an empty code builder.
func NewCode() *CodeBuilder { return &CodeBuilder{} }

// Text appends a literal fragment.
func (b *CodeBuilder) Text(s string) *CodeBuilder {
	b.parts = append(b.parts, s)
	return b
}

// Textf appends a formatted literal fragment.
func (b *CodeBuilder) Textf(format string, args ...any) *CodeBuilder {
	return b.Text(fmt.Sprintf(format, args...))
}

// Symbol appends a reference to a top-level declaration.
func (b *CodeBuilder) Symbol(name, importPath string) *CodeBuilder {
	b.parts = append(b.parts, &TopLevelSymbol{Name: name, ImportPath: importPath})
	return b
}

// Type appends a host type, referencing named declarations through
// their defining package.
func (b *CodeBuilder) Type(t *sqltype.HostType) *CodeBuilder {
	switch {
	case t == nil:
		return b.Text("<nil>")
	case t.Record != nil:
		b.Text("(")
		b.Text("{")
		for i, f := range t.Record.Fields {
			if i > 0 {
				b.Text(", ")
			}
			b.Type(f.Type)
			b.Text(" ")
			b.Text(f.Name)
		}
		b.Text("}")
		b.Text(")")
	case t.PkgPath != "":
		b.Symbol(t.Ident, t.PkgPath)
	default:
		b.Text(t.Ident)
	}
	if len(t.TypeArgs) > 0 && t.Record == nil {
		b.Text("[")
		for i, a := range t.TypeArgs {
			if i > 0 {
				b.Text(", ")
			}
			b.Type(a)
		}
		b.Text("]")
	}
	if t.Nullable {
		b.Text("?")
	}
	return b
}

// Code appends an already-built fragment.
func (b *CodeBuilder) Code(c *Code) *CodeBuilder {
	b.parts = append(b.parts, c.parts...)
	return b
}

// Build finalizes the fragment.
func (b *CodeBuilder) Build() *Code {
	return &Code{parts: b.parts}
}
