package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/Leylan24/drift/sqltype"
)

// Writer is the root of the scoped code-generation tree for one output
// file. Generation steps obtain nested scopes and emit text into them;
// the tree is flattened once at the end, after all imports are known.
type Writer struct {
	cfg     *Config
	imports *ImportTable

	header    *Scope
	root      *Scope
	generated *Scope
}

// NewWriter creates a writer for one output file.
func NewWriter(cfg *Config) *Writer {
	w := &Writer{cfg: cfg, imports: NewImportTable()}
	w.header = &Scope{writer: w}
	w.root = &Scope{writer: w}
	return w
}

// Imports returns the writer's import table.
func (w *Writer) Imports() *ImportTable { return w.imports }

// Header returns the header scope, emitted before the import block.
func (w *Writer) Header() *Scope { return w.header }

// Body returns the scope holding the generated declarations. The scope
// is created on first use; repeated calls return the same scope, so
// independent generation steps can share one file.
func (w *Writer) Body() *Scope {
	if w.generated == nil {
		w.generated = w.root.Child()
	}
	return w.generated
}

// WriteGenerated flattens the tree into the final file content with a
// single depth-first, insertion-order traversal. It is idempotent:
// repeated calls return the same text as long as no scope was written
// to in between. It panics if nothing was ever written into the writer,
// header included, which indicates a bug in the generation pipeline
// rather than bad input. A header-only writer is valid: an element-less
// schema still produces its file.
func (w *Writer) WriteGenerated() string {
	if w.generated == nil && len(w.root.children) == 0 && len(w.header.children) == 0 {
		panic("gen: flattening a writer that was never populated")
	}
	// The body is rendered first so every late-bound symbol has
	// registered its import before the import block is written.
	body := w.root.render()
	var b strings.Builder
	if w.cfg != nil && w.cfg.Header != "" {
		b.WriteString(w.cfg.Header)
		b.WriteString("\n")
	}
	b.WriteString(w.header.render())
	b.WriteString(w.imports.render())
	b.WriteString(body)
	return b.String()
}

// Flush renders the writer and writes the formatted result to the
// named file under the configured target directory. Formatting errors
// do not discard the output; the unformatted text is written so the
// problem can be inspected.
func (w *Writer) Flush(name string) error {
	src := []byte(w.WriteGenerated())
	path := name
	if w.cfg != nil && w.cfg.Target != "" {
		path = filepath.Join(w.cfg.Target, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("gen: create output directory: %w", err)
	}
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		if werr := os.WriteFile(path, src, 0644); werr != nil {
			return fmt.Errorf("gen: write %s: %w", path, werr)
		}
		return fmt.Errorf("gen: format %s: %w", path, err)
	}
	if err := os.WriteFile(path, formatted, 0644); err != nil {
		return fmt.Errorf("gen: write %s: %w", path, err)
	}
	return nil
}

// A Scope is one node of the code-generation tree. Children are
// append-only: a scope can open new leaves and child scopes at any
// time, even after later siblings have content, and earlier siblings
// are never reordered or altered by that.
type Scope struct {
	writer   *Writer
	parent   *Scope
	children []any // *Scope or *leaf
	names    map[string]int
}

// UniqueName returns a local identifier unique within this scope. The
// first request for a prefix returns it unchanged, later requests get a
// numeric suffix. Counters are per scope, never shared with siblings or
// children.
func (s *Scope) UniqueName(prefix string) string {
	if s.names == nil {
		s.names = make(map[string]int)
	}
	n := s.names[prefix]
	s.names[prefix]++
	if n == 0 {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, n)
}

// Child opens a nested scope positioned after the current children.
func (s *Scope) Child() *Scope {
	c := &Scope{writer: s.writer, parent: s}
	s.children = append(s.children, c)
	return c
}

// Leaf opens a text emitter positioned after the current children.
func (s *Scope) Leaf() *TextEmitter {
	l := &leaf{}
	s.children = append(s.children, l)
	return &TextEmitter{writer: s.writer, leaf: l}
}

// render flattens the scope in traversal order. Children are walked by
// index so that leaves appended during the walk are still picked up.
func (s *Scope) render() string {
	var b strings.Builder
	for i := 0; i < len(s.children); i++ {
		switch c := s.children[i].(type) {
		case *Scope:
			b.WriteString(c.render())
		case *leaf:
			b.WriteString(c.render(s.writer.imports))
		}
	}
	return b.String()
}

type leaf struct {
	parts []any // string or *TopLevelSymbol
}

func (l *leaf) render(imports *ImportTable) string {
	c := Code{parts: l.parts}
	return c.Render(imports)
}

// A TextEmitter writes text and symbol references into one leaf of the
// tree. Symbol references stay unresolved until the writer is
// flattened, when the import table has assigned every alias.
type TextEmitter struct {
	writer *Writer
	leaf   *leaf
}

// Write appends literal text.
func (e *TextEmitter) Write(s string) *TextEmitter {
	e.leaf.parts = append(e.leaf.parts, s)
	return e
}

// Writef appends formatted literal text.
func (e *TextEmitter) Writef(format string, args ...any) *TextEmitter {
	return e.Write(fmt.Sprintf(format, args...))
}

// Writeln appends literal text followed by a newline.
func (e *TextEmitter) Writeln(s string) *TextEmitter {
	return e.Write(s + "\n")
}

// Symbol appends a reference to a top-level declaration in another
// package or output unit.
func (e *TextEmitter) Symbol(name, importPath string) *TextEmitter {
	e.leaf.parts = append(e.leaf.parts, &TopLevelSymbol{Name: name, ImportPath: importPath})
	return e
}

// Code appends a prebuilt code fragment, keeping its symbol references
// late-bound.
func (e *TextEmitter) Code(c *Code) *TextEmitter {
	e.leaf.parts = append(e.leaf.parts, c.parts...)
	return e
}

// Type appends a host type reference.
func (e *TextEmitter) Type(t *sqltype.HostType) *TextEmitter {
	return e.Code(NewCode().Type(t).Build())
}

// An ImportTable assigns a stable alias to every import path referenced
// by a late-bound symbol. Aliases are handed out in first-use order and
// never change afterwards, so rendering is deterministic.
type ImportTable struct {
	aliases map[string]string
	order   []string
}

// NewImportTable returns an empty import table.
func NewImportTable() *ImportTable {
	return &ImportTable{aliases: make(map[string]string)}
}

// Alias returns the alias for the given import path, registering the
// import on first use. The alias is the package base name, suffixed
// with a counter on collision.
func (t *ImportTable) Alias(path string) string {
	if a, ok := t.aliases[path]; ok {
		return a
	}
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	alias := base
	for n := 1; t.taken(alias); n++ {
		alias = fmt.Sprintf("%s%d", base, n)
	}
	t.aliases[path] = alias
	t.order = append(t.order, path)
	return alias
}

func (t *ImportTable) taken(alias string) bool {
	for _, a := range t.aliases {
		if a == alias {
			return true
		}
	}
	return false
}

// Paths returns the registered import paths, sorted.
func (t *ImportTable) Paths() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	sort.Strings(out)
	return out
}

// render writes the import block.
func (t *ImportTable) render() string {
	if len(t.order) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("import (\n")
	for _, path := range t.Paths() {
		alias := t.aliases[path]
		if alias == filepath.Base(path) {
			fmt.Fprintf(&b, "\t%q\n", path)
		} else {
			fmt.Fprintf(&b, "\t%s %q\n", alias, path)
		}
	}
	b.WriteString(")\n\n")
	return b.String()
}
