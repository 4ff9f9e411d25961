// Package drift holds the runtime support types referenced by generated
// data-access code: the type-converter capabilities and their bundled
// implementations. The analyzer in compiler/gen recognizes these
// declarations when validating user schemas; the generated code imports
// them at runtime.
package drift

// PkgPath is the import path of this package as seen by the analyzer when
// it recognizes converter capabilities in user code.
const PkgPath = "github.com/Leylan24/drift"

// Names of the converter capabilities recognized by the analyzer.
const (
	// ConverterIdent is the plain converter capability with two type
	// arguments: the application type and the storage type.
	ConverterIdent = "TypeConverter"
	// JSONConverterIdent is the JSON-capable converter capability with a
	// third type argument for the JSON intermediate representation.
	JSONConverterIdent = "JSONTypeConverter"
)

// TableInfo describes a generated table at runtime: its SQL name and
// the column names in declaration order.
type TableInfo struct {
	Name    string
	Columns []string
}
