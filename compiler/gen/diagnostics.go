package gen

import (
	"errors"
	"fmt"
)

// Severity classifies a diagnostic. Warnings never invalidate an element.
type Severity int

// Severity levels.
const (
	SeverityWarning Severity = iota
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single analysis finding attached to a schema element.
// Analysis does not stop at the first finding; every element is resolved
// and all findings are reported together.
type Diagnostic struct {
	Element  string // table/view/query name, empty for schema-level findings
	Pos      string // source position, empty when unknown
	Severity Severity
	Err      error
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d.Element != "" {
		return fmt.Sprintf("%s: %s: %s", d.Element, d.Severity, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Err)
}

// Unwrap returns the underlying error.
func (d *Diagnostic) Unwrap() error { return d.Err }

// Diagnostics collects findings across a whole resolution run.
type Diagnostics struct {
	all []*Diagnostic
}

// Add records an error finding for the given element.
func (d *Diagnostics) Add(element, pos string, err error) {
	d.all = append(d.all, &Diagnostic{Element: element, Pos: pos, Severity: SeverityError, Err: err})
}

// Warn records a warning finding for the given element.
func (d *Diagnostics) Warn(element, pos string, err error) {
	d.all = append(d.all, &Diagnostic{Element: element, Pos: pos, Severity: SeverityWarning, Err: err})
}

// All returns every recorded finding in insertion order.
func (d *Diagnostics) All() []*Diagnostic { return d.all }

// ForElement returns the findings recorded for the named element.
func (d *Diagnostics) ForElement(name string) []*Diagnostic {
	var out []*Diagnostic
	for _, diag := range d.all {
		if diag.Element == name {
			out = append(out, diag)
		}
	}
	return out
}

// HasErrors reports whether any error-severity finding was recorded.
func (d *Diagnostics) HasErrors() bool {
	for _, diag := range d.all {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins all error-severity findings into a single error, or returns
// nil when only warnings were recorded.
func (d *Diagnostics) Err() error {
	var errs []error
	for _, diag := range d.all {
		if diag.Severity == SeverityError {
			errs = append(errs, diag)
		}
	}
	return errors.Join(errs...)
}
