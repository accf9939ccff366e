// Package diag defines the diagnostic model shared by the reader, the form
// parser, and the type checker. Checking is fail-fast: every phase produces
// at most one Diagnostic per run, carried through call chains as an error.
package diag

import (
	"errors"
	"fmt"

	"larch/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single reported violation. It implements error so phases
// can return it through ordinary (T, error) signatures.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Message)
}

// Errorf builds an error-severity diagnostic at the given span.
func Errorf(code Code, primary source.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Primary:  primary,
	}
}

// WithNote appends a note and returns the diagnostic for chaining.
func (d *Diagnostic) WithNote(span source.Span, format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: fmt.Sprintf(format, args...)})
	return d
}

// FromError extracts the Diagnostic from err, if it carries one.
func FromError(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
