// Package diagfmt renders diagnostics for terminal and machine consumption.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"larch/internal/diag"
	"larch/internal/source"
)

// Options control diagnostic rendering.
type Options struct {
	Color     bool
	WithNotes bool
}

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	posColor  = color.New(color.Bold)
	hintColor = color.New(color.FgBlue)
)

// Pretty writes a single diagnostic in human-readable form:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// followed by notes when requested.
func Pretty(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options) {
	writeHeading(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts)
	writeContext(w, d.Primary, fs, opts)
	if opts.WithNotes {
		for _, note := range d.Notes {
			writeHeading(w, diag.SevInfo, diag.UnknownCode, note.Msg, note.Span, fs, opts)
			writeContext(w, note.Span, fs, opts)
		}
	}
}

func writeHeading(w io.Writer, sev diag.Severity, code diag.Code, msg string, span source.Span, fs *source.FileSet, opts Options) {
	pos := "<unknown>"
	if fs != nil {
		f := fs.Get(span.File)
		start, _ := fs.Resolve(span)
		pos = fmt.Sprintf("%s:%d:%d", f.Path, start.Line, start.Col)
	}
	sevText := sev.String()
	if opts.Color {
		pos = posColor.Sprint(pos)
		sevText = severityColor(sev).Sprint(sevText)
	}
	if code == diag.UnknownCode {
		fmt.Fprintf(w, "%s: %s: %s\n", pos, sevText, msg)
		return
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", pos, sevText, code, msg)
}

// writeContext prints the first source line the span covers with a caret
// underline. Display columns are computed with runewidth so the underline
// stays aligned past wide runes and tabs.
func writeContext(w io.Writer, span source.Span, fs *source.FileSet, opts Options) {
	if fs == nil || span.Empty() {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.Line(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	underlineLen := uint32(1)
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = end.Col - start.Col
	}
	pad := displayWidth(line, start.Col-1)
	marker := "^" + strings.Repeat("~", int(underlineLen)-1)
	if opts.Color {
		marker = hintColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

// displayWidth returns the on-screen width of the first n bytes of line.
func displayWidth(line string, n uint32) int {
	if int(n) > len(line) {
		n = uint32(len(line))
	}
	width := 0
	for _, r := range line[:n] {
		if r == '\t' {
			width += 4
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
