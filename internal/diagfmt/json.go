package diagfmt

import (
	"encoding/json"
	"io"

	"larch/internal/diag"
	"larch/internal/source"
)

type jsonPos struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

type jsonNote struct {
	Message string  `json:"message"`
	Path    string  `json:"path,omitempty"`
	Start   jsonPos `json:"start"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Start    jsonPos    `json:"start"`
	End      jsonPos    `json:"end"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes a single diagnostic as one JSON object.
func JSON(w io.Writer, d *diag.Diagnostic, fs *source.FileSet) error {
	out := jsonDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.String(),
		Message:  d.Message,
	}
	if fs != nil {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		out.Path = f.Path
		out.Start = jsonPos{Line: start.Line, Col: start.Col}
		out.End = jsonPos{Line: end.Line, Col: end.Col}
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			nstart, _ := fs.Resolve(note.Span)
			out.Notes = append(out.Notes, jsonNote{
				Message: note.Msg,
				Path:    nf.Path,
				Start:   jsonPos{Line: nstart.Line, Col: nstart.Col},
			})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
