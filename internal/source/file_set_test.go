package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLinesAndColumns(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.lr", []byte("one\ntwo\nthree"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},  // 'o' of one
		{2, 1, 3},  // 'e' of one
		{3, 1, 4},  // the first newline ends line 1
		{4, 2, 1},  // 't' of two
		{8, 3, 1},  // 't' of three
		{12, 3, 5}, // 'e' of three
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Fatalf("offset %d resolved to %d:%d, want %d:%d",
				tc.off, start.Line, start.Col, tc.line, tc.col)
		}
	}
}

func TestResolveSingleLineFile(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.lr", []byte("hello"))
	start, end := fs.Resolve(Span{File: id, Start: 1, End: 4})
	if start.Line != 1 || start.Col != 2 || end.Line != 1 || end.Col != 5 {
		t.Fatalf("resolved to %v..%v", start, end)
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "win.lr")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("(var x 1)\r\nx\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "(var x 1)\nx\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %v, want BOM and CRLF markers", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Fatal("disk files are not virtual")
	}
}

func TestLoneCarriageReturnSurvives(t *testing.T) {
	got, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	if string(got) != "a\rb\nc" || !changed {
		t.Fatalf("got %q changed=%v", got, changed)
	}
}

func TestByPathTracksLatestVersion(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.lr", []byte("old"))
	id2 := fs.AddVirtual("a.lr", []byte("new"))
	f, ok := fs.ByPath("a.lr")
	if !ok || f.ID != id2 || string(f.Content) != "new" {
		t.Fatalf("got %+v ok=%v", f, ok)
	}
}

func TestContentHashDiffersPerContent(t *testing.T) {
	fs := NewFileSet()
	a := fs.Get(fs.AddVirtual("a.lr", []byte("one")))
	b := fs.Get(fs.AddVirtual("b.lr", []byte("two")))
	if a.Hash == b.Hash {
		t.Fatal("different content must hash differently")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 6, End: 12}
	c := a.Cover(b)
	if c.Start != 4 || c.End != 12 {
		t.Fatalf("cover = %+v", c)
	}
}

func TestFileLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.lr", []byte("one\ntwo\nthree")))
	if got := f.Line(2); got != "two" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.Line(3); got != "three" {
		t.Fatalf("line 3 = %q", got)
	}
}
