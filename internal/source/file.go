package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was obtained.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n' characters
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position, both components 1-based.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Line returns the text of the given 1-based line, without the trailing
// newline. Out-of-range lines yield "".
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	var start uint32
	switch {
	case lineNum == 1:
		start = 0
	case int(lineNum-2) < len(f.LineIdx):
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	end := uint32(len(f.Content))
	if int(lineNum-1) < len(f.LineIdx) {
		end = f.LineIdx[lineNum-1]
	}
	if start >= uint32(len(f.Content)) {
		return ""
	}
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return string(f.Content[start:end])
}
