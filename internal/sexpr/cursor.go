package sexpr

import (
	"fmt"

	"fortio.org/safecast"

	"larch/internal/source"
)

// cursor is a byte position inside one file.
type cursor struct {
	file  *source.File
	off   uint32
	limit uint32
}

func newCursor(f *source.File) cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return cursor{file: f, limit: limit}
}

func (c *cursor) eof() bool {
	return c.off >= c.limit
}

// peek returns the current byte, or 0 at EOF.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.file.Content[c.off]
}

// bump advances past the current byte.
func (c *cursor) bump() {
	if !c.eof() {
		c.off++
	}
}

func (c *cursor) span(start uint32) source.Span {
	return source.Span{File: c.file.ID, Start: start, End: c.off}
}

func (c *cursor) text(start uint32) string {
	return string(c.file.Content[start:c.off])
}
