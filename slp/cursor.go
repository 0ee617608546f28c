package slp

import (
	"io"
)

const cursorBufferSize = 512

// cursor reads the command stream byte by byte from an io.ReaderAt,
// buffering one window at a time. It only ever moves forward.
type cursor struct {
	r     io.ReaderAt
	pos   int64
	limit int64 // reads at or past limit fail; 0 means no limit

	raw   []byte
	buf   []byte // valid part of raw
	start int64  // offset of buf[0]
}

func newCursor(r io.ReaderAt, pos, limit int64) *cursor {
	return &cursor{r: r, pos: pos, limit: limit}
}

func (c *cursor) offset() int64 { return c.pos }

func (c *cursor) seek(pos int64) error {
	if pos < c.pos {
		return malformed("command cursor would move backwards from %d to %d", c.pos, pos)
	}
	c.pos = pos
	return nil
}

func (c *cursor) readByte() (byte, error) {
	if c.limit > 0 && c.pos >= c.limit {
		return 0, malformed("command read at offset %d crosses table boundary at %d", c.pos, c.limit)
	}
	if c.pos < c.start || c.pos >= c.start+int64(len(c.buf)) {
		if err := c.fill(); err != nil {
			return 0, err
		}
	}
	b := c.buf[c.pos-c.start]
	c.pos++
	return b, nil
}

func (c *cursor) fill() error {
	if c.raw == nil {
		c.raw = make([]byte, cursorBufferSize)
	}
	n, err := c.r.ReadAt(c.raw, c.pos)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return truncated(err, "reading command byte at offset %d", c.pos)
	}
	c.start = c.pos
	c.buf = c.raw[:n]
	return nil
}
