package slp

import (
	"encoding/binary"
	"io"
)

// TransparentRow is the edge count marking a row that has no pixel data.
const TransparentRow = 0x8000

// EdgeEntry holds, for one row, how many columns on the left and on the
// right are transparent before and after the row's pixel data.
type EdgeEntry struct {
	Left, Right uint16
}

// Transparent reports whether the whole row is transparent. Such rows have
// no commands.
func (e EdgeEntry) Transparent() bool {
	return e.Left == TransparentRow || e.Right == TransparentRow
}

// ReadEdgeTable reads height edge entries starting at offset. Counts are
// stored as read; they are checked against the frame width while decoding
// pixels.
func ReadEdgeTable(r io.ReaderAt, offset int64, height int) ([]EdgeEntry, error) {
	edges := make([]EdgeEntry, height)
	if height == 0 {
		return edges, nil
	}
	sr := io.NewSectionReader(r, offset, int64(height)*4)
	if err := binary.Read(sr, binary.LittleEndian, edges); err != nil {
		return nil, truncated(err, "reading edge table of %d rows at offset %d", height, offset)
	}
	return edges, nil
}

// readRowOffsets reads the command table: one offset per row, relative to
// the sheet base.
func readRowOffsets(r io.ReaderAt, offset int64, height int) ([]uint32, error) {
	offs := make([]uint32, height)
	if height == 0 {
		return offs, nil
	}
	sr := io.NewSectionReader(r, offset, int64(height)*4)
	if err := binary.Read(sr, binary.LittleEndian, offs); err != nil {
		return nil, truncated(err, "reading command table of %d rows at offset %d", height, offset)
	}
	return offs, nil
}
