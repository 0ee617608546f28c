// Package slptest builds small .slp frames and files for tests.
package slptest

import (
	"bytes"
	"encoding/binary"
	"image"

	"badc0de.net/pkg/go-slp/slp"
)

// Frame describes a frame to lay out. Rows holds the full command bytes of
// each row, end-of-row included; transparent rows may be left empty.
// Nil Edges means every row spans the full width.
type Frame struct {
	Width, Height int
	Hotspot       image.Point
	Properties    slp.Properties
	Edges         []slp.EdgeEntry
	Rows          [][]byte
}

// FillRow returns a row filling n pixels with idx.
func FillRow(n int, idx uint8) []byte {
	if n > 0 && n < 16 {
		return []byte{byte(n<<4) | 0x07, idx, 0x0F}
	}
	return []byte{0x07, byte(n), idx, 0x0F}
}

// Filled returns a w x h frame where every row is FillRow(w, idx).
func Filled(w, h int, idx uint8) Frame {
	f := Frame{Width: w, Height: h}
	for range h {
		f.Rows = append(f.Rows, FillRow(w, idx))
	}
	return f
}

// layout returns the frame header and the tables and commands that follow
// it, for a body starting at off.
func (f Frame) layout(off uint32) (slp.FrameHeader, []byte) {
	edges := off
	cmds := edges + uint32(4*f.Height)
	data := cmds + uint32(4*f.Height)

	var b bytes.Buffer
	for y := range f.Height {
		var e slp.EdgeEntry
		if f.Edges != nil {
			e = f.Edges[y]
		}
		binary.Write(&b, binary.LittleEndian, e)
	}
	at := data
	for y := range f.Height {
		binary.Write(&b, binary.LittleEndian, at)
		at += uint32(len(f.Rows[y]))
	}
	for _, r := range f.Rows {
		b.Write(r)
	}

	return slp.FrameHeader{
		CmdTableOffset:     cmds,
		OutlineTableOffset: edges,
		Properties:         f.Properties,
		Width:              int32(f.Width),
		Height:             int32(f.Height),
		HotspotX:           int32(f.Hotspot.X),
		HotspotY:           int32(f.Hotspot.Y),
	}, b.Bytes()
}

// Build lays out a standalone frame, header at offset 0.
func (f Frame) Build() []byte {
	var b bytes.Buffer
	h, body := f.layout(uint32(slp.FrameHeaderSize))
	binary.Write(&b, binary.LittleEndian, h)
	b.Write(body)
	return b.Bytes()
}

// Sheet lays out a version 2.0N .slp file holding frames, preceded by
// prefix zero bytes. Offsets inside the file are relative to its start.
func Sheet(prefix int, comment string, frames ...Frame) []byte {
	var b bytes.Buffer
	b.Write(make([]byte, prefix))

	var hdr struct {
		Version   [4]byte
		NumFrames int32
		Comment   [24]byte
	}
	copy(hdr.Version[:], "2.0N")
	hdr.NumFrames = int32(len(frames))
	copy(hdr.Comment[:], comment)
	binary.Write(&b, binary.LittleEndian, hdr)

	off := uint32(binary.Size(hdr) + len(frames)*slp.FrameHeaderSize)
	var bodies bytes.Buffer
	for _, f := range frames {
		h, body := f.layout(off)
		binary.Write(&b, binary.LittleEndian, h)
		bodies.Write(body)
		off += uint32(len(body))
	}
	b.Write(bodies.Bytes())
	return b.Bytes()
}
