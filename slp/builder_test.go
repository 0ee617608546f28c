package slp

import (
	"bytes"
	"encoding/binary"
	"image/color"
)

// testFrame assembles the bytes of a single frame: the header at offset 0,
// followed by the edge table, the command table and the row commands.
type testFrame struct {
	width, height      int
	hotspotX, hotspotY int32
	props              Properties
	paletteOffset      uint32

	edges []EdgeEntry
	rows  [][]byte // commands per row; ignored for transparent rows

	// rowOffset, if set, overrides the command table entry for a row.
	rowOffset map[int]uint32
}

func (tf testFrame) build() []byte {
	edgeOff := uint32(FrameHeaderSize)
	cmdOff := edgeOff + uint32(4*tf.height)
	dataOff := cmdOff + uint32(4*tf.height)

	offsets := make([]uint32, tf.height)
	var data bytes.Buffer
	for y := 0; y < tf.height; y++ {
		offsets[y] = dataOff + uint32(data.Len())
		if y < len(tf.edges) && tf.edges[y].Transparent() {
			continue
		}
		if y < len(tf.rows) {
			data.Write(tf.rows[y])
		}
	}
	for y, off := range tf.rowOffset {
		offsets[y] = off
	}

	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, FrameHeader{
		CmdTableOffset:     cmdOff,
		OutlineTableOffset: edgeOff,
		PaletteOffset:      tf.paletteOffset,
		Properties:         tf.props,
		Width:              int32(tf.width),
		Height:             int32(tf.height),
		HotspotX:           tf.hotspotX,
		HotspotY:           tf.hotspotY,
	})
	edges := tf.edges
	if edges == nil {
		edges = make([]EdgeEntry, tf.height)
	}
	binary.Write(&b, binary.LittleEndian, edges)
	binary.Write(&b, binary.LittleEndian, offsets)
	b.Write(data.Bytes())
	return b.Bytes()
}

// dataStart is where the first row's commands begin.
func (tf testFrame) dataStart() uint32 {
	return uint32(FrameHeaderSize) + uint32(8*tf.height)
}

// testPalette defines indices below n. Indices 16 to 23 are player colors.
type testPalette struct{ n int }

func (p testPalette) Resolve(i uint8) color.Color {
	if int(i) >= p.n {
		return nil
	}
	return color.NRGBA{R: i, G: 0xFF - i, B: i / 2, A: 0xFF}
}

func (p testPalette) IsPlayerColor(i uint8) bool { return i >= 16 && i < 24 }

func (p testPalette) PlayerColor(i uint8, player int) color.Color {
	if !p.IsPlayerColor(i) {
		return nil
	}
	return color.NRGBA{R: i, G: uint8(player), B: 0xAA, A: 0xFF}
}

var fullPalette = testPalette{n: 256}
