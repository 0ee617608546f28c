package slp

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Properties is the bitfield stored with each frame.
type Properties uint32

const (
	// PropertyPaletteSelect picks an alternate palette in later releases
	// of the format. It is accepted but not interpreted here.
	PropertyPaletteSelect Properties = 0x07
	// PropertyPlayerColor makes plain copy and fill runs record indices in
	// the palette's player-color range as player-color pixels.
	PropertyPlayerColor Properties = 0x08
	// PropertyDefaultPalette marks frames drawn with the game's default
	// palette. Informational.
	PropertyDefaultPalette Properties = 0x10

	knownProperties = PropertyPaletteSelect | PropertyPlayerColor | PropertyDefaultPalette
)

func (p Properties) String() string {
	var parts []string
	if sel := p & PropertyPaletteSelect; sel != 0 {
		parts = append(parts, fmt.Sprintf("palette=%d", sel))
	}
	if p&PropertyPlayerColor != 0 {
		parts = append(parts, "playercolor")
	}
	if p&PropertyDefaultPalette != 0 {
		parts = append(parts, "defaultpalette")
	}
	if unk := p &^ knownProperties; unk != 0 {
		parts = append(parts, fmt.Sprintf("unknown=%#x", uint32(unk)))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// FrameHeader is the fixed-size record describing one frame. Offsets are
// relative to the start of the containing sheet.
type FrameHeader struct {
	CmdTableOffset     uint32
	OutlineTableOffset uint32
	PaletteOffset      uint32
	Properties         Properties

	Width, Height      int32
	HotspotX, HotspotY int32
}

// MaxDimension is the largest width or height a frame can have. Edge counts
// are 16 bits wide, with the top bit reserved for TransparentRow.
const MaxDimension = TransparentRow - 1

// FrameHeaderSize is the on-disk size of a FrameHeader.
var FrameHeaderSize = binary.Size(FrameHeader{})

// ReadFrameHeader reads the frame header record found at offset. Offsets
// inside the header are not checked; bad ones surface when they are used.
func ReadFrameHeader(r io.ReaderAt, offset int64) (FrameHeader, error) {
	var h FrameHeader
	sr := io.NewSectionReader(r, offset, int64(FrameHeaderSize))
	if err := binary.Read(sr, binary.LittleEndian, &h); err != nil {
		return FrameHeader{}, truncated(err, "reading frame header at offset %d", offset)
	}
	return h, nil
}

// validate checks what can be checked without touching any table.
func (h FrameHeader) validate() error {
	if unk := h.Properties &^ knownProperties; unk != 0 {
		return errors.Wrapf(ErrUnsupportedFeature, "frame properties %#08x carry unknown bits %#x", uint32(h.Properties), uint32(unk))
	}
	if h.Width < 0 || h.Height < 0 {
		return malformed("negative frame size %dx%d", h.Width, h.Height)
	}
	if h.Width > MaxDimension || h.Height > MaxDimension {
		return malformed("frame size %dx%d exceeds %d", h.Width, h.Height, MaxDimension)
	}
	return nil
}
