package slp

import (
	"image"
	"image/color"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Options tune how a frame is decoded.
type Options struct {
	// PlayerColorBase is added to the bytes of player-color commands to
	// get a palette index. The games store player colors at 16 onwards.
	// Indices outside the palette's player color range are malformed.
	PlayerColorBase uint8

	// ShadowColor is painted into the primary image for shadow runs.
	ShadowColor color.NRGBA
	// OutlineColor and ShieldOutlineColor are painted into the outline
	// image for the two kinds of outline runs.
	OutlineColor       color.NRGBA
	ShieldOutlineColor color.NRGBA

	// Limit, if positive, is an absolute offset the command stream must not
	// reach, such as the start of the next frame.
	Limit int64
}

// DefaultOptions returns the options Decode uses when passed nil.
func DefaultOptions() *Options {
	return &Options{
		PlayerColorBase:    16,
		ShadowColor:        color.NRGBA{A: 0x80},
		OutlineColor:       color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		ShieldOutlineColor: color.NRGBA{A: 0xFF},
	}
}

// Frame is a decoded frame. It does not change after Decode returns, and
// accessors return copies where the data could otherwise be modified.
type Frame struct {
	header       FrameHeader
	edges        []EdgeEntry
	image        *Raster
	outline      *Raster
	playerColors []PlayerColorEntry
}

func (f *Frame) Header() FrameHeader { return f.header }
func (f *Frame) Width() int          { return f.image.width }
func (f *Frame) Height() int         { return f.image.height }

// Hotspot is the anchor point used when placing the frame in a scene.
func (f *Frame) Hotspot() image.Point {
	return image.Pt(int(f.header.HotspotX), int(f.header.HotspotY))
}

// Image returns the primary image.
func (f *Frame) Image() *Raster { return f.image }

// Outline returns the outline image, shown where the sprite is hidden
// behind other objects.
func (f *Frame) Outline() *Raster { return f.outline }

// Edges returns a copy of the frame's edge table.
func (f *Frame) Edges() []EdgeEntry {
	return append([]EdgeEntry(nil), f.edges...)
}

// PlayerColors returns a copy of the player-color pixels, in row-major
// order.
func (f *Frame) PlayerColors() []PlayerColorEntry {
	return append([]PlayerColorEntry(nil), f.playerColors...)
}

// Decode decodes the frame whose header is at offset in r. Offsets stored in
// the frame are relative to base, which is usually the start of the .slp
// file. A nil opts means DefaultOptions().
//
// On error no frame is returned; the error matches ErrTruncatedInput,
// ErrMalformedStream or ErrUnsupportedFeature.
func Decode(r io.ReaderAt, offset, base int64, pal Palette, opts *Options) (*Frame, error) {
	if pal == nil {
		return nil, errors.New("slp: nil palette")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	h, err := ReadFrameHeader(r, offset)
	if err != nil {
		return nil, err
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	glog.V(2).Infof("slp: frame at %d: %dx%d, hotspot %d,%d, properties %v", offset, h.Width, h.Height, h.HotspotX, h.HotspotY, h.Properties)

	w, ht := int(h.Width), int(h.Height)
	f := &Frame{header: h}
	if w == 0 || ht == 0 {
		f.image, f.outline = newRaster(w, ht), newRaster(w, ht)
		return f, nil
	}

	// Tables first, so a short input fails before the rasters are allocated.
	if f.edges, err = ReadEdgeTable(r, base+int64(h.OutlineTableOffset), ht); err != nil {
		return nil, err
	}
	rowOffsets, err := readRowOffsets(r, base+int64(h.CmdTableOffset), ht)
	if err != nil {
		return nil, err
	}
	f.image, f.outline = newRaster(w, ht), newRaster(w, ht)

	in := &interpreter{
		c:       newCursor(r, 0, commandLimit(h, base, f.edges, rowOffsets, opts)),
		width:   w,
		props:   h.Properties,
		pal:     pal,
		opts:    opts,
		image:   f.image,
		outline: f.outline,
	}
	if err := in.run(base, f.edges, rowOffsets); err != nil {
		return nil, errors.Wrapf(err, "decoding frame at offset %d", offset)
	}
	if x, y, ok := f.image.firstUnset(); ok {
		return nil, malformed("decoding frame at offset %d: pixel %d,%d never written", offset, x, y)
	}
	if x, y, ok := f.outline.firstUnset(); ok {
		return nil, malformed("decoding frame at offset %d: outline pixel %d,%d never written", offset, x, y)
	}
	f.playerColors = in.playerColors
	return f, nil
}

// commandLimit returns the first table boundary lying after the start of
// the command data, or 0 if there is none.
func commandLimit(h FrameHeader, base int64, edges []EdgeEntry, rowOffsets []uint32, opts *Options) int64 {
	start := int64(-1)
	for y, e := range edges {
		if e.Transparent() {
			continue
		}
		if off := base + int64(rowOffsets[y]); start < 0 || off < start {
			start = off
		}
	}
	if start < 0 {
		return 0
	}

	limit := opts.Limit
	consider := func(b int64) {
		if b > start && (limit <= 0 || b < limit) {
			limit = b
		}
	}
	consider(base + int64(h.OutlineTableOffset))
	consider(base + int64(h.CmdTableOffset))
	if h.PaletteOffset != 0 {
		consider(base + int64(h.PaletteOffset))
	}
	return limit
}
