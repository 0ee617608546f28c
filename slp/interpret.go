package slp

import (
	"image/color"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var transparent = color.NRGBA{}

// interpreter walks the command stream of one frame, row by row, and paints
// the primary and outline rasters.
type interpreter struct {
	c     *cursor
	width int
	props Properties
	pal   Palette
	opts  *Options

	image, outline *Raster
	playerColors   []PlayerColorEntry

	// Resolved palette colors, filled in on first use.
	resolved [256]color.NRGBA
	known    [256]bool

	y, x, end int
}

func (in *interpreter) run(base int64, edges []EdgeEntry, rowOffsets []uint32) error {
	w := in.width
	for y, e := range edges {
		if e.Transparent() {
			in.image.fill(0, w, y, PixelTransparent, transparent)
			in.outline.fill(0, w, y, PixelTransparent, transparent)
			continue
		}

		left, right := int(e.Left), int(e.Right)
		if left+right > w {
			return malformed("row %d: edges %d+%d exceed width %d", y, left, right, w)
		}
		in.image.fill(0, left, y, PixelTransparent, transparent)
		in.outline.fill(0, left, y, PixelTransparent, transparent)
		in.image.fill(w-right, w, y, PixelTransparent, transparent)
		in.outline.fill(w-right, w, y, PixelTransparent, transparent)

		if err := in.c.seek(base + int64(rowOffsets[y])); err != nil {
			return errors.Wrapf(err, "row %d", y)
		}
		if err := in.row(y, left, w-right); err != nil {
			return err
		}
	}
	return nil
}

// row decodes commands until the end-of-row marker. Columns [x, end) must be
// covered exactly.
func (in *interpreter) row(y, x, end int) error {
	in.y, in.x, in.end = y, x, end
	start := in.c.offset()
	for {
		cmd, err := decodeCommand(in.c)
		if err != nil {
			return errors.Wrapf(err, "row %d, column %d", y, in.x)
		}
		if cmd.op == OpEndOfRow {
			if in.x != end {
				return malformed("row %d ends at column %d, want %d", y, in.x, end)
			}
			if glog.V(3) {
				glog.Infof("slp: row %d: columns [%d,%d) from %d command bytes", y, x, end, in.c.offset()-start)
			}
			return nil
		}
		if err := in.exec(cmd); err != nil {
			return errors.Wrapf(err, "row %d", y)
		}
	}
}

func (in *interpreter) exec(cmd command) error {
	if in.x+cmd.count > in.end {
		return malformed("%s run of %d at column %d overruns column %d", cmd.op, cmd.count, in.x, in.end)
	}

	switch cmd.op {
	case OpCopy, OpPlayerCopy:
		for i := 0; i < cmd.count; i++ {
			idx, err := in.c.readByte()
			if err != nil {
				return err
			}
			if err := in.paint(idx, cmd.op == OpPlayerCopy); err != nil {
				return err
			}
		}
	case OpFill, OpPlayerFill:
		idx, err := in.c.readByte()
		if err != nil {
			return err
		}
		for i := 0; i < cmd.count; i++ {
			if err := in.paint(idx, cmd.op == OpPlayerFill); err != nil {
				return err
			}
		}
	case OpSkip:
		in.span(cmd.count, PixelTransparent, transparent, PixelTransparent, transparent)
	case OpShadow:
		in.span(cmd.count, PixelShadow, in.opts.ShadowColor, PixelTransparent, transparent)
	case OpOutline:
		in.span(cmd.count, PixelTransparent, transparent, PixelOutline, in.opts.OutlineColor)
	case OpShieldOutline:
		in.span(cmd.count, PixelTransparent, transparent, PixelShieldOutline, in.opts.ShieldOutlineColor)
	case OpRenderHint:
	default:
		return malformed("unexpected %s command", cmd.op)
	}
	return nil
}

// span writes count pixels to both rasters without reading data bytes.
func (in *interpreter) span(count int, ik PixelKind, ic color.NRGBA, ok PixelKind, oc color.NRGBA) {
	in.image.fill(in.x, in.x+count, in.y, ik, ic)
	in.outline.fill(in.x, in.x+count, in.y, ok, oc)
	in.x += count
}

// paint writes one opaque pixel. For player-color commands idx is an offset
// into the player block rather than a palette index.
func (in *interpreter) paint(idx uint8, player bool) error {
	if player {
		abs := int(idx) + int(in.opts.PlayerColorBase)
		if abs > 0xFF {
			return malformed("player color %d+%d at column %d is past the palette", idx, in.opts.PlayerColorBase, in.x)
		}
		idx = uint8(abs)
		if !in.pal.IsPlayerColor(idx) {
			return malformed("player color %d+%d at column %d is outside the player color range", abs-int(in.opts.PlayerColorBase), in.opts.PlayerColorBase, in.x)
		}
	} else if in.props&PropertyPlayerColor != 0 && in.pal.IsPlayerColor(idx) {
		player = true
	}

	c, err := in.resolve(idx)
	if err != nil {
		return err
	}
	in.image.set(in.x, in.y, PixelOpaque, c)
	in.outline.set(in.x, in.y, PixelTransparent, transparent)
	if player {
		in.playerColors = append(in.playerColors, PlayerColorEntry{X: in.x, Y: in.y, Index: idx})
	}
	in.x++
	return nil
}

func (in *interpreter) resolve(idx uint8) (color.NRGBA, error) {
	if in.known[idx] {
		return in.resolved[idx], nil
	}
	c := in.pal.Resolve(idx)
	if c == nil {
		return color.NRGBA{}, malformed("palette index %d at column %d is not defined", idx, in.x)
	}
	in.resolved[idx] = color.NRGBAModel.Convert(c).(color.NRGBA)
	in.known[idx] = true
	return in.resolved[idx], nil
}
