package slp

import (
	"image/color"
)

// PlayerColorEntry records a pixel that has to be recolored for the player
// owning the sprite. Index is the palette index of the base color.
type PlayerColorEntry struct {
	X, Y  int
	Index uint8
}

// PlayerColorMask builds an overlay with the frame's player-color pixels
// colored for player. All other pixels are transparent.
//
// The mask is computed on every call and shares nothing with the frame.
func (f *Frame) PlayerColorMask(p PlayerPalette, player int) *Raster {
	mask := newRaster(f.image.width, f.image.height)
	for i := range mask.kind {
		mask.kind[i] = PixelTransparent
	}
	for _, e := range f.playerColors {
		c := p.PlayerColor(e.Index, player)
		if c == nil {
			continue
		}
		mask.set(e.X, e.Y, PixelOpaque, color.NRGBAModel.Convert(c).(color.NRGBA))
	}
	return mask
}
