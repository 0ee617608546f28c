package slp

import (
	"image"
	"image/color"
	"image/draw"
)

// PixelKind says what was written to a raster pixel.
type PixelKind uint8

const (
	PixelUnset PixelKind = iota
	PixelTransparent
	PixelOpaque
	PixelShadow
	PixelOutline
	PixelShieldOutline
)

func (k PixelKind) String() string {
	switch k {
	case PixelUnset:
		return "unset"
	case PixelTransparent:
		return "transparent"
	case PixelOpaque:
		return "opaque"
	case PixelShadow:
		return "shadow"
	case PixelOutline:
		return "outline"
	case PixelShieldOutline:
		return "shield-outline"
	default:
		return "invalid"
	}
}

// Raster is a decoded image. Besides the color, every pixel remembers what
// kind of command produced it.
//
// Raster implements image.Image. It is not modified after Decode returns.
type Raster struct {
	width, height int
	pix           []color.NRGBA
	kind          []PixelKind
}

func newRaster(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]color.NRGBA, width*height),
		kind:   make([]PixelKind, width*height),
	}
}

func (r *Raster) Width() int  { return r.width }
func (r *Raster) Height() int { return r.height }

func (r *Raster) ColorModel() color.Model { return color.NRGBAModel }
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.width, r.height) }

func (r *Raster) At(x, y int) color.Color {
	if !image.Pt(x, y).In(r.Bounds()) {
		return color.NRGBA{}
	}
	return r.pix[y*r.width+x]
}

// Kind returns the kind of the pixel at x, y, or PixelUnset outside the
// raster.
func (r *Raster) Kind(x, y int) PixelKind {
	if !image.Pt(x, y).In(r.Bounds()) {
		return PixelUnset
	}
	return r.kind[y*r.width+x]
}

// Count returns how many pixels are of kind k.
func (r *Raster) Count(k PixelKind) int {
	n := 0
	for _, v := range r.kind {
		if v == k {
			n++
		}
	}
	return n
}

// NRGBA copies the raster into a freshly allocated image.NRGBA.
func (r *Raster) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(r.Bounds())
	draw.Draw(img, img.Bounds(), r, image.Point{}, draw.Src)
	return img
}

func (r *Raster) set(x, y int, k PixelKind, c color.NRGBA) {
	i := y*r.width + x
	r.kind[i] = k
	r.pix[i] = c
}

func (r *Raster) fill(x0, x1, y int, k PixelKind, c color.NRGBA) {
	for x := x0; x < x1; x++ {
		r.set(x, y, k, c)
	}
}

// firstUnset returns the coordinates of the first pixel never written, or
// ok == false if every pixel was written.
func (r *Raster) firstUnset() (x, y int, ok bool) {
	for i, k := range r.kind {
		if k == PixelUnset {
			return i % r.width, i / r.width, true
		}
	}
	return 0, 0, false
}
