// Package export serializes decoded frames: PNG stills, animated GIFs and
// PNG data URLs.
package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-slp/slp"
)

// WritePNG writes img as a PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encoding png")
	}
	return nil
}

// DataURL returns img as a PNG inside a data: URL, suitable for an <img>
// src attribute.
func DataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return "", err
	}
	return dataurl.New(buf.Bytes(), "image/png").String(), nil
}

// Paletted quantizes img to at most 255 colors, plus color.Transparent at
// index 0.
func Paletted(img image.Image) *image.Paletted {
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(make(color.Palette, 0, 255), img)

	// Index 0 is what an untouched paletted image holds, so transparent
	// pixels need no drawing.
	p := image.NewPaletted(img.Bounds(), append(color.Palette{color.Transparent}, pal...))
	draw.Draw(p, img.Bounds(), img, img.Bounds().Min, draw.Over)
	return p
}

// WriteGIF writes frames as an animated GIF, showing each frame for delay
// hundredths of a second. The logical screen is large enough to hold the
// largest frame.
func WriteGIF(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	g := gif.GIF{}
	var bounds image.Rectangle
	for _, img := range frames {
		p := Paletted(img)
		bounds = bounds.Union(p.Bounds())
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalBackground)
	}
	g.BackgroundIndex = 0 // color.Transparent
	g.Config = image.Config{Width: bounds.Max.X, Height: bounds.Max.Y}
	if err := gif.EncodeAll(w, &g); err != nil {
		return errors.Wrap(err, "encoding gif")
	}
	return nil
}

// AlignHotspots draws the primary images of frames onto canvases of equal
// size, with every frame's hotspot at the same point. This keeps animations
// from jittering when frame sizes differ.
func AlignHotspots(frames []*slp.Frame) []image.Image {
	// Frame rectangles with the hotspot as origin.
	var union image.Rectangle
	for _, f := range frames {
		union = union.Union(f.Image().Bounds().Sub(f.Hotspot()))
	}

	out := make([]image.Image, len(frames))
	for i, f := range frames {
		canvas := image.NewNRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
		at := f.Image().Bounds().Sub(f.Hotspot()).Sub(union.Min)
		draw.Draw(canvas, at, f.Image(), image.Point{}, draw.Src)
		out[i] = canvas
	}
	return out
}
