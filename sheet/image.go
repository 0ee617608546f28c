package sheet

// This file hooks .slp files into image.Decode. Only the first frame is
// returned, drawn with DefaultPalette.

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-slp/palette"
	"badc0de.net/pkg/go-slp/slp"
)

func init() {
	image.RegisterFormat("slp", Version2N, Decode, DecodeConfig)
}

// DefaultPalette is used by Decode. Files do not carry their palette, so
// unless replaced this is a grayscale ramp.
var DefaultPalette slp.Palette = palette.Grayscale()

// Decode returns the primary image of the first frame.
func Decode(r io.Reader) (image.Image, error) {
	s, err := OpenReader(r)
	if err != nil {
		return nil, err
	}
	if s.NumFrames() == 0 {
		return nil, errors.New("slp: file has no frames")
	}
	f, err := s.Frame(0, DefaultPalette, nil)
	if err != nil {
		return nil, err
	}
	return f.Image(), nil
}

// DecodeConfig returns the dimensions of the first frame.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return image.Config{}, errors.Wrap(err, "slp: reading file header")
	}
	if h.NumFrames <= 0 {
		return image.Config{}, errors.New("slp: file has no frames")
	}
	buf := make([]byte, slp.FrameHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, errors.Wrap(err, "slp: reading first frame header")
	}
	fh, err := slp.ReadFrameHeader(bytes.NewReader(buf), 0)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{Width: int(fh.Width), Height: int(fh.Height), ColorModel: color.NRGBAModel}, nil
}
