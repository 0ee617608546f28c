// Package palette reads the color palettes SLP frames are drawn with.
//
// Palettes ship either as JASC-PAL text files (the interfac.drs and
// 50500.bina resources of the games) or as raw packed RGB triplets. A
// Palette also knows which indices are player colors and where each
// player's variant of them lives.
package palette

import (
	"bufio"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Player color layout used by the games: eight shades starting at index 16,
// with each player's block following the previous one 16 entries later.
const (
	DefaultPlayerBase   = 16
	DefaultPlayerSpan   = 8
	DefaultPlayerStride = 16
)

// Palette maps 8-bit indices to colors. It is safe for concurrent use once
// constructed.
type Palette struct {
	colors []color.NRGBA

	playerBase, playerSpan, playerStride int
}

// New builds a palette from at most 256 colors.
func New(p color.Palette) *Palette {
	if len(p) > 256 {
		p = p[:256]
	}
	pal := &Palette{
		colors:       make([]color.NRGBA, len(p)),
		playerBase:   DefaultPlayerBase,
		playerSpan:   DefaultPlayerSpan,
		playerStride: DefaultPlayerStride,
	}
	for i, c := range p {
		pal.colors[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return pal
}

// Grayscale returns a 256-entry palette where index i is gray level i.
// Useful when no real palette is at hand.
func Grayscale() *Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return New(p)
}

// WithPlayerRange returns a copy of p with a different player color layout:
// span indices starting at base are player colors, and player n's shade of
// index i is at i + n*stride.
func (p *Palette) WithPlayerRange(base, span, stride int) *Palette {
	np := *p
	np.playerBase, np.playerSpan, np.playerStride = base, span, stride
	return &np
}

// Len returns the number of defined colors.
func (p *Palette) Len() int { return len(p.colors) }

// Resolve returns the color at index, or nil past the end of the palette.
func (p *Palette) Resolve(index uint8) color.Color {
	if int(index) >= len(p.colors) {
		return nil
	}
	return p.colors[index]
}

// IsPlayerColor reports whether index is one of the player color shades.
func (p *Palette) IsPlayerColor(index uint8) bool {
	i := int(index)
	return i >= p.playerBase && i < p.playerBase+p.playerSpan
}

// PlayerColor returns player's shade of the player color at index. Player 0
// is the base shade. Indices that are not player colors, and players whose
// block lies past the palette, give nil.
func (p *Palette) PlayerColor(index uint8, player int) color.Color {
	if !p.IsPlayerColor(index) || player < 0 {
		return nil
	}
	i := int(index) + player*p.playerStride
	if i >= len(p.colors) {
		return nil
	}
	return p.colors[i]
}

// Colors returns the palette as a color.Palette, for use with image/gif and
// friends.
func (p *Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		cp[i] = c
	}
	return cp
}

// Decode reads a JASC-PAL palette:
//
//	JASC-PAL
//	0100
//	256
//	255 0 255
//	...
func Decode(r io.Reader) (*Palette, error) {
	s := bufio.NewScanner(r)
	line := 0
	next := func() (string, error) {
		for s.Scan() {
			line++
			if t := strings.TrimSpace(s.Text()); t != "" {
				return t, nil
			}
		}
		if err := s.Err(); err != nil {
			return "", errors.Wrap(err, "reading palette")
		}
		return "", errors.Wrapf(io.ErrUnexpectedEOF, "palette ends after line %d", line)
	}

	magic, err := next()
	if err != nil {
		return nil, err
	}
	if magic != "JASC-PAL" {
		return nil, errors.Errorf("bad palette magic: got %q, want %q", magic, "JASC-PAL")
	}
	if _, err := next(); err != nil { // version, always 0100
		return nil, err
	}
	countStr, err := next()
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(countStr)
	if err != nil || count < 0 || count > 256 {
		return nil, errors.Errorf("bad palette color count %q on line %d", countStr, line)
	}

	p := make(color.Palette, count)
	for i := range p {
		t, err := next()
		if err != nil {
			return nil, err
		}
		f := strings.Fields(t)
		if len(f) < 3 {
			return nil, errors.Errorf("palette line %d: want 3 components, got %q", line, t)
		}
		var rgb [3]uint8
		for j := range rgb {
			v, err := strconv.ParseUint(f[j], 10, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "palette line %d", line)
			}
			rgb[j] = uint8(v)
		}
		p[i] = color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
	}
	return New(p), nil
}

// DecodeRGB reads n packed RGB triplets.
func DecodeRGB(r io.Reader, n int) (*Palette, error) {
	if n < 0 || n > 256 {
		return nil, errors.Errorf("bad palette size %d", n)
	}
	buf := make([]byte, 3*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "reading rgb palette")
	}
	p := make(color.Palette, n)
	for i := range p {
		p[i] = color.NRGBA{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2], A: 0xFF}
	}
	return New(p), nil
}
