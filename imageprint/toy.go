// Package imageprint prints decoded frames on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"

	"badc0de.net/pkg/go-slp/slp"
)

type dumper interface {
	Sprintf(s string, arg ...interface{}) string
}
type fmtDumperT struct{}

func (fmtDumperT) Sprintf(s string, arg ...interface{}) string {
	return fmt.Sprintf(s, arg...)
}

var fmtDumper fmtDumperT

func shade(w io.Writer, col ic.Color, escapesTrueColor, blanks, noColor bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		if noColor {
			fmt.Fprintf(w, "  ")
		} else {
			fmt.Fprintf(w, "\x1b[0m  ")
		}
		return
	}
	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)

	var d dumper
	if noColor {
		d = &fmtDumper
	} else if escapesTrueColor {
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm", r, g, b)
		d = &fmtDumper
	} else {
		d = color.RGB(r, g, b, true)
	}
	if blanks {
		fmt.Fprint(w, d.Sprintf("  "))
	} else {
		fmt.Fprint(w, d.Sprintf("%s", brightness((cR+cG+cB)/3>>8)))
	}
	if escapesTrueColor && !noColor {
		fmt.Fprintf(w, "\x1b[0m")
	}
}

func brightness(a uint32) string {
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func printRows(w io.Writer, i image.Image, escapesTrueColor, blanks, noColor bool) {
	for y := i.Bounds().Min.Y; y < i.Bounds().Max.Y; y++ {
		for x := i.Bounds().Min.X; x < i.Bounds().Max.X; x++ {
			shade(w, i.At(x, y), escapesTrueColor, blanks, noColor)
		}
		if !noColor {
			fmt.Fprintf(w, "\x1b[0m")
		}
		fmt.Fprintf(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, false, blanks, false)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, true, blanks, false)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printRows(w, i, false, blanks, true)
}

var kindRunes = map[slp.PixelKind]byte{
	slp.PixelUnset:         '?',
	slp.PixelTransparent:   '.',
	slp.PixelOpaque:        '#',
	slp.PixelShadow:        's',
	slp.PixelOutline:       'o',
	slp.PixelShieldOutline: 'O',
}

// PrintKinds draws one character per pixel showing what kind of run wrote
// it: '#' opaque, '.' transparent, 's' shadow, 'o' outline and 'O' shield
// outline.
func PrintKinds(w io.Writer, r *slp.Raster) {
	line := make([]byte, r.Width()+1)
	line[r.Width()] = '\n'
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			line[x] = kindRunes[r.Kind(x, y)]
		}
		w.Write(line)
	}
}

// PrintITerm draws an image using iTerm2's escape sequences.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) {
	if !isTermItermWez() {
		return
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	png.Encode(bEnc, i)
	bEnc.Close()
	fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, len(b.String()), i.Bounds().Size().X, i.Bounds().Size().Y, b.String())
}
