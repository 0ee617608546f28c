// Command slpprint prints frames of an .slp file on the terminal, and
// converts them to PNG or animated GIF.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-slp/export"
	"badc0de.net/pkg/go-slp/palette"
	"badc0de.net/pkg/go-slp/paths"
	"badc0de.net/pkg/go-slp/sheet"
	"badc0de.net/pkg/go-slp/slp"
)

var (
	frameIdx    = flag.Int("frame", 0, "frame to print")
	all         = flag.Bool("all", false, "whether to print all frames instead of just -frame")
	outline     = flag.Bool("outline", false, "whether to print the outline image instead of the primary image")
	player      = flag.Int("player", -1, "if not negative, draw player colors in this player's shade")
	pngOut      = flag.String("png_out", "", "write the frame to this PNG file; with -all, must contain %d for the frame index")
	gifOut      = flag.String("gif_out", "", "write all frames to this file as an animated GIF")
	gifDelay    = flag.Int("gif_delay", 10, "delay between GIF frames, in 1/100s")
	dataURL     = flag.Bool("data_url", false, "whether to print the frame as a PNG data: URL")
	banner      = flag.Bool("banner", false, "whether to print a banner and a summary of the file")
	downsize    = flag.Bool("downsize", false, "whether to shrink images to fit the terminal")
	col         = flag.Bool("col", true, "whether to print in color")
	col256      = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm       = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm     = flag.Bool("rasterm", false, "whether to print with kitty, iterm or sixel graphics, whichever the terminal supports")
	kinds       = flag.Bool("kinds", false, "whether to print a map of pixel kinds instead of colors")
	blanks      = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	parallelism = flag.Int("parallelism", 4, "how many frames to decode at once with -all and -gif_out")

	slpPath     string
	palettePath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("graphics.slp", "slp_path", &slpPath)
	paths.SetupFilePathFlag("interfac.pal", "palette_path", &palettePath)
}

// loadPalette reads a JASC-PAL palette, or falls back to grayscale if no
// palette was given.
func loadPalette(path string) (*palette.Palette, error) {
	if path == "" {
		glog.Infof("no palette given, using grayscale")
		return palette.Grayscale(), nil
	}
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening palette for load")
	}
	defer f.Close()
	if strings.HasSuffix(path, ".rgb") {
		pal, err := palette.DecodeRGB(f, 256)
		return pal, errors.Wrap(err, "parsing rgb palette")
	}
	pal, err := palette.Decode(f)
	return pal, errors.Wrap(err, "parsing palette")
}

// render picks the image of f the flags ask for.
func render(f *slp.Frame, pal *palette.Palette) image.Image {
	if *outline {
		return f.Outline()
	}
	if *player >= 0 {
		img := f.Image().NRGBA()
		draw.Draw(img, img.Bounds(), f.PlayerColorMask(pal, *player), image.Point{}, draw.Over)
		return img
	}
	return f.Image()
}

func printBanner(s *sheet.Sheet, size int64) {
	fmt.Print(figure.NewFigure("slpprint", "", true).String())
	fmt.Printf("%s: version %s, %d frames, %s, comment %q\n", slpPath, s.Version(), s.NumFrames(), humanize.Bytes(uint64(size)), s.Comment())
}

func handleFrame(idx int, f *slp.Frame, pal *palette.Palette) {
	img := render(f, pal)
	fmt.Printf("frame %d: %dx%d, hotspot %v, %d player color pixels\n", idx, f.Width(), f.Height(), f.Hotspot(), len(f.PlayerColors()))

	if *pngOut != "" {
		fn := *pngOut
		if *all {
			fn = fmt.Sprintf(*pngOut, idx)
		}
		if err := writeFile(fn, func(w *os.File) error { return export.WritePNG(w, img) }); err != nil {
			glog.Errorf("frame %d: %v", idx, err)
		}
	}
	if *dataURL {
		u, err := export.DataURL(img)
		if err != nil {
			glog.Errorf("frame %d: %v", idx, err)
		} else {
			fmt.Println(u)
		}
	}
	if f.Width() == 0 || f.Height() == 0 {
		return
	}
	if *kinds {
		if r, ok := img.(*slp.Raster); ok {
			printKinds(r)
			return
		}
	}
	out(img)
}

// decodeEach decodes every frame of s, passing the good ones to handle in
// order. It returns the good frames and the first error, if any; broken
// frames are logged and skipped.
func decodeEach(ctx context.Context, s *sheet.Sheet, pal slp.Palette, opts *slp.Options, handle func(int, *slp.Frame)) ([]*slp.Frame, error) {
	var frames []*slp.Frame
	var firstErr error
	for i, r := range s.DecodeEach(ctx, pal, opts, *parallelism) {
		if r.Err != nil {
			glog.Errorf("%v", r.Err)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		frames = append(frames, r.Frame)
		handle(i, r.Frame)
	}
	return frames, firstErr
}

func writeFile(fn string, write func(*os.File) error) error {
	w, err := os.Create(fn)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return errors.Wrap(w.Close(), "closing output")
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if *all && *pngOut != "" && !strings.Contains(*pngOut, "%d") {
		glog.Exitf("-png_out with -all must contain %%d, got %q", *pngOut)
	}

	pal, err := loadPalette(palettePath)
	if err != nil {
		glog.Exitf("loading palette: %v", err)
	}

	f, err := paths.NoFindOpen(slpPath)
	if err != nil {
		glog.Exitf("opening slp: %v", err)
	}
	defer f.Close()
	s, err := sheet.Open(f, 0)
	if err != nil {
		glog.Exitf("parsing slp: %v", err)
	}

	if *banner {
		size, _ := f.Seek(0, io.SeekEnd)
		printBanner(s, size)
	}

	opts := slp.DefaultOptions()
	ctx := context.Background()
	// With -all, frames decoded for printing are reused for the gif.
	var decoded []*slp.Frame
	var decodeErr error
	if *all {
		decoded, decodeErr = decodeEach(ctx, s, pal, opts, func(i int, f *slp.Frame) { handleFrame(i, f, pal) })
	} else {
		fr, err := s.Frame(*frameIdx, pal, opts)
		if err != nil {
			glog.Exitf("%v", err)
		}
		handleFrame(*frameIdx, fr, pal)
	}

	if *gifOut != "" {
		frames, err := decoded, decodeErr
		if !*all {
			frames, err = s.DecodeAll(ctx, pal, opts, *parallelism)
		}
		if err != nil {
			glog.Exitf("decoding frames for gif: %v", err)
		}
		err = writeFile(*gifOut, func(w *os.File) error {
			return export.WriteGIF(w, export.AlignHotspots(frames), *gifDelay)
		})
		if err != nil {
			glog.Exitf("writing gif: %v", err)
		}
	}
}
