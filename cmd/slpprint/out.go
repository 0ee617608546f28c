package main

import (
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-slp/imageprint"
	"badc0de.net/pkg/go-slp/slp"
)

func out(img image.Image) {
	if *downsize {
		termSize, err := GetTermSize()
		if err != nil {
			glog.V(1).Infof("not downsizing: %v", err)
		} else if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
			// Graphics protocols draw real pixels, so the pixel size of the
			// window is what bounds the image.
			img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
		} else {
			// Every pixel takes two character cells.
			img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.NearestNeighbor)
		}
	}

	switch {
	case *rasterm:
		if !imageprint.PrintRasTerm(os.Stdout, img) {
			glog.Warningf("terminal supports neither kitty, iterm nor sixel graphics")
		}
	case !*col:
		imageprint.PrintNoColor(os.Stdout, img, *blanks)
	case *iterm:
		imageprint.PrintITerm(os.Stdout, img, "frame.png")
	case *col256:
		imageprint.Print256Color(os.Stdout, img, *blanks)
	default:
		imageprint.Print24bit(os.Stdout, img, *blanks)
	}
}

func printKinds(r *slp.Raster) {
	imageprint.PrintKinds(os.Stdout, r)
}
