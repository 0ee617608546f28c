//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris)

package main

import (
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

// GetTermSize returns the size of the terminal on stdin in cells. Pixel
// sizes are not known on this platform.
func GetTermSize() (TermSize, error) {
	w, h, err := terminal.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}
