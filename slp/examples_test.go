package slp

import (
	"bytes"
	"fmt"
)

// ExampleDecode decodes a small frame and prints what it contains.
func ExampleDecode() {
	data := testFrame{
		width: 4, height: 2,
		props: PropertyPlayerColor,
		rows: [][]byte{
			{0x10, 5, 5, 20, 20, 0x0F}, // copy 4 indices
			{0x11, 0x0F},               // skip 4
		},
	}.build()

	f, err := Decode(bytes.NewReader(data), 0, 0, testPalette{n: 256}, nil)
	if err != nil {
		fmt.Printf("failed to decode frame: %s", err)
		return
	}

	fmt.Printf("frame: %dx%d\n", f.Width(), f.Height())
	fmt.Printf("opaque: %d, transparent: %d\n", f.Image().Count(PixelOpaque), f.Image().Count(PixelTransparent))
	for _, e := range f.PlayerColors() {
		fmt.Printf("player color at %d,%d: index %d\n", e.X, e.Y, e.Index)
	}
	// Output:
	// frame: 4x2
	// opaque: 4, transparent: 4
	// player color at 2,0: index 20
	// player color at 3,0: index 20
}
