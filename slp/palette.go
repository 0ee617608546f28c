package slp

import "image/color"

// Palette resolves the 8-bit indices found in frame data. Implementations
// must be safe for concurrent reads; Decode never modifies them.
type Palette interface {
	// Resolve returns the color for index, or nil if the palette does not
	// define it.
	Resolve(index uint8) color.Color
	// IsPlayerColor reports whether index lies in the range reserved for
	// player colors.
	IsPlayerColor(index uint8) bool
}

// PlayerPalette resolves player-color indices for a given player.
type PlayerPalette interface {
	// PlayerColor returns the color index takes on for player, or nil if
	// there is none.
	PlayerColor(index uint8, player int) color.Color
}
