package slp

import "fmt"

// Opcode is the kind of a decoded pixel command.
type Opcode uint8

const (
	OpCopy          Opcode = iota // copy count palette indices
	OpSkip                        // count transparent pixels
	OpPlayerCopy                  // copy count player-color indices
	OpFill                        // one index repeated count times
	OpPlayerFill                  // one player-color index repeated count times
	OpShadow                      // count shadow pixels
	OpOutline                     // count player outline pixels
	OpShieldOutline               // count shield outline pixels
	OpRenderHint                  // no pixels
	OpEndOfRow
)

var opcodeNames = [...]string{
	OpCopy:          "copy",
	OpSkip:          "skip",
	OpPlayerCopy:    "player-copy",
	OpFill:          "fill",
	OpPlayerFill:    "player-fill",
	OpShadow:        "shadow",
	OpOutline:       "outline",
	OpShieldOutline: "shield-outline",
	OpRenderHint:    "render-hint",
	OpEndOfRow:      "end-of-row",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// command is one decoded command byte together with its run length. Data
// bytes (indices) are not part of it; the interpreter reads those.
type command struct {
	op    Opcode
	count int
}

// Low bits of the command byte.
const (
	cmdLesserCopy   = 0x00 // 2-bit code
	cmdLesserSkip   = 0x01 // 2-bit code
	cmdGreaterCopy  = 0x02
	cmdGreaterSkip  = 0x03
	cmdPlayerCopy   = 0x06
	cmdFill         = 0x07
	cmdPlayerFill   = 0x0A
	cmdShadow       = 0x0B
	cmdExtended     = 0x0E
	cmdEndOfRow     = 0x0F
	cmdLesserMask   = 0x03
	cmdOpcodeMask   = 0x0F
	cmdExtendedMask = 0xF0
)

// Extended commands, selected by the high nibble of a cmdExtended byte.
const (
	extHintFlipX        = 0x00
	extHintNoFlipX      = 0x10
	extHintTableNormal  = 0x20
	extHintTableAlt     = 0x30
	extOutline          = 0x40
	extOutlineSpan      = 0x50
	extShieldOutline    = 0x60
	extShieldOutlineSpn = 0x70
)

// decodeCommand reads one command byte, plus any bytes that hold its run
// length, from c.
func decodeCommand(c *cursor) (command, error) {
	cmd, err := c.readByte()
	if err != nil {
		return command{}, err
	}

	switch cmd & cmdLesserMask {
	case cmdLesserCopy:
		return command{OpCopy, int(cmd >> 2)}, nil
	case cmdLesserSkip:
		return command{OpSkip, int(cmd >> 2)}, nil
	}

	switch cmd & cmdOpcodeMask {
	case cmdGreaterCopy:
		n, err := greaterCount(c, cmd)
		return command{OpCopy, n}, err
	case cmdGreaterSkip:
		n, err := greaterCount(c, cmd)
		return command{OpSkip, n}, err
	case cmdPlayerCopy:
		n, err := nibbleCount(c, cmd)
		return command{OpPlayerCopy, n}, err
	case cmdFill:
		n, err := nibbleCount(c, cmd)
		return command{OpFill, n}, err
	case cmdPlayerFill:
		n, err := nibbleCount(c, cmd)
		return command{OpPlayerFill, n}, err
	case cmdShadow:
		n, err := nibbleCount(c, cmd)
		return command{OpShadow, n}, err
	case cmdExtended:
		return decodeExtended(c, cmd)
	case cmdEndOfRow:
		return command{OpEndOfRow, 0}, nil
	}
	// Unreachable: with the two low bits being 10 or 11, every low nibble
	// is handled above.
	return command{}, malformed("unhandled command byte %#02x at offset %d", cmd, c.offset()-1)
}

func decodeExtended(c *cursor, cmd byte) (command, error) {
	switch cmd & cmdExtendedMask {
	case extHintFlipX, extHintNoFlipX, extHintTableNormal, extHintTableAlt:
		return command{OpRenderHint, 0}, nil
	case extOutline:
		return command{OpOutline, 1}, nil
	case extShieldOutline:
		return command{OpShieldOutline, 1}, nil
	case extOutlineSpan:
		n, err := c.readByte()
		return command{OpOutline, int(n)}, err
	case extShieldOutlineSpn:
		n, err := c.readByte()
		return command{OpShieldOutline, int(n)}, err
	}
	return command{}, malformed("unknown extended command %#02x at offset %d", cmd, c.offset()-1)
}

// nibbleCount returns the run length packed in the high nibble of cmd or,
// if that nibble is zero, the value of the next byte.
func nibbleCount(c *cursor, cmd byte) (int, error) {
	if n := cmd >> 4; n != 0 {
		return int(n), nil
	}
	n, err := c.readByte()
	return int(n), err
}

// greaterCount returns a 12-bit run length: the high nibble of cmd shifted
// up by 8, or'd with the next byte.
func greaterCount(c *cursor, cmd byte) (int, error) {
	lo, err := c.readByte()
	if err != nil {
		return 0, err
	}
	return int(cmd&0xF0)<<4 | int(lo), nil
}
