package slp

import (
	"bytes"
	"fmt"
	"testing"

	"badc0de.net/pkg/go-slp/ttesting"
)

func TestDecodeCommand(t *testing.T) {
	cases := []struct {
		in       []byte
		op       Opcode
		count    int
		consumed int
	}{
		{[]byte{0x00}, OpCopy, 0, 1},
		{[]byte{0x10}, OpCopy, 4, 1},
		{[]byte{0xFC}, OpCopy, 63, 1},
		{[]byte{0x11}, OpSkip, 4, 1},
		{[]byte{0xFD}, OpSkip, 63, 1},
		{[]byte{0x12, 0x34}, OpCopy, 0x134, 2},
		{[]byte{0x02, 0x40}, OpCopy, 0x40, 2},
		{[]byte{0xF3, 0xFF}, OpSkip, 0xFFF, 2},
		{[]byte{0x36}, OpPlayerCopy, 3, 1},
		{[]byte{0x06, 0x40}, OpPlayerCopy, 64, 2},
		{[]byte{0x57}, OpFill, 5, 1},
		{[]byte{0x07, 0x80}, OpFill, 128, 2},
		{[]byte{0x2A}, OpPlayerFill, 2, 1},
		{[]byte{0x0A, 0x11}, OpPlayerFill, 17, 2},
		{[]byte{0x1B}, OpShadow, 1, 1},
		{[]byte{0x0B, 0x09}, OpShadow, 9, 2},
		{[]byte{0x0E}, OpRenderHint, 0, 1},
		{[]byte{0x1E}, OpRenderHint, 0, 1},
		{[]byte{0x2E}, OpRenderHint, 0, 1},
		{[]byte{0x3E}, OpRenderHint, 0, 1},
		{[]byte{0x4E}, OpOutline, 1, 1},
		{[]byte{0x5E, 0x07}, OpOutline, 7, 2},
		{[]byte{0x6E}, OpShieldOutline, 1, 1},
		{[]byte{0x7E, 0x03}, OpShieldOutline, 3, 2},
		{[]byte{0x0F}, OpEndOfRow, 0, 1},
		{[]byte{0x1F}, OpEndOfRow, 0, 1},
	}

	for _, tt := range cases {
		t.Run(fmt.Sprintf("%#02x", tt.in[0]), func(t *testing.T) {
			c := newCursor(bytes.NewReader(tt.in), 0, 0)
			cmd, err := decodeCommand(c)
			if err != nil {
				t.Fatalf("decodeCommand(% x): %v", tt.in, err)
			}
			if cmd.op != tt.op {
				t.Errorf("got op %v; want %v", cmd.op, tt.op)
			}
			ttesting.AssertEqualInt(t, "count", cmd.count, tt.count)
			ttesting.AssertEqualInt(t, "bytes consumed", int(c.offset()), tt.consumed)
		})
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want error
	}{
		{"empty", nil, ErrTruncatedInput},
		{"greater copy without low byte", []byte{0x02}, ErrTruncatedInput},
		{"nibble overflow without count byte", []byte{0x06}, ErrTruncatedInput},
		{"outline span without count", []byte{0x5E}, ErrTruncatedInput},
		{"unknown extended", []byte{0x8E}, ErrMalformedStream},
		{"unknown extended high", []byte{0xFE}, ErrMalformedStream},
	}
	for _, tt := range cases {
		c := newCursor(bytes.NewReader(tt.in), 0, 0)
		_, err := decodeCommand(c)
		ttesting.AssertErrorIs(t, tt.name, err, tt.want)
	}
}

// Every command byte decodes to something, except extended commands with a
// high nibble of 8 or more.
func TestDecodeCommandExhaustive(t *testing.T) {
	for b := 0; b < 256; b++ {
		c := newCursor(bytes.NewReader([]byte{byte(b), 0x01}), 0, 0)
		_, err := decodeCommand(c)
		wantErr := b&0x0F == 0x0E && b>>4 >= 8
		if (err != nil) != wantErr {
			t.Errorf("command %#02x: got error %v, want error: %v", b, err, wantErr)
		}
	}
}

func TestCursorLimit(t *testing.T) {
	c := newCursor(bytes.NewReader([]byte{1, 2, 3, 4}), 0, 2)
	for i := 0; i < 2; i++ {
		if _, err := c.readByte(); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	_, err := c.readByte()
	ttesting.AssertErrorIs(t, "read past limit", err, ErrMalformedStream)
}

func TestCursorNeverMovesBackwards(t *testing.T) {
	c := newCursor(bytes.NewReader(make([]byte, 16)), 0, 0)
	if err := c.seek(8); err != nil {
		t.Fatalf("seek forward: %v", err)
	}
	ttesting.AssertErrorIs(t, "seek backwards", c.seek(4), ErrMalformedStream)
}

func TestCursorRefill(t *testing.T) {
	data := make([]byte, cursorBufferSize*2+3)
	for i := range data {
		data[i] = byte(i)
	}
	c := newCursor(bytes.NewReader(data), 0, 0)
	for i := range data {
		b, err := c.readByte()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if b != byte(i) {
			t.Fatalf("read %d: got %d", i, b)
		}
	}
	_, err := c.readByte()
	ttesting.AssertErrorIs(t, "read past end", err, ErrTruncatedInput)
}
