package slp

import (
	"bytes"
	"encoding/binary"
	"testing"

	"badc0de.net/pkg/go-slp/ttesting"
)

func TestReadFrameHeader(t *testing.T) {
	want := FrameHeader{
		CmdTableOffset:     0x1234,
		OutlineTableOffset: 0x1000,
		PaletteOffset:      0,
		Properties:         PropertyDefaultPalette | PropertyPlayerColor,
		Width:              48,
		Height:             52,
		HotspotX:           24,
		HotspotY:           -40,
	}
	var b bytes.Buffer
	b.Write([]byte{0xAA, 0xBB, 0xCC}) // junk before the header
	binary.Write(&b, binary.LittleEndian, want)

	got, err := ReadFrameHeader(bytes.NewReader(b.Bytes()), 3)
	if err != nil {
		t.Fatalf("ReadFrameHeader: %v", err)
	}
	if got != want {
		t.Errorf("got %+v; want %+v", got, want)
	}
	ttesting.AssertEqualInt(t, "header size", FrameHeaderSize, 32)
}

func TestReadFrameHeaderTruncated(t *testing.T) {
	for _, n := range []int{0, 1, 31} {
		_, err := ReadFrameHeader(bytes.NewReader(make([]byte, n)), 0)
		ttesting.AssertErrorIs(t, "short header", err, ErrTruncatedInput)
	}
}

func TestPropertiesString(t *testing.T) {
	cases := []struct {
		p    Properties
		want string
	}{
		{0, "none"},
		{PropertyPlayerColor, "playercolor"},
		{PropertyDefaultPalette | 0x02, "palette=2|defaultpalette"},
		{0x108, "playercolor|unknown=0x100"},
	}
	for _, tt := range cases {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Properties(%#x).String() = %q; want %q", uint32(tt.p), got, tt.want)
		}
	}
}

func TestReadEdgeTable(t *testing.T) {
	want := []EdgeEntry{{0, 0}, {3, 4}, {TransparentRow, TransparentRow}}
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, want)

	got, err := ReadEdgeTable(bytes.NewReader(b.Bytes()), 0, len(want))
	if err != nil {
		t.Fatalf("ReadEdgeTable: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %+v; want %+v", i, got[i], want[i])
		}
	}
	if !got[2].Transparent() || got[1].Transparent() {
		t.Errorf("transparent rows misclassified: %+v", got)
	}

	_, err = ReadEdgeTable(bytes.NewReader(b.Bytes()[:b.Len()-1]), 0, len(want))
	ttesting.AssertErrorIs(t, "truncated edge table", err, ErrTruncatedInput)
}

func TestEdgeEntryTransparent(t *testing.T) {
	cases := []struct {
		e    EdgeEntry
		want bool
	}{
		{EdgeEntry{}, false},
		{EdgeEntry{Left: TransparentRow}, true},
		{EdgeEntry{Right: TransparentRow}, true},
		{EdgeEntry{Left: 0x7FFF, Right: 1}, false},
	}
	for _, tt := range cases {
		if got := tt.e.Transparent(); got != tt.want {
			t.Errorf("%+v.Transparent() = %v; want %v", tt.e, got, tt.want)
		}
	}
}
