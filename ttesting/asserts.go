// Package ttesting contains small assertion helpers shared by the tests.
package ttesting

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertInRangeUint32(t *testing.T, name string, got, wantMin, wantMax uint32) {
	t.Run(name, func(t *testing.T) {
		if got < wantMin || got > wantMax {
			t.Errorf("got %d; want [%d,%d]", got, wantMin, wantMax)
		}
	})
}

// AssertErrorIs checks that err matches target as reported by errors.Is.
func AssertErrorIs(t *testing.T, name string, err, target error) {
	t.Run(name, func(t *testing.T) {
		if !errors.Is(err, target) {
			t.Errorf("got error %v; want %v", err, target)
		}
	})
}

// AssertEqualColor compares two colors by their premultiplied RGBA values.
func AssertEqualColor(t *testing.T, name string, got, want color.Color) {
	t.Run(name, func(t *testing.T) {
		gr, gg, gb, ga := got.RGBA()
		wr, wg, wb, wa := want.RGBA()
		if gr != wr || gg != wg || gb != wb || ga != wa {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}
