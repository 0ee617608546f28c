// Package sheet reads .slp files: a short file header followed by a table
// of frame headers, with each frame's tables and commands elsewhere in the
// file.
//
// Decoding of individual frames is done by package slp; sheet only finds
// the frames and decodes them, possibly in parallel.
package sheet

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bradfitz/iter"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-slp/slp"
)

// Header is the file header found at the start of every .slp file.
type Header struct {
	Version   [4]byte
	NumFrames int32
	Comment   [24]byte
}

// HeaderSize is the on-disk size of Header.
var HeaderSize = binary.Size(Header{})

// Version2N is the only container version this package is known to read.
const Version2N = "2.0N"

// Sheet is an opened .slp file. Its methods are safe for concurrent use as
// long as the underlying io.ReaderAt is.
type Sheet struct {
	r      io.ReaderAt
	base   int64
	header Header
	frames []slp.FrameHeader
}

// Open reads the file header and the frame header table of the .slp file
// starting at base in r.
func Open(r io.ReaderAt, base int64) (*Sheet, error) {
	s := &Sheet{r: r, base: base}
	if err := binary.Read(io.NewSectionReader(r, base, int64(HeaderSize)), binary.LittleEndian, &s.header); err != nil {
		return nil, errors.Wrap(err, "reading slp file header")
	}
	if s.header.NumFrames < 0 {
		return nil, errors.Errorf("slp file header declares %d frames", s.header.NumFrames)
	}
	if v := s.Version(); v != Version2N {
		glog.V(1).Infof("sheet: unexpected version %q, decoding as %s", v, Version2N)
	}

	// NumFrames is not trusted for allocation; a short file fails at its
	// first missing header.
	for i := range iter.N(int(s.header.NumFrames)) {
		h, err := slp.ReadFrameHeader(r, s.frameOffset(i))
		if err != nil {
			return nil, errors.Wrapf(err, "reading header of frame %d of %d", i, s.header.NumFrames)
		}
		s.frames = append(s.frames, h)
	}
	glog.V(1).Infof("sheet: opened %s file with %d frames, comment %q", s.Version(), len(s.frames), s.Comment())
	return s, nil
}

// OpenReader is like Open, but accepts any reader. Readers that do not
// implement io.ReaderAt are read into memory first.
func OpenReader(r io.Reader) (*Sheet, error) {
	if ra, ok := r.(io.ReaderAt); ok {
		return Open(ra, 0)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading slp file")
	}
	return Open(bytes.NewReader(buf), 0)
}

func (s *Sheet) frameOffset(i int) int64 {
	return s.base + int64(HeaderSize) + int64(i)*int64(slp.FrameHeaderSize)
}

// Header returns the file header.
func (s *Sheet) Header() Header { return s.header }

func (s *Sheet) Version() string { return string(bytes.TrimRight(s.header.Version[:], "\x00")) }
func (s *Sheet) Comment() string { return string(bytes.TrimRight(s.header.Comment[:], "\x00")) }
func (s *Sheet) NumFrames() int  { return len(s.frames) }

// FrameHeader returns the header of frame i.
func (s *Sheet) FrameHeader(i int) (slp.FrameHeader, error) {
	if i < 0 || i >= len(s.frames) {
		return slp.FrameHeader{}, errors.Errorf("frame %d out of range [0,%d)", i, len(s.frames))
	}
	return s.frames[i], nil
}

// Frame decodes frame i.
func (s *Sheet) Frame(i int, pal slp.Palette, opts *slp.Options) (*slp.Frame, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, errors.Errorf("frame %d out of range [0,%d)", i, len(s.frames))
	}
	f, err := slp.Decode(s.r, s.frameOffset(i), s.base, pal, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "frame %d", i)
	}
	return f, nil
}

// DecodeAll decodes every frame, running at most parallelism decodes at
// once (no limit if parallelism <= 0). The first error cancels the frames
// not yet started and is returned.
func (s *Sheet) DecodeAll(ctx context.Context, pal slp.Palette, opts *slp.Options, parallelism int) ([]*slp.Frame, error) {
	frames := make([]*slp.Frame, len(s.frames))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i := range iter.N(len(frames)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := s.Frame(i, pal, opts)
			if err != nil {
				return err
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return frames, nil
}

// Result is the outcome of decoding one frame with DecodeEach.
type Result struct {
	Frame *slp.Frame
	Err   error
}

func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error: %v", r.Err)
	}
	return fmt.Sprintf("%dx%d", r.Frame.Width(), r.Frame.Height())
}

// DecodeEach decodes every frame independently: a corrupt frame yields a
// Result with Err set and does not stop the others. Frames not started
// when ctx is done get ctx's error.
func (s *Sheet) DecodeEach(ctx context.Context, pal slp.Palette, opts *slp.Options, parallelism int) []Result {
	results := make([]Result, len(s.frames))
	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i := range iter.N(len(results)) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Frame, results[i].Err = s.Frame(i, pal, opts)
			if results[i].Err != nil {
				glog.V(1).Infof("sheet: %v", results[i].Err)
			}
			return nil
		})
	}
	g.Wait()
	return results
}
