package slp

import (
	"io"

	"github.com/pkg/errors"
)

// Errors returned by Decode and the readers it is built from. They are
// always wrapped with some context (row, column, offset); use errors.Is to
// match them.
var (
	// ErrTruncatedInput means the byte source ended before a structurally
	// required field could be read.
	ErrTruncatedInput = errors.New("slp: truncated input")

	// ErrMalformedStream means the data is complete but inconsistent, such
	// as a run overflowing the row or an index the palette does not define.
	ErrMalformedStream = errors.New("slp: malformed stream")

	// ErrUnsupportedFeature means the frame properties carry a flag this
	// decoder does not know.
	ErrUnsupportedFeature = errors.New("slp: unsupported feature")
)

// truncated converts an end-of-input condition into ErrTruncatedInput and
// passes through any other error.
func truncated(err error, format string, args ...interface{}) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrTruncatedInput, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedStream, format, args...)
}
