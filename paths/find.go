// Package paths locates data files (.slp sprite sheets, palettes) on disk
// or over HTTP.
package paths

import (
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// File is what Open returns. Both *os.File and downloaded files satisfy it.
type File interface {
	io.ReadCloser
	io.ReaderAt
	io.Seeker
}

// Find locates the passed datafile shortname and returns an absolute or
// relative path to find the datafile at, or an empty string.
//
// For example, for "graphics.slp" it may return
// "mybinary.runfiles/go_slp/datafiles/graphics.slp".
func Find(fileName string) string {
	for _, path := range getPossiblePathsFSImp(fileName) {
		if f, err := os.Open(path); err == nil {
			f.Close()
			glog.Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error is returned.
//
// http:// and https:// URLs are downloaded instead.
func Open(fileName string) (File, error) {
	if isURL(fileName) {
		return openHTTPImp(fileName)
	}
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %v", fileName, getPossiblePathDirsFSImp())
	}
	return NoFindOpen(path)
}

// NoFindOpen opens the passed path or URL as-is.
func NoFindOpen(fileName string) (File, error) {
	if isURL(fileName) {
		return openHTTPImp(fileName)
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", fileName)
	}
	return f, nil
}

func isURL(fileName string) bool {
	return strings.HasPrefix(fileName, "http://") || strings.HasPrefix(fileName, "https://")
}
