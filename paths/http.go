package paths

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

var (
	cache     map[string][]byte
	cacheLock sync.Mutex

	httpClient = http.DefaultClient
)

// openHTTPImp downloads fileName into memory, keeping a copy for later
// opens of the same URL.
func openHTTPImp(fileName string) (File, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()

	if cache == nil {
		cache = make(map[string][]byte)
	}
	if buf, ok := cache[fileName]; ok {
		glog.V(2).Infof("paths/http.go: NoFindOpen(%q): returning reader for cached buffer", fileName)
		return &bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
	}

	glog.V(1).Infof("paths/http.go: getting http file %q", fileName)
	response, err := httpClient.Get(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.NoFindOpen(%q): failed to open", fileName)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		e := os.ErrInvalid
		if response.StatusCode == http.StatusNotFound {
			e = os.ErrNotExist
		}
		return nil, errors.Wrapf(e, "paths.NoFindOpen(%q): http response.StatusCode=%v, want 200", fileName, response.StatusCode)
	}

	// TODO(ivucica): Explore using ranged reads; ReaderAt maps onto them well.
	buf, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "copying response to seekable buffer")
	}
	cache[fileName] = buf
	return &bytesReaderWithDummyClose{bytes.NewReader(buf)}, nil
}

type bytesReaderWithDummyClose struct {
	*bytes.Reader
}

func (bytesReaderWithDummyClose) Close() error {
	return nil
}
