// Command slpweb serves the frames of an .slp file over HTTP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	_ "golang.org/x/net/trace" // registers /debug/requests and /debug/events

	"badc0de.net/pkg/go-slp/palette"
	"badc0de.net/pkg/go-slp/paths"
	"badc0de.net/pkg/go-slp/sheet"
	"badc0de.net/pkg/go-slp/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for slpweb")

	slpPath     string
	palettePath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("graphics.slp", "slp_path", &slpPath)
	paths.SetupFilePathFlag("interfac.pal", "palette_path", &palettePath)
}

func loadPalette(path string) (*palette.Palette, error) {
	if path == "" {
		return palette.Grayscale(), nil
	}
	f, err := paths.NoFindOpen(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening palette for load")
	}
	defer f.Close()
	pal, err := palette.Decode(f)
	return pal, errors.Wrap(err, "parsing palette")
}

// newRouter sets up the frame routes, plus the x/net/trace pages living on
// the default mux.
func newRouter(s *sheet.Sheet, pal *palette.Palette) *mux.Router {
	r := mux.NewRouter()
	web.NewHandler(s, pal, slpPath).RegisterRoutes(r)
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)
	return r
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()

	pal, err := loadPalette(palettePath)
	if err != nil {
		glog.Exitf("loading palette: %v", err)
	}
	f, err := paths.NoFindOpen(slpPath)
	if err != nil {
		glog.Exitf("opening slp: %v", err)
	}
	defer f.Close()
	s, err := sheet.Open(f, 0)
	if err != nil {
		glog.Exitf("parsing slp: %v", err)
	}

	glog.Infof("serving %d frames of %s on %s", s.NumFrames(), slpPath, *listenAddress)
	h := handlers.CombinedLoggingHandler(os.Stderr, handlers.CompressHandler(newRouter(s, pal)))
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
