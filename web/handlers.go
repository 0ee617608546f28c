package web

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"html/template"
	"image"
	"image/draw"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-slp/datafiles"
	"badc0de.net/pkg/go-slp/export"
	"badc0de.net/pkg/go-slp/sheet"
	"badc0de.net/pkg/go-slp/slp"
)

// Palette is what the handler draws frames with.
type Palette interface {
	slp.Palette
	slp.PlayerPalette
}

// maxScale bounds the scale query parameter.
const maxScale = 8

// numPlayers is how many player shades the index page links to.
const numPlayers = 8

var indexTemplate = template.Must(template.ParseFS(datafiles.Templates, "index.html"))

type Handler struct {
	frameLock sync.Mutex
	frames    map[int]*slp.Frame

	sheet *sheet.Sheet
	pal   Palette
	opts  *slp.Options

	signature uint32
	slpPath   string
}

// NewHandler constructs web handler serving frames of the passed sheet. The
// path to the .slp is only used for Last-Modified headers, and may be empty.
func NewHandler(s *sheet.Sheet, pal Palette, slpPath string) *Handler {
	h := &Handler{
		frames:  make(map[int]*slp.Frame),
		sheet:   s,
		pal:     pal,
		opts:    slp.DefaultOptions(),
		slpPath: slpPath,
	}

	// The signature changes when the sheet's headers or the palette do.
	crc := crc32.NewIEEE()
	binary.Write(crc, binary.LittleEndian, s.Header())
	for i := 0; i < s.NumFrames(); i++ {
		fh, _ := s.FrameHeader(i)
		binary.Write(crc, binary.LittleEndian, fh)
	}
	for i := 0; i < 256; i++ {
		if c := pal.Resolve(uint8(i)); c != nil {
			r, g, b, a := c.RGBA()
			binary.Write(crc, binary.LittleEndian, [4]uint32{r, g, b, a})
		}
	}
	h.signature = crc.Sum32()
	return h
}

// frame returns the decoded frame idx, decoding it on first use.
func (h *Handler) frame(idx int) (*slp.Frame, error) {
	h.frameLock.Lock()
	defer h.frameLock.Unlock()

	if f, ok := h.frames[idx]; ok {
		return f, nil
	}
	f, err := h.sheet.Frame(idx, h.pal, h.opts)
	if err != nil {
		return nil, err
	}
	h.frames[idx] = f
	return f, nil
}

func (h *Handler) etag(kind string, mime string, args ...interface{}) string {
	generation := 1 // bump if the way we generate it changes
	return fmt.Sprintf(`W/"%d:%s:%08x:%s:%s"`, generation, kind, h.signature, fmt.Sprint(args...), mime)
}

// notModified handles If-None-Match, returning true if nothing more needs
// to be written.
func (h *Handler) notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if r.Header.Get("If-None-Match") != etag {
		return false
	}
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusNotModified)
	return true
}

func (h *Handler) writeHeaders(w http.ResponseWriter, mime, etag string) {
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public; max-age=36000") // 36000 = 10h
	w.Header().Set("ETag", etag)
	if h.slpPath != "" {
		if s, err := os.Stat(h.slpPath); err == nil {
			w.Header().Set("Last-Modified", s.ModTime().Format(http.TimeFormat))
		}
	}
	w.WriteHeader(http.StatusOK)
}

// frameFromVars decodes the frame named by the idx route variable, writing
// an error response if that fails.
func (h *Handler) frameFromVars(w http.ResponseWriter, r *http.Request, tr trace.Trace) (int, *slp.Frame, bool) {
	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		http.Error(w, "idx not a number", http.StatusBadRequest)
		return 0, nil, false
	}
	if idx >= h.sheet.NumFrames() {
		http.Error(w, fmt.Sprintf("frame %d not found; sheet has %d frames", idx, h.sheet.NumFrames()), http.StatusNotFound)
		return 0, nil, false
	}
	f, err := h.frame(idx)
	if err != nil {
		tr.LazyPrintf("decoding frame %d: %v", idx, err)
		tr.SetError()
		glog.Errorf("web: %v", err)
		http.Error(w, err.Error(), statusFor(err))
		return 0, nil, false
	}
	return idx, f, true
}

func statusFor(err error) int {
	if errors.Is(err, slp.ErrUnsupportedFeature) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// scale reads the scale query parameter, which enlarges images by an
// integer factor. Invalid values are ignored.
func scale(r *http.Request) int {
	s, err := strconv.Atoi(r.URL.Query().Get("scale"))
	if err != nil || s < 1 {
		return 1
	}
	if s > maxScale {
		return maxScale
	}
	return s
}

func scaled(img image.Image, s int) image.Image {
	if s == 1 {
		return img
	}
	return resize.Resize(uint(img.Bounds().Dx()*s), uint(img.Bounds().Dy()*s), img, resize.NearestNeighbor)
}

func (h *Handler) servePNG(w http.ResponseWriter, r *http.Request, kind string, render func(*slp.Frame) image.Image) {
	tr := trace.New("web."+kind, r.URL.Path)
	defer tr.Finish()

	idx, f, ok := h.frameFromVars(w, r, tr)
	if !ok {
		return
	}
	s := scale(r)
	mime := "image/png"
	etag := h.etag(kind, mime, idx, ":", mux.Vars(r)["player"], ":", s)
	if h.notModified(w, r, etag) {
		tr.LazyPrintf("not modified")
		return
	}

	h.writeHeaders(w, mime, etag)
	if err := export.WritePNG(w, scaled(render(f), s)); err != nil {
		tr.LazyPrintf("%v", err)
		tr.SetError()
		glog.Errorf("web: writing %s of frame %d: %v", kind, idx, err)
	}
}

func (h *Handler) frameHandler(w http.ResponseWriter, r *http.Request) {
	h.servePNG(w, r, "frame", func(f *slp.Frame) image.Image { return f.Image() })
}

func (h *Handler) outlineHandler(w http.ResponseWriter, r *http.Request) {
	h.servePNG(w, r, "outline", func(f *slp.Frame) image.Image { return f.Outline() })
}

// playerHandler serves the frame as drawn for a player: player color pixels
// take that player's shade.
func (h *Handler) playerHandler(w http.ResponseWriter, r *http.Request) {
	player, err := strconv.Atoi(mux.Vars(r)["player"])
	if err != nil {
		http.Error(w, "player not a number", http.StatusBadRequest)
		return
	}
	h.servePNG(w, r, "player", func(f *slp.Frame) image.Image {
		img := f.Image().NRGBA()
		draw.Draw(img, img.Bounds(), f.PlayerColorMask(h.pal, player), image.Point{}, draw.Over)
		return img
	})
}

func (h *Handler) animHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.anim", r.URL.Path)
	defer tr.Finish()

	delay := 10
	if d, err := strconv.Atoi(r.URL.Query().Get("delay")); err == nil && d > 0 {
		delay = d
	}
	mime := "image/gif"
	etag := h.etag("anim", mime, delay)
	if h.notModified(w, r, etag) {
		return
	}

	var frames []*slp.Frame
	for i := 0; i < h.sheet.NumFrames(); i++ {
		f, err := h.frame(i)
		if err != nil {
			// Skip broken frames; the rest still animate.
			tr.LazyPrintf("skipping frame %d: %v", i, err)
			glog.Errorf("web: %v", err)
			continue
		}
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		http.Error(w, "no frames could be decoded", http.StatusInternalServerError)
		return
	}

	h.writeHeaders(w, mime, etag)
	if err := export.WriteGIF(w, export.AlignHotspots(frames), delay); err != nil {
		tr.LazyPrintf("%v", err)
		tr.SetError()
		glog.Errorf("web: writing animation: %v", err)
	}
}

// sheetHandler describes the sheet in plain text.
func (h *Handler) sheetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	writeSummary(w, h.sheet)
}

func writeSummary(w io.Writer, s *sheet.Sheet) {
	fmt.Fprintf(w, "version %s, %d frames, comment %q\n", s.Version(), s.NumFrames(), s.Comment())
	var pixels uint64
	for i := 0; i < s.NumFrames(); i++ {
		fh, _ := s.FrameHeader(i)
		fmt.Fprintf(w, "frame %d: %dx%d hotspot %d,%d properties %v\n", i, fh.Width, fh.Height, fh.HotspotX, fh.HotspotY, fh.Properties)
		pixels += uint64(fh.Width) * uint64(fh.Height)
	}
	fmt.Fprintf(w, "%s pixels, %s decoded\n", humanize.Comma(int64(pixels)), humanize.Bytes(pixels*4*2))
}

// indexHandler renders an HTML page showing every frame.
func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	type frameInfo struct{ Index, Width, Height int }
	data := struct {
		Path, Version, Comment string
		Frames                 []frameInfo
		Players                []int
	}{
		Path:    filepath.Base(h.slpPath),
		Version: h.sheet.Version(),
		Comment: h.sheet.Comment(),
	}
	if h.slpPath == "" {
		data.Path = "sheet"
	}
	for i := 0; i < h.sheet.NumFrames(); i++ {
		fh, _ := h.sheet.FrameHeader(i)
		data.Frames = append(data.Frames, frameInfo{i, int(fh.Width), int(fh.Height)})
	}
	for p := 1; p <= numPlayers; p++ {
		data.Players = append(data.Players, p)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := indexTemplate.Execute(w, data); err != nil {
		glog.Errorf("web: rendering index: %v", err)
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler)
	r.HandleFunc("/sheet", h.sheetHandler)
	r.HandleFunc("/frame/{idx:[0-9]+}.png", h.frameHandler)
	r.HandleFunc("/frame/{idx:[0-9]+}/outline.png", h.outlineHandler)
	r.HandleFunc("/frame/{idx:[0-9]+}/player/{player:[0-9]+}.png", h.playerHandler)
	r.HandleFunc("/anim.gif", h.animHandler)
}
