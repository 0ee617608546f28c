package web

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-slp/internal/slptest"
	"badc0de.net/pkg/go-slp/palette"
	"badc0de.net/pkg/go-slp/sheet"
	"badc0de.net/pkg/go-slp/slp"
	"badc0de.net/pkg/go-slp/ttesting"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	player := slptest.Frame{
		Width: 3, Height: 1,
		Rows: [][]byte{{0x36, 2, 0, 5, 0x0F}}, // player copy of offsets 2, 0, 5
	}
	broken := slptest.Filled(2, 1, 9)
	broken.Rows[0] = slptest.FillRow(3, 9)

	data := slptest.Sheet(0, "web test", slptest.Filled(2, 2, 100), player, broken)
	s, err := sheet.Open(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatalf("sheet.Open: %v", err)
	}
	r := mux.NewRouter()
	NewHandler(s, palette.Grayscale(), "").RegisterRoutes(r)
	return r
}

func get(r http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFrameHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/frame/0.png")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("got content type %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 2)
	ttesting.AssertEqualColor(t, "pixel", img.At(1, 1), color.Gray{Y: 100})
}

func TestFrameHandlerScale(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/frame/0.png?scale=3")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 6)
	ttesting.AssertEqualInt(t, "height", img.Bounds().Dy(), 6)
}

func TestETag(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/frame/0.png")
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("no ETag")
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Errorf("no Cache-Control")
	}

	rec = get(r, "/frame/0.png", "If-None-Match", etag)
	ttesting.AssertEqualInt(t, "revalidated status", rec.Code, http.StatusNotModified)
	ttesting.AssertEqualInt(t, "revalidated body", rec.Body.Len(), 0)

	if other := get(r, "/frame/1.png").Header().Get("ETag"); other == etag {
		t.Errorf("frames 0 and 1 share ETag %s", etag)
	}
	if scaled := get(r, "/frame/0.png?scale=2").Header().Get("ETag"); scaled == etag {
		t.Errorf("scaled frame shares ETag %s", etag)
	}
}

func TestPlayerHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/frame/1/player/2.png")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	// Offsets 2, 0, 5 are indices 18, 16, 21; player 2's shades are 32
	// entries later.
	ttesting.AssertEqualColor(t, "x=0", img.At(0, 0), color.Gray{Y: 18 + 32})
	ttesting.AssertEqualColor(t, "x=1", img.At(1, 0), color.Gray{Y: 16 + 32})
	ttesting.AssertEqualColor(t, "x=2", img.At(2, 0), color.Gray{Y: 21 + 32})

	rec = get(r, "/frame/1.png")
	img, err = png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	ttesting.AssertEqualColor(t, "base color", img.At(0, 0), color.Gray{Y: 18})
}

func TestOutlineHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/frame/0/outline.png")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	ttesting.AssertEqualColor(t, "pixel", img.At(0, 0), color.Transparent)
}

func TestFrameErrors(t *testing.T) {
	r := newTestRouter(t)
	ttesting.AssertEqualInt(t, "missing frame", get(r, "/frame/3.png").Code, http.StatusNotFound)
	ttesting.AssertEqualInt(t, "broken frame", get(r, "/frame/2.png").Code, http.StatusInternalServerError)
	ttesting.AssertEqualInt(t, "not a route", get(r, "/frame/x.png").Code, http.StatusNotFound)
}

func TestAnimHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/anim.gif?delay=20")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	g, err := gif.DecodeAll(rec.Body)
	if err != nil {
		t.Fatalf("gif.DecodeAll: %v", err)
	}
	// The broken frame is left out.
	ttesting.AssertEqualInt(t, "frames", len(g.Image), 2)
	ttesting.AssertEqualInt(t, "delay", g.Delay[0], 20)
}

func TestSheetHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/sheet")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{
		`version 2.0N, 3 frames, comment "web test"`,
		"frame 1: 3x1 hotspot 0,0 properties none",
		"9 pixels, 72 B decoded",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("summary lacks %q:\n%s", want, body)
		}
	}
}

func TestStatusFor(t *testing.T) {
	ttesting.AssertEqualInt(t, "unsupported", statusFor(slp.ErrUnsupportedFeature), http.StatusNotImplemented)
	ttesting.AssertEqualInt(t, "malformed", statusFor(slp.ErrMalformedStream), http.StatusInternalServerError)
}

func TestIndexHandler(t *testing.T) {
	r := newTestRouter(t)
	rec := get(r, "/")
	ttesting.AssertEqualInt(t, "status", rec.Code, http.StatusOK)
	body := rec.Body.String()
	for _, want := range []string{
		`<img src="frame/2.png"`,
		`<a href="frame/1/player/8.png">8</a>`,
		"comment web test",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index lacks %q", want)
		}
	}
}
