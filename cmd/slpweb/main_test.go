package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"badc0de.net/pkg/go-slp/internal/slptest"
	"badc0de.net/pkg/go-slp/sheet"
)

func TestNewRouter(t *testing.T) {
	dir := t.TempDir()
	pp := filepath.Join(dir, "test.pal")
	if err := os.WriteFile(pp, []byte("JASC-PAL\n0100\n1\n1 2 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pal, err := loadPalette(pp)
	if err != nil {
		t.Fatalf("loadPalette: %v", err)
	}
	if pal.Len() != 1 {
		t.Errorf("got %d colors; want 1", pal.Len())
	}

	s, err := sheet.Open(bytes.NewReader(slptest.Sheet(0, "", slptest.Filled(1, 1, 0))), 0)
	if err != nil {
		t.Fatalf("sheet.Open: %v", err)
	}
	r := newRouter(s, pal)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/sheet", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "1 frames") {
		t.Errorf("/sheet: got %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/frame/0.png", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/frame/0.png: got %d", rec.Code)
	}
}

func TestLoadPaletteMissing(t *testing.T) {
	if _, err := loadPalette(filepath.Join(t.TempDir(), "missing.pal")); err == nil {
		t.Errorf("loading a missing palette succeeded")
	}
	pal, err := loadPalette("")
	if err != nil || pal.Len() != 256 {
		t.Errorf("default palette: %v, %v", pal, err)
	}
}
