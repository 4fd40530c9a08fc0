package page

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 6))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t)
	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", img.Bounds())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/page.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCacheReturnsSameImage(t *testing.T) {
	path := writeTestPNG(t)
	c := NewCache()

	first, err := c.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// A second load must come from the cache even after the file is
	// gone.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := c.Load(path)
	if err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if first != second {
		t.Error("cache returned a different image instance")
	}

	c.Evict(path)
	if _, err := c.Load(path); err == nil {
		t.Error("expected error after eviction with file removed")
	}
}
