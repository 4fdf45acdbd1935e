package image

import (
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := goimage.NewRGBA(goimage.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "plan.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode temp image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t, 40, 30)

	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if layer.Width() != 40 || layer.Height() != 30 {
		t.Errorf("size = %dx%d, want 40x30", layer.Width(), layer.Height())
	}
	if layer.Path != path {
		t.Errorf("Path = %q, want %q", layer.Path, path)
	}

	size := layer.Size()
	if size.Width != 40 || size.Height != 30 {
		t.Errorf("Size() = %v", size)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("Load should fail for missing file")
	}
}

func TestPixelAtOutOfBounds(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	layer, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c := layer.PixelAt(-1, 0); c != color.Black {
		t.Errorf("out-of-bounds pixel = %v, want black", c)
	}
	if c := layer.PixelAt(100, 100); c != color.Black {
		t.Errorf("out-of-bounds pixel = %v, want black", c)
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.tiff", "d.bmp"} {
		if !Supported(p) {
			t.Errorf("Supported(%q) = false", p)
		}
	}
	for _, p := range []string{"a.txt", "b.pdf", "c"} {
		if Supported(p) {
			t.Errorf("Supported(%q) = true", p)
		}
	}
}
