package export

import (
	"image"
	"testing"

	"measuremate/internal/measure"
)

func TestRenderSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	s := testSession(t)

	opts := DefaultOptions()
	opts.Scale = 0.5

	out, err := Render(src, s, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 50 {
		t.Errorf("output size = %dx%d, want 100x50", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderAtViewScale(t *testing.T) {
	// Exports render at the view's effective scale so the file matches
	// what is on screen, not the 1:1 image.
	src := image.NewRGBA(image.Rect(0, 0, 200, 100))
	s := testSession(t)
	s.View.SetZoom(2)

	opts := DefaultOptions()
	opts.Scale = s.View.EffectiveScale()

	out, err := Render(src, s, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	bounds := out.Bounds()
	if bounds.Dx() != 400 || bounds.Dy() != 200 {
		t.Errorf("output size = %dx%d, want 400x200", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderNilImage(t *testing.T) {
	s := measure.NewSession()
	if _, err := Render(nil, s, DefaultOptions()); err == nil {
		t.Error("Render should fail without an image")
	}
}

func TestRenderUncalibratedSkipsLabels(t *testing.T) {
	// Without a calibration the geometry must still render; labels and
	// rulers are silently skipped rather than erroring.
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))
	s := measure.NewSession()

	opts := DefaultOptions()
	opts.ShowRulers = true

	if _, err := Render(src, s, opts); err != nil {
		t.Errorf("Render of uncalibrated session failed: %v", err)
	}
}
