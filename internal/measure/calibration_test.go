package measure

import (
	"errors"
	"math"
	"testing"

	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func TestCalibrateDeterminism(t *testing.T) {
	p1 := geometry.NewPoint2D(0, 0)
	p2 := geometry.NewPoint2D(100, 0)

	cal, err := Calibrate(p1, p2, 10, units.Foot)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	if math.Abs(cal.PixelsPerUnit-10) > 1e-12 {
		t.Errorf("PixelsPerUnit = %v, want 10", cal.PixelsPerUnit)
	}
	if cal.DeclaredUnit != units.Foot {
		t.Errorf("DeclaredUnit = %v, want feet", cal.DeclaredUnit)
	}
}

func TestCalibrateDiagonal(t *testing.T) {
	cal, err := Calibrate(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(30, 40), 25, units.Meter)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if math.Abs(cal.PixelsPerUnit-2) > 1e-12 {
		t.Errorf("PixelsPerUnit = %v, want 2", cal.PixelsPerUnit)
	}
}

func TestCalibrateRejectsNonPositiveDistance(t *testing.T) {
	p1 := geometry.NewPoint2D(0, 0)
	p2 := geometry.NewPoint2D(100, 0)

	for _, d := range []float64{0, -5} {
		_, err := Calibrate(p1, p2, d, units.Meter)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("distance %v: expected ValidationError, got %v", d, err)
		}
	}
}

func TestCalibrateRejectsCoincidentPoints(t *testing.T) {
	p := geometry.NewPoint2D(42, 42)

	_, err := Calibrate(p, p, 5, units.Meter)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for zero-length reference, got %v", err)
	}
}

func TestCalibrationIndependentOfZoom(t *testing.T) {
	// The calibration is built from image-space points, so the view zoom at
	// calibration time is irrelevant. Simulate the same physical reference
	// line clicked at two different zooms: the un-zoomed points are equal,
	// so the calibration is equal.
	v := NewView()
	v.SetBaseScale(1.0)

	imagePts := [2]geometry.Point2D{
		geometry.NewPoint2D(10, 10),
		geometry.NewPoint2D(110, 10),
	}

	var ratios []float64
	for _, zoom := range []float64{1.0, 5.0} {
		v.SetZoom(zoom)

		c1, _ := v.ToCanvas(imagePts[0])
		c2, _ := v.ToCanvas(imagePts[1])
		p1, _ := v.ToImage(c1)
		p2, _ := v.ToImage(c2)

		cal, err := Calibrate(p1, p2, 4, units.Meter)
		if err != nil {
			t.Fatalf("Calibrate at zoom %v: %v", zoom, err)
		}
		ratios = append(ratios, cal.PixelsPerUnit)
	}

	if math.Abs(ratios[0]-ratios[1]) > 1e-9 {
		t.Errorf("PixelsPerUnit varies with zoom: %v vs %v", ratios[0], ratios[1])
	}
	if math.Abs(ratios[0]-25) > 1e-9 {
		t.Errorf("PixelsPerUnit = %v, want 25", ratios[0])
	}
}
