package measure

import (
	"errors"
	"math"
	"testing"

	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func TestMeasurementValue(t *testing.T) {
	cal, err := Calibrate(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0), 10, units.Foot)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	m := &Measurement{Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(50, 0), PixelDistance: 50}

	got, err := m.Value(cal, units.Foot)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("Value = %v feet, want 5", got)
	}

	// Same measurement displayed in inches.
	got, err = m.Value(cal, units.Inch)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("Value = %v inches, want 60", got)
	}
}

func TestMeasurementValueWithoutCalibration(t *testing.T) {
	m := &Measurement{PixelDistance: 50}

	_, err := m.Value(nil, units.Meter)
	var preErr *PreconditionError
	if !errors.As(err, &preErr) {
		t.Errorf("expected PreconditionError, got %v", err)
	}
}

func TestValueIndependentOfZoom(t *testing.T) {
	// Measuring the same two image points at zoom 1.0 and zoom 5.0 yields
	// identical results: the stored points are image-space, and the view
	// transform cancels out exactly.
	cal, err := Calibrate(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(80, 0), 8, units.Meter)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	v := NewView()
	v.SetBaseScale(0.5)

	imageStart := geometry.NewPoint2D(12, 34)
	imageEnd := geometry.NewPoint2D(92, 34)

	var results []float64
	for _, zoom := range []float64{1.0, 5.0} {
		v.SetZoom(zoom)

		canvasStart, _ := v.ToCanvas(imageStart)
		canvasEnd, _ := v.ToCanvas(imageEnd)
		p1, _ := v.ToImage(canvasStart)
		p2, _ := v.ToImage(canvasEnd)

		m := &Measurement{Start: p1, End: p2, PixelDistance: p1.Distance(p2)}
		val, err := m.Value(cal, units.Meter)
		if err != nil {
			t.Fatalf("Value at zoom %v: %v", zoom, err)
		}
		results = append(results, val)
	}

	if math.Abs(results[0]-results[1]) > 1e-9 {
		t.Errorf("value varies with zoom: %v vs %v", results[0], results[1])
	}
	if math.Abs(results[0]-8) > 1e-9 {
		t.Errorf("value = %v meters, want 8", results[0])
	}
}

func TestSnapToAxisHorizontal(t *testing.T) {
	// Raw second click (10, 3): the smaller delta (y) is zeroed.
	snapped := SnapToAxis(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 3))
	if snapped != geometry.NewPoint2D(10, 0) {
		t.Errorf("snap = %v, want (10, 0)", snapped)
	}

	start := geometry.NewPoint2D(0, 0)
	dist := start.Distance(snapped)
	if math.Abs(dist-10) > 1e-12 {
		t.Errorf("snapped pixel distance = %v, want 10", dist)
	}
}

func TestSnapToAxisVertical(t *testing.T) {
	snapped := SnapToAxis(geometry.NewPoint2D(5, 5), geometry.NewPoint2D(7, 25))
	if snapped != geometry.NewPoint2D(5, 25) {
		t.Errorf("snap = %v, want (5, 25)", snapped)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Image 1000px wide fits a 500px canvas: base scale 0.5. Calibrate
	// (0,0)-(100,0) as 10 feet, measure (0,0)-(50,0): 5 feet, 60 inches.
	s := NewSession()
	if err := s.View.Fit(geometry.NewSize(500, 500), geometry.NewSize(1000, 1000)); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if s.View.BaseScale != 0.5 {
		t.Fatalf("BaseScale = %v, want 0.5", s.View.BaseScale)
	}

	_, complete := s.AddPoint(geometry.NewPoint2D(0, 0), false)
	if complete {
		t.Fatal("gesture completed after one point")
	}
	pair, complete := s.AddPoint(geometry.NewPoint2D(100, 0), false)
	if !complete {
		t.Fatal("gesture did not complete after two points")
	}
	if err := s.CompleteCalibration(pair, 10, units.Foot); err != nil {
		t.Fatalf("CompleteCalibration: %v", err)
	}
	if s.Calibration.PixelsPerUnit != 10 {
		t.Errorf("PixelsPerUnit = %v, want 10", s.Calibration.PixelsPerUnit)
	}
	if s.Mode != ModeMeasure {
		t.Errorf("mode after calibration = %v, want measure", s.Mode)
	}

	s.AddPoint(geometry.NewPoint2D(0, 0), false)
	pair, complete = s.AddPoint(geometry.NewPoint2D(50, 0), false)
	if !complete {
		t.Fatal("measurement gesture did not complete")
	}
	m, err := s.RecordMeasurement(pair)
	if err != nil {
		t.Fatalf("RecordMeasurement: %v", err)
	}
	if m.PixelDistance != 50 {
		t.Errorf("PixelDistance = %v, want 50", m.PixelDistance)
	}

	feet, err := m.Value(s.Calibration, units.Foot)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if math.Abs(feet-5) > 1e-9 {
		t.Errorf("value = %v feet, want 5", feet)
	}

	inches, err := m.Value(s.Calibration, units.Inch)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if math.Abs(inches-60) > 1e-9 {
		t.Errorf("value = %v inches, want 60", inches)
	}
}
