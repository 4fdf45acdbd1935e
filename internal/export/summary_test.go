package export

import (
	"errors"
	"math"
	"testing"

	"measuremate/internal/measure"
	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func calibratedLog(t *testing.T, pixelDistances ...float64) (*measure.Log, *measure.Calibration) {
	t.Helper()
	cal, err := measure.Calibrate(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0), 10, units.Meter)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}

	log := measure.NewLog()
	for _, d := range pixelDistances {
		if _, err := log.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(d, 0), cal, units.Meter); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	return log, cal
}

func TestSummarize(t *testing.T) {
	// 10 px/m: pixel distances 10, 20, 30 are 1, 2, 3 meters.
	log, cal := calibratedLog(t, 10, 20, 30)

	s, err := Summarize(log, cal, units.Meter)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if math.Abs(s.Total-6) > 1e-9 {
		t.Errorf("Total = %v, want 6", s.Total)
	}
	if math.Abs(s.Mean-2) > 1e-9 {
		t.Errorf("Mean = %v, want 2", s.Mean)
	}
	if math.Abs(s.Min-1) > 1e-9 || math.Abs(s.Max-3) > 1e-9 {
		t.Errorf("Min/Max = %v/%v, want 1/3", s.Min, s.Max)
	}
}

func TestSummarizeInDisplayUnit(t *testing.T) {
	log, cal := calibratedLog(t, 10)

	s, err := Summarize(log, cal, units.Centimeter)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if math.Abs(s.Total-100) > 1e-9 {
		t.Errorf("Total = %v cm, want 100", s.Total)
	}
}

func TestSummarizeEmptyLog(t *testing.T) {
	log, cal := calibratedLog(t)

	s, err := Summarize(log, cal, units.Meter)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Count != 0 || s.Total != 0 {
		t.Errorf("empty log summary = %+v", s)
	}
}

func TestSummarizeWithoutCalibration(t *testing.T) {
	log, _ := calibratedLog(t, 10)

	_, err := Summarize(log, nil, units.Meter)
	var preErr *measure.PreconditionError
	if !errors.As(err, &preErr) {
		t.Errorf("expected PreconditionError, got %v", err)
	}
}
