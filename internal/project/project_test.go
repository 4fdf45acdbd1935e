package project

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"measuremate/internal/measure"
	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func buildSession(t *testing.T) *measure.Session {
	t.Helper()
	s := measure.NewSession()
	pair := measure.PointPair{Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 0)}
	if err := s.CompleteCalibration(pair, 10, units.Foot); err != nil {
		t.Fatalf("CompleteCalibration: %v", err)
	}
	s.DisplayUnit = units.Inch
	if _, err := s.RecordMeasurement(measure.PointPair{
		Start: geometry.NewPoint2D(0, 0),
		End:   geometry.NewPoint2D(50, 0),
	}); err != nil {
		t.Fatalf("RecordMeasurement: %v", err)
	}
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := buildSession(t)

	f := FromSession("kitchen plan", s)
	path := filepath.Join(t.TempDir(), "kitchen"+Extension)
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "kitchen plan" {
		t.Errorf("Name = %q", loaded.Name)
	}
	if loaded.DisplayUnit != units.Inch {
		t.Errorf("DisplayUnit = %v, want inches", loaded.DisplayUnit)
	}

	restored := loaded.Restore()
	if !restored.Calibrated() {
		t.Fatal("restored session lost calibration")
	}
	if restored.Mode != measure.ModeMeasure {
		t.Errorf("restored mode = %v, want measure", restored.Mode)
	}
	if restored.Log.Len() != 1 {
		t.Fatalf("restored log length = %d, want 1", restored.Log.Len())
	}

	m := restored.Log.Items()[0]
	val, err := m.Value(restored.Calibration, units.Foot)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if math.Abs(val-5) > 1e-9 {
		t.Errorf("restored measurement = %v feet, want 5", val)
	}
}

func TestRestoreUncalibrated(t *testing.T) {
	f := New("empty")
	s := f.Restore()
	if s.Calibrated() {
		t.Error("empty session restored a calibration")
	}
	if s.Mode != measure.ModeCalibrate {
		t.Errorf("mode = %v, want calibrate", s.Mode)
	}
}

func TestImagePathRelative(t *testing.T) {
	dir := t.TempDir()
	sessionPath := filepath.Join(dir, "plan"+Extension)
	imagePath := filepath.Join(dir, "images", "floor.png")

	f := New("plan")
	f.SetImagePath(sessionPath, imagePath)

	if filepath.IsAbs(f.ImagePath) {
		t.Errorf("ImagePath should be relative, got %q", f.ImagePath)
	}
	if got := f.GetImagePath(sessionPath); got != imagePath {
		t.Errorf("GetImagePath = %q, want %q", got, imagePath)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+Extension)
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed JSON")
	}
}
