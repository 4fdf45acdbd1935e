package measure

import (
	"testing"

	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func TestGesturePhases(t *testing.T) {
	var g Gesture
	if g.Phase() != Idle {
		t.Errorf("zero gesture phase = %v, want Idle", g.Phase())
	}

	g.Begin()
	if g.Phase() != AwaitingFirstPoint {
		t.Errorf("phase after Begin = %v, want AwaitingFirstPoint", g.Phase())
	}

	g.Add(geometry.NewPoint2D(1, 1), false)
	if g.Phase() != AwaitingSecondPoint {
		t.Errorf("phase after first point = %v, want AwaitingSecondPoint", g.Phase())
	}

	pair, complete := g.Add(geometry.NewPoint2D(4, 5), false)
	if !complete {
		t.Fatal("gesture did not complete on second point")
	}
	if pair.Start != geometry.NewPoint2D(1, 1) || pair.End != geometry.NewPoint2D(4, 5) {
		t.Errorf("pair = %+v", pair)
	}
	if g.Phase() != Idle {
		t.Errorf("phase after completion = %v, want Idle", g.Phase())
	}
}

func TestGestureIgnoresClicksWhenIdle(t *testing.T) {
	var g Gesture
	_, complete := g.Add(geometry.NewPoint2D(1, 1), false)
	if complete {
		t.Error("idle gesture completed")
	}
	if g.Phase() != Idle {
		t.Errorf("idle gesture changed phase to %v", g.Phase())
	}
}

func TestGestureCancel(t *testing.T) {
	var g Gesture
	g.Begin()
	g.Add(geometry.NewPoint2D(1, 1), false)

	g.Cancel()
	if g.Phase() != Idle {
		t.Errorf("phase after Cancel = %v, want Idle", g.Phase())
	}
	if _, ok := g.FirstPoint(); ok {
		t.Error("cancelled gesture still reports a first point")
	}
}

func TestGestureBeginDiscardsInProgress(t *testing.T) {
	var g Gesture
	g.Begin()
	g.Add(geometry.NewPoint2D(9, 9), false)

	g.Begin()
	g.Add(geometry.NewPoint2D(1, 1), false)
	pair, complete := g.Add(geometry.NewPoint2D(2, 2), false)
	if !complete {
		t.Fatal("gesture did not complete")
	}
	if pair.Start != geometry.NewPoint2D(1, 1) {
		t.Errorf("stale first point survived Begin: %+v", pair)
	}
}

func TestGestureSnapOnSecondPoint(t *testing.T) {
	var g Gesture
	g.Begin()
	g.Add(geometry.NewPoint2D(0, 0), true) // snap flag on first point is ignored

	pair, complete := g.Add(geometry.NewPoint2D(10, 3), true)
	if !complete {
		t.Fatal("gesture did not complete")
	}
	if pair.End != geometry.NewPoint2D(10, 0) {
		t.Errorf("snapped end = %v, want (10, 0)", pair.End)
	}
}

func TestSessionSnapDuringCalibration(t *testing.T) {
	// Axis snap applies to the second click of any gesture, including the
	// calibration reference line.
	s := NewSession()
	if s.Mode != ModeCalibrate {
		t.Fatalf("new session mode = %v, want calibrate", s.Mode)
	}

	s.AddPoint(geometry.NewPoint2D(0, 0), true)
	pair, complete := s.AddPoint(geometry.NewPoint2D(80, 30), true)
	if !complete {
		t.Fatal("gesture did not complete")
	}
	if pair.End != geometry.NewPoint2D(80, 0) {
		t.Errorf("snapped reference end = %v, want (80, 0)", pair.End)
	}

	if err := s.CompleteCalibration(pair, 4, units.Meter); err != nil {
		t.Fatalf("CompleteCalibration: %v", err)
	}
	if got := s.Calibration.PixelsPerUnit; got != 20 {
		t.Errorf("PixelsPerUnit = %g, want 20", got)
	}
}

func TestSessionCancelLeavesNoPartialState(t *testing.T) {
	s := NewSession()
	s.AddPoint(geometry.NewPoint2D(5, 5), false)
	s.CancelGesture()

	if s.Calibrated() {
		t.Error("cancelled calibration gesture produced a calibration")
	}
	if s.Log.Len() != 0 {
		t.Error("cancelled gesture produced a measurement")
	}
	// The gesture is re-armed for the next click.
	if s.GesturePhase() != AwaitingFirstPoint {
		t.Errorf("phase after cancel = %v, want AwaitingFirstPoint", s.GesturePhase())
	}
}

func TestSessionResetCalibrationKeepsMeasurements(t *testing.T) {
	s := NewSession()
	pair := PointPair{Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(100, 0)}
	if err := s.CompleteCalibration(pair, 10, units.Meter); err != nil {
		t.Fatalf("CompleteCalibration: %v", err)
	}
	if _, err := s.RecordMeasurement(PointPair{Start: geometry.NewPoint2D(0, 0), End: geometry.NewPoint2D(50, 0)}); err != nil {
		t.Fatalf("RecordMeasurement: %v", err)
	}

	s.ResetCalibration()

	if s.Calibrated() {
		t.Error("calibration survived reset")
	}
	if s.Mode != ModeCalibrate {
		t.Errorf("mode after reset = %v, want calibrate", s.Mode)
	}
	// Measurements remain, but are undisplayable until recalibration.
	if s.Log.Len() != 1 {
		t.Errorf("log length after reset = %d, want 1", s.Log.Len())
	}
	if _, err := s.Total(); err == nil {
		t.Error("Total should fail without a calibration")
	}
}

func TestSessionFailedCalibrationChangesNothing(t *testing.T) {
	s := NewSession()
	pair := PointPair{Start: geometry.NewPoint2D(3, 3), End: geometry.NewPoint2D(3, 3)}

	if err := s.CompleteCalibration(pair, 10, units.Meter); err == nil {
		t.Fatal("expected error for degenerate reference line")
	}
	if s.Calibrated() {
		t.Error("failed calibration left state behind")
	}
	if s.Mode != ModeCalibrate {
		t.Errorf("mode changed on failure: %v", s.Mode)
	}
}
