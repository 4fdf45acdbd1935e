package measure

import (
	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

// Mode selects what a completed two-click gesture produces.
type Mode int

const (
	ModeCalibrate Mode = iota
	ModeMeasure
)

func (m Mode) String() string {
	if m == ModeMeasure {
		return "measure"
	}
	return "calibrate"
}

// Session owns all mutable measurement state for one loaded image: the
// view transform, the active calibration, the measurement log, the current
// mode, and the in-progress gesture. It is single-threaded by design; every
// mutation happens synchronously on the UI event loop.
type Session struct {
	View        *View
	Log         *Log
	Calibration *Calibration
	Mode        Mode
	DisplayUnit units.Unit

	gesture Gesture
}

// NewSession creates a session in calibration mode with meter display.
func NewSession() *Session {
	s := &Session{
		View:        NewView(),
		Log:         NewLog(),
		Mode:        ModeCalibrate,
		DisplayUnit: units.Meter,
	}
	s.gesture.Begin()
	return s
}

// Calibrated reports whether an active calibration exists.
func (s *Session) Calibrated() bool {
	return s.Calibration != nil
}

// GesturePhase returns the phase of the in-progress gesture.
func (s *Session) GesturePhase() Phase {
	return s.gesture.Phase()
}

// PendingPoint returns the anchor of a half-finished gesture, for drawing
// the preview line.
func (s *Session) PendingPoint() (geometry.Point2D, bool) {
	return s.gesture.FirstPoint()
}

// SetMode switches between calibration and measurement, discarding any
// half-finished gesture.
func (s *Session) SetMode(mode Mode) {
	s.Mode = mode
	s.gesture.Begin()
}

// CancelGesture abandons the in-progress gesture and re-arms it. No
// measurement or calibration is created from an incomplete gesture.
func (s *Session) CancelGesture() {
	s.gesture.Begin()
}

// AddPoint feeds one image-space click into the active gesture. The
// returned pair is only valid when complete is true; for calibration mode
// the caller follows up with CompleteCalibration once the user declares the
// reference distance.
func (s *Session) AddPoint(p geometry.Point2D, snap bool) (pair PointPair, complete bool) {
	pair, complete = s.gesture.Add(p, snap)
	if complete {
		// Re-arm so the next click starts a fresh line.
		s.gesture.Begin()
	}
	return pair, complete
}

// CompleteCalibration replaces the active calibration from a finished
// reference line and the declared distance, then switches to measurement
// mode. Prior state is unchanged on failure.
func (s *Session) CompleteCalibration(pair PointPair, distance float64, unit units.Unit) error {
	cal, err := Calibrate(pair.Start, pair.End, distance, unit)
	if err != nil {
		return err
	}
	s.Calibration = cal
	s.SetMode(ModeMeasure)
	return nil
}

// RecordMeasurement appends a measurement from a finished gesture. Fails
// with the log unchanged when no calibration is active.
func (s *Session) RecordMeasurement(pair PointPair) (*Measurement, error) {
	return s.Log.Record(pair.Start, pair.End, s.Calibration, s.DisplayUnit)
}

// ResetCalibration clears the calibration and any in-progress gesture,
// returning to calibration mode. Recorded measurements remain but cannot
// be displayed until recalibration.
func (s *Session) ResetCalibration() {
	s.Calibration = nil
	s.SetMode(ModeCalibrate)
}

// Total is the running sum of the log in the session display unit.
func (s *Session) Total() (float64, error) {
	return s.Log.Total(s.DisplayUnit, s.Calibration)
}
