package measure

import (
	"measuremate/internal/units"
	"measuremate/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

// Log is the ordered collection of completed measurements. Insertion order
// is preserved and doubles as the undo order.
type Log struct {
	items  []*Measurement
	nextID int
}

// NewLog creates an empty measurement log.
func NewLog() *Log {
	return &Log{nextID: 1}
}

// Record validates against the calibration, builds a measurement from two
// image-space points, and appends it. On failure the log is unchanged.
func (l *Log) Record(p1, p2 geometry.Point2D, cal *Calibration, display units.Unit) (*Measurement, error) {
	if cal == nil {
		return nil, &PreconditionError{Reason: "no active calibration"}
	}

	m := &Measurement{
		ID:            l.nextID,
		Start:         p1,
		End:           p2,
		PixelDistance: p1.Distance(p2),
		DisplayUnit:   display,
	}
	l.nextID++
	l.items = append(l.items, m)
	return m, nil
}

// Append adds an already-built measurement, used when restoring a session
// file. IDs continue past the largest restored ID.
func (l *Log) Append(m *Measurement) {
	if m.ID >= l.nextID {
		l.nextID = m.ID + 1
	}
	l.items = append(l.items, m)
}

// RemoveLast removes and returns the most recently appended measurement.
// A no-op returning nil on an empty log, matching forgiving undo behavior.
func (l *Log) RemoveLast() *Measurement {
	if len(l.items) == 0 {
		return nil
	}
	m := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return m
}

// RemoveByID removes the measurement with the given ID. A no-op returning
// false when no such measurement exists.
func (l *Log) RemoveByID(id int) bool {
	for i, m := range l.items {
		if m.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes all measurements.
func (l *Log) Clear() {
	l.items = nil
}

// Len returns the number of measurements.
func (l *Log) Len() int {
	return len(l.items)
}

// Items returns the measurements in insertion order. The slice is shared;
// callers must not reorder it.
func (l *Log) Items() []*Measurement {
	return l.items
}

// ByID returns the measurement with the given ID, or nil.
func (l *Log) ByID(id int) *Measurement {
	for _, m := range l.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Values converts every measurement to the display unit. Fails when no
// calibration is active.
func (l *Log) Values(display units.Unit, cal *Calibration) ([]float64, error) {
	if cal == nil {
		return nil, &PreconditionError{Reason: "no active calibration"}
	}
	vals := make([]float64, len(l.items))
	for i, m := range l.items {
		v, err := m.Value(cal, display)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

// Total returns the sum of all measurements in the display unit.
func (l *Log) Total(display units.Unit, cal *Calibration) (float64, error) {
	vals, err := l.Values(display, cal)
	if err != nil {
		return 0, err
	}
	return floats.Sum(vals), nil
}
