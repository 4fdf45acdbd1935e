package measure

import (
	"errors"
	"math"
	"testing"

	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

func testCalibration(t *testing.T) *Calibration {
	t.Helper()
	cal, err := Calibrate(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(100, 0), 10, units.Meter)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	return cal
}

func TestLogRecordWithoutCalibration(t *testing.T) {
	l := NewLog()

	_, err := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), nil, units.Meter)
	var preErr *PreconditionError
	if !errors.As(err, &preErr) {
		t.Errorf("expected PreconditionError, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("log changed on failed record: len %d", l.Len())
	}
}

func TestLogOrderingAndIDs(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)

	for i := 1; i <= 3; i++ {
		m, err := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(float64(i*10), 0), cal, units.Meter)
		if err != nil {
			t.Fatalf("Record %d: %v", i, err)
		}
		if m.ID != i {
			t.Errorf("ID = %d, want %d", m.ID, i)
		}
	}

	items := l.Items()
	for i, m := range items {
		want := float64((i + 1) * 10)
		if m.PixelDistance != want {
			t.Errorf("item %d pixel distance = %v, want %v (insertion order broken)", i, m.PixelDistance, want)
		}
	}
}

func TestLogUndoProperty(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	for i := 0; i < n; i++ {
		if m := l.RemoveLast(); m == nil {
			t.Fatalf("RemoveLast %d returned nil on non-empty log", i)
		}
	}
	if l.Len() != 0 {
		t.Errorf("log not empty after %d removals: len %d", n, l.Len())
	}

	// The (n+1)th call is a no-op.
	if m := l.RemoveLast(); m != nil {
		t.Errorf("RemoveLast on empty log returned %v", m)
	}
}

func TestLogRemoveLastIsMostRecent(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)

	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)
	second, _ := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(20, 0), cal, units.Meter)

	removed := l.RemoveLast()
	if removed == nil || removed.ID != second.ID {
		t.Errorf("RemoveLast removed %v, want ID %d", removed, second.ID)
	}
}

func TestLogRemoveByID(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)

	a, _ := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)
	b, _ := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(20, 0), cal, units.Meter)

	if !l.RemoveByID(a.ID) {
		t.Error("RemoveByID failed for existing ID")
	}
	if l.Len() != 1 || l.Items()[0].ID != b.ID {
		t.Error("wrong measurement removed")
	}

	// Missing ID is a no-op, not an error.
	if l.RemoveByID(999) {
		t.Error("RemoveByID reported success for missing ID")
	}
	if l.Len() != 1 {
		t.Error("log changed by no-op removal")
	}
}

func TestLogTotal(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t) // 10 px per meter

	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)
	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(0, 25), cal, units.Meter)

	total, err := l.Total(units.Meter, cal)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if math.Abs(total-3.5) > 1e-9 {
		t.Errorf("total = %v meters, want 3.5", total)
	}

	// Same log totalled in centimeters.
	total, err = l.Total(units.Centimeter, cal)
	if err != nil {
		t.Fatalf("Total: %v", err)
	}
	if math.Abs(total-350) > 1e-9 {
		t.Errorf("total = %v cm, want 350", total)
	}
}

func TestLogTotalWithoutCalibration(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)
	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)

	_, err := l.Total(units.Meter, nil)
	var preErr *PreconditionError
	if !errors.As(err, &preErr) {
		t.Errorf("expected PreconditionError, got %v", err)
	}
}

func TestLogAppendContinuesIDs(t *testing.T) {
	l := NewLog()
	l.Append(&Measurement{ID: 7, PixelDistance: 10})

	cal := testCalibration(t)
	m, err := l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if m.ID != 8 {
		t.Errorf("ID after restore = %d, want 8", m.ID)
	}
}

func TestLogClear(t *testing.T) {
	l := NewLog()
	cal := testCalibration(t)
	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(10, 0), cal, units.Meter)
	l.Record(geometry.NewPoint2D(0, 0), geometry.NewPoint2D(20, 0), cal, units.Meter)

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("log not empty after Clear: len %d", l.Len())
	}
}
