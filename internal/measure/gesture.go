package measure

import (
	"measuremate/pkg/geometry"
)

// Phase is the state of a two-click gesture.
type Phase int

const (
	Idle Phase = iota
	AwaitingFirstPoint
	AwaitingSecondPoint
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstPoint:
		return "awaiting first point"
	case AwaitingSecondPoint:
		return "awaiting second point"
	default:
		return "idle"
	}
}

// PointPair is the completed result of a two-click gesture, in image space.
type PointPair struct {
	Start geometry.Point2D
	End   geometry.Point2D
}

// Gesture tracks one in-progress two-click line. Both calibration and
// measurement use the same machine; only what happens on completion differs.
type Gesture struct {
	phase Phase
	first geometry.Point2D
}

// Phase returns the current gesture phase.
func (g *Gesture) Phase() Phase {
	return g.phase
}

// Begin starts a new gesture, discarding any in-progress one.
func (g *Gesture) Begin() {
	g.phase = AwaitingFirstPoint
	g.first = geometry.Point2D{}
}

// Cancel abandons the gesture with no partial side effects.
func (g *Gesture) Cancel() {
	g.phase = Idle
	g.first = geometry.Point2D{}
}

// FirstPoint returns the anchor point once it has been placed.
func (g *Gesture) FirstPoint() (geometry.Point2D, bool) {
	if g.phase != AwaitingSecondPoint {
		return geometry.Point2D{}, false
	}
	return g.first, true
}

// Add feeds one image-space click into the gesture. With snap set, the
// second point is axis-snapped relative to the first before completion.
// Returns the completed pair and true when the second point lands; the
// gesture then resets to Idle.
func (g *Gesture) Add(p geometry.Point2D, snap bool) (PointPair, bool) {
	switch g.phase {
	case AwaitingFirstPoint:
		g.first = p
		g.phase = AwaitingSecondPoint
		return PointPair{}, false
	case AwaitingSecondPoint:
		if snap {
			p = SnapToAxis(g.first, p)
		}
		pair := PointPair{Start: g.first, End: p}
		g.Cancel()
		return pair, true
	default:
		return PointPair{}, false
	}
}
