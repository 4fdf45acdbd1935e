package measure

import (
	"math"

	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

// Style overrides the drawing of a single measurement. Colors are "#RRGGBB"
// strings matching the preferences format. A nil Style means the global
// defaults apply. Style never affects the computed value.
type Style struct {
	LineColor  string  `json:"line_color,omitempty"`
	PointColor string  `json:"point_color,omitempty"`
	TextColor  string  `json:"text_color,omitempty"`
	LineWidth  float64 `json:"line_width,omitempty"`
}

// Measurement is a completed two-click distance measurement. The endpoints
// and pixel distance are in image space and never change after creation;
// the displayed real-world value is derived at read time from the pixel
// distance and whatever calibration is active.
type Measurement struct {
	ID            int              `json:"id"`
	Start         geometry.Point2D `json:"start"`
	End           geometry.Point2D `json:"end"`
	PixelDistance float64          `json:"pixel_distance"`
	DisplayUnit   units.Unit       `json:"display_unit"`
	Style         *Style           `json:"style,omitempty"`
}

// Value converts the stored pixel distance to the requested display unit
// using the given calibration. Fails when no calibration is active.
func (m *Measurement) Value(cal *Calibration, display units.Unit) (float64, error) {
	if cal == nil {
		return 0, &PreconditionError{Reason: "no active calibration"}
	}
	inDeclared := m.PixelDistance / cal.PixelsPerUnit
	return units.Convert(inDeclared, cal.DeclaredUnit, display), nil
}

// SnapToAxis returns end adjusted so the line from start is perfectly
// horizontal or vertical, whichever is nearer: the smaller of the two
// deltas is zeroed. Applied before the pixel distance is computed, so a
// snapped click is indistinguishable from a genuinely aligned one.
func SnapToAxis(start, end geometry.Point2D) geometry.Point2D {
	dx := math.Abs(end.X - start.X)
	dy := math.Abs(end.Y - start.Y)

	if dx > dy {
		return geometry.Point2D{X: end.X, Y: start.Y}
	}
	return geometry.Point2D{X: start.X, Y: end.Y}
}
