package measure

import (
	"measuremate/internal/units"
	"measuremate/pkg/geometry"
)

// Calibration is the pixel-to-unit scale derived from a user-drawn
// reference line of known real-world length. Both reference points are in
// image space, so PixelsPerUnit is independent of the zoom held when the
// line was drawn.
type Calibration struct {
	ReferenceStart   geometry.Point2D `json:"reference_start"`
	ReferenceEnd     geometry.Point2D `json:"reference_end"`
	DeclaredDistance float64          `json:"declared_distance"`
	DeclaredUnit     units.Unit       `json:"declared_unit"`
	PixelsPerUnit    float64          `json:"pixels_per_unit"`
}

// Calibrate computes a calibration from two image-space reference points and
// a declared distance. Rejects non-positive distances and coincident points.
func Calibrate(p1, p2 geometry.Point2D, distance float64, unit units.Unit) (*Calibration, error) {
	if distance <= 0 {
		return nil, &ValidationError{Reason: "reference distance must be positive"}
	}

	pixels := p1.Distance(p2)
	if pixels == 0 {
		return nil, &ValidationError{Reason: "reference points must be distinct"}
	}

	return &Calibration{
		ReferenceStart:   p1,
		ReferenceEnd:     p2,
		DeclaredDistance: distance,
		DeclaredUnit:     unit,
		PixelsPerUnit:    pixels / distance,
	}, nil
}
