// Package canvas provides overlay types for the image canvas.
package canvas

import (
	"image/color"

	"measuremate/pkg/geometry"
)

// Line represents one calibration or measurement line to draw over the
// image. Coordinates are in image space; the canvas scales them by the
// effective scale when drawing.
type Line struct {
	ID         int
	Start      geometry.Point2D
	End        geometry.Point2D
	Color      color.RGBA
	PointColor color.RGBA
	TextColor  color.RGBA
	Width      int
	Label      string // optional label drawn at the midpoint
}

// Style holds the parsed visual settings the canvas draws with. Built by
// the main window from the application settings.
type Style struct {
	Background color.RGBA

	ShowLabels   bool
	LabelBG      bool
	LabelBGColor color.RGBA
	PointSize    int

	GridEnabled bool
	GridColor   color.RGBA
	GridSpacing int // image pixels between grid lines

	ShowCrosshair  bool
	CrosshairColor color.RGBA

	ShowRulers   bool
	RulerColor   color.RGBA
	RulerBGColor color.RGBA
}

// DefaultStyle matches the stock application settings.
func DefaultStyle() Style {
	return Style{
		Background:     color.RGBA{R: 128, G: 128, B: 128, A: 255},
		ShowLabels:     true,
		LabelBG:        true,
		LabelBGColor:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		PointSize:      4,
		GridEnabled:    false,
		GridColor:      color.RGBA{R: 204, G: 204, B: 204, A: 255},
		GridSpacing:    50,
		ShowCrosshair:  true,
		CrosshairColor: color.RGBA{R: 0, G: 255, B: 0, A: 255},
		ShowRulers:     true,
		RulerColor:     color.RGBA{R: 0, G: 0, B: 0, A: 255},
		RulerBGColor:   color.RGBA{R: 224, G: 224, B: 224, A: 255},
	}
}
