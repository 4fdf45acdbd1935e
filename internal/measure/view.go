// Package measure implements the measurement core: the image/canvas
// coordinate transform, calibration, recorded measurements, and the
// two-click gesture state machine. All coordinates stored by this package
// are in image space; conversion from canvas space happens on the way in.
package measure

import (
	"math"

	"measuremate/pkg/geometry"
)

// Zoom bounds and step defaults, overridable through preferences.
const (
	DefaultMinZoom = 0.1
	DefaultMaxZoom = 10.0
	ZoomStep       = 1.25
)

// View holds the live mapping between image space and canvas space.
// The effective scale is BaseScale (fit-to-canvas) times the user zoom.
type View struct {
	BaseScale float64
	Zoom      float64
	Pan       geometry.Point2D

	minZoom float64
	maxZoom float64
}

// NewView creates a view at zoom 1.0 with default zoom bounds and no base
// scale. Transforms fail until a base scale is established via Fit or
// SetBaseScale.
func NewView() *View {
	return &View{
		Zoom:    1.0,
		minZoom: DefaultMinZoom,
		maxZoom: DefaultMaxZoom,
	}
}

// SetZoomBounds configures the allowed zoom range. Nonsensical bounds fall
// back to the defaults. The current zoom is re-clamped against the new range.
func (v *View) SetZoomBounds(min, max float64) {
	if min <= 0 || max <= min {
		min = DefaultMinZoom
		max = DefaultMaxZoom
	}
	v.minZoom = min
	v.maxZoom = max
	v.SetZoom(v.Zoom)
}

// ZoomBounds returns the configured zoom range.
func (v *View) ZoomBounds() (min, max float64) {
	return v.minZoom, v.maxZoom
}

// SetZoom sets the zoom factor, silently clamping to the configured range.
func (v *View) SetZoom(zoom float64) {
	if zoom < v.minZoom {
		zoom = v.minZoom
	}
	if zoom > v.maxZoom {
		zoom = v.maxZoom
	}
	v.Zoom = zoom
}

// ZoomIn increases the zoom by one step.
func (v *View) ZoomIn() {
	v.SetZoom(v.Zoom * ZoomStep)
}

// ZoomOut decreases the zoom by one step.
func (v *View) ZoomOut() {
	v.SetZoom(v.Zoom / ZoomStep)
}

// ResetZoom restores zoom 1.0.
func (v *View) ResetZoom() {
	v.SetZoom(1.0)
}

// SetBaseScale sets the fit-to-canvas scale directly.
func (v *View) SetBaseScale(scale float64) {
	v.BaseScale = scale
}

// Fit computes the base scale so an image of the given size fits the canvas:
// min(canvasW/imageW, canvasH/imageH).
func (v *View) Fit(canvasSize, imageSize geometry.Size) error {
	if imageSize.Width <= 0 || imageSize.Height <= 0 {
		return &InvalidStateError{Reason: "image has no size"}
	}
	if canvasSize.Width <= 0 || canvasSize.Height <= 0 {
		return &InvalidStateError{Reason: "canvas has no size"}
	}
	v.BaseScale = math.Min(canvasSize.Width/imageSize.Width, canvasSize.Height/imageSize.Height)
	return nil
}

// EffectiveScale is the live multiplier between image space and canvas space.
func (v *View) EffectiveScale() float64 {
	return v.BaseScale * v.Zoom
}

// ToImage converts a canvas-space point to image space:
// (canvas - pan) / (baseScale * zoom). Fails until a base scale exists.
func (v *View) ToImage(canvas geometry.Point2D) (geometry.Point2D, error) {
	scale := v.EffectiveScale()
	if scale <= 0 {
		return geometry.Point2D{}, &InvalidStateError{Reason: "no image loaded"}
	}
	return canvas.Sub(v.Pan).Scale(1 / scale), nil
}

// ToCanvas converts an image-space point to canvas space, the inverse of
// ToImage.
func (v *View) ToCanvas(img geometry.Point2D) (geometry.Point2D, error) {
	scale := v.EffectiveScale()
	if scale <= 0 {
		return geometry.Point2D{}, &InvalidStateError{Reason: "no image loaded"}
	}
	return img.Scale(scale).Add(v.Pan), nil
}
