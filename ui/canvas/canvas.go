// Package canvas provides the blueprint image canvas with pan, zoom,
// and measurement overlays.
package canvas

import (
	"fmt"
	"image"

	mmimage "measuremate/internal/image"
	"measuremate/internal/measure"
	"measuremate/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ImageCanvas displays the loaded blueprint with measurement overlays.
// All overlay coordinates are in image space; the canvas scales them by
// the view's effective scale when drawing.
type ImageCanvas struct {
	widget.BaseWidget

	layer *mmimage.Layer
	view  *measure.View
	style Style

	// Overlays
	calibration  *Line
	measurements []Line

	// Ruler calibration: when set, edge rulers tick in declared units
	// instead of image pixels.
	rulerPPU  float64
	rulerUnit string

	// In-progress gesture preview
	anchor      *geometry.Point2D // first click, image coords
	previewLine *Line             // styled template for the preview

	// Pointer state
	pointerPos fyne.Position // content coords (scroll offset applied)
	pointerIn  bool
	snapActive bool

	// Display state
	raster *fynecanvas.Raster

	// Container
	scroll  *zoomScroll
	content *draggableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onLeftClick  func(x, y float64) // image coordinates
	onRightClick func(x, y float64) // image coordinates
	onMouseMove  func(x, y float64) // image coordinates
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// draggableContent wraps the raster to handle mouse events.
type draggableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	raster *fynecanvas.Raster
}

func newDraggableContent(ic *ImageCanvas, raster *fynecanvas.Raster) *draggableContent {
	dc := &draggableContent{
		canvas: ic,
		raster: raster,
	}
	dc.ExtendBaseWidget(dc)
	return dc
}

func (dc *draggableContent) CreateRenderer() fyne.WidgetRenderer {
	return &draggableContentRenderer{content: dc}
}

func (dc *draggableContent) MinSize() fyne.Size {
	return dc.raster.MinSize()
}

func (dc *draggableContent) Scrolled(ev *fyne.ScrollEvent) {
	// Use mouse wheel for zooming
	if ev.Scrolled.DY > 0 {
		dc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		dc.canvas.ZoomOut()
	}
}

// contentPos converts an event position to content coordinates by applying
// the scroll offset.
func (dc *draggableContent) contentPos(pos fyne.Position) fyne.Position {
	offset := dc.canvas.scroll.Offset()
	return fyne.Position{X: pos.X + offset.X, Y: pos.Y + offset.Y}
}

// Tapped handles left-click events.
func (dc *draggableContent) Tapped(ev *fyne.PointEvent) {
	if dc.canvas.onLeftClick == nil {
		return
	}

	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	pos := dc.contentPos(ev.Position)
	img, err := dc.canvas.toImage(pos)
	if err != nil {
		return
	}
	dc.canvas.onLeftClick(img.X, img.Y)
}

// TappedSecondary handles right-click events.
func (dc *draggableContent) TappedSecondary(ev *fyne.PointEvent) {
	if dc.canvas.onRightClick == nil {
		return
	}

	size := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}

	pos := dc.contentPos(ev.Position)
	img, err := dc.canvas.toImage(pos)
	if err != nil {
		return
	}
	dc.canvas.onRightClick(img.X, img.Y)
}

// MouseIn implements desktop.Hoverable.
func (dc *draggableContent) MouseIn(ev *desktop.MouseEvent) {
	dc.canvas.pointerIn = true
	dc.canvas.pointerPos = dc.contentPos(ev.Position)
	dc.canvas.Refresh()
}

// MouseMoved implements desktop.Hoverable. Tracks the pointer for the
// crosshair and the in-progress measurement preview.
func (dc *draggableContent) MouseMoved(ev *desktop.MouseEvent) {
	dc.canvas.pointerPos = dc.contentPos(ev.Position)
	dc.canvas.pointerIn = true

	if dc.canvas.onMouseMove != nil {
		if img, err := dc.canvas.toImage(dc.canvas.pointerPos); err == nil {
			dc.canvas.onMouseMove(img.X, img.Y)
		}
	}

	// Only redraw when something pointer-dependent is on screen.
	if dc.canvas.style.ShowCrosshair || dc.canvas.anchor != nil {
		dc.canvas.Refresh()
	}
}

// MouseOut implements desktop.Hoverable.
func (dc *draggableContent) MouseOut() {
	dc.canvas.pointerIn = false
	dc.canvas.Refresh()
}

type draggableContentRenderer struct {
	content *draggableContent
}

func (r *draggableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *draggableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *draggableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *draggableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *draggableContentRenderer) Destroy() {}

// NewImageCanvas creates a new image canvas bound to a view.
func NewImageCanvas(view *measure.View) *ImageCanvas {
	ic := &ImageCanvas{
		view:    view,
		style:   DefaultStyle(),
		imgSize: fyne.NewSize(400, 300),
	}

	// Create the raster for drawing
	ic.raster = fynecanvas.NewRaster(ic.draw)
	ic.raster.ScaleMode = fynecanvas.ImageScalePixels
	ic.raster.SetMinSize(ic.imgSize)

	// Wrap raster in draggable content for mouse events
	ic.content = newDraggableContent(ic, ic.raster)

	// Create zoomable scroll container (wheel = zoom)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// Container returns the canvas container for embedding in layouts.
func (ic *ImageCanvas) Container() fyne.CanvasObject {
	return ic.scroll
}

// SetView rebinds the canvas to a new view. Used when a session is replaced.
func (ic *ImageCanvas) SetView(view *measure.View) {
	ic.view = view
	ic.updateContentSize()
}

// SetLayer sets the blueprint to display. A nil layer clears the canvas.
func (ic *ImageCanvas) SetLayer(layer *mmimage.Layer) {
	ic.layer = layer
	ic.updateContentSize()
}

// Layer returns the current blueprint layer.
func (ic *ImageCanvas) Layer() *mmimage.Layer {
	return ic.layer
}

// SetStyle applies new visual settings and redraws.
func (ic *ImageCanvas) SetStyle(style Style) {
	ic.style = style
	ic.Refresh()
}

// SetCalibrationLine sets the calibration reference line overlay.
// A nil line removes it.
func (ic *ImageCanvas) SetCalibrationLine(line *Line) {
	ic.calibration = line
	ic.Refresh()
}

// SetRulerCalibration switches the edge rulers to real-unit ticks at the
// given image-pixel density. A zero density reverts to pixel ticks.
func (ic *ImageCanvas) SetRulerCalibration(pixelsPerUnit float64, unit string) {
	ic.rulerPPU = pixelsPerUnit
	ic.rulerUnit = unit
	ic.Refresh()
}

// SetMeasurements sets the measurement line overlays.
func (ic *ImageCanvas) SetMeasurements(lines []Line) {
	ic.measurements = lines
	ic.Refresh()
}

// SetAnchor sets the first click of an in-progress gesture. The canvas
// draws a dashed preview from the anchor to the pointer. template styles
// the preview; a nil point clears it.
func (ic *ImageCanvas) SetAnchor(p *geometry.Point2D, template *Line) {
	ic.anchor = p
	ic.previewLine = template
	ic.Refresh()
}

// SetSnapActive toggles the axis-lock indicator for the preview.
func (ic *ImageCanvas) SetSnapActive(active bool) {
	if ic.snapActive == active {
		return
	}
	ic.snapActive = active
	if ic.anchor != nil {
		ic.Refresh()
	}
}

// SetZoom sets the zoom level through the view.
func (ic *ImageCanvas) SetZoom(zoom float64) {
	if ic.view == nil {
		return
	}
	ic.view.SetZoom(zoom)
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(ic.view.Zoom)
	}
}

// Zoom returns the current zoom level.
func (ic *ImageCanvas) Zoom() float64 {
	if ic.view == nil {
		return 1.0
	}
	return ic.view.Zoom
}

// ZoomIn increases the zoom level by one step.
func (ic *ImageCanvas) ZoomIn() {
	if ic.view == nil {
		return
	}
	ic.SetZoom(ic.view.Zoom * measure.ZoomStep)
}

// ZoomOut decreases the zoom level by one step.
func (ic *ImageCanvas) ZoomOut() {
	if ic.view == nil {
		return
	}
	ic.SetZoom(ic.view.Zoom / measure.ZoomStep)
}

// ResetZoom restores 1:1 zoom.
func (ic *ImageCanvas) ResetZoom() {
	ic.SetZoom(1.0)
}

// FitToWindow recomputes the base scale so the image fills the viewport.
// The zoom factor on top of it is preserved.
func (ic *ImageCanvas) FitToWindow() {
	if ic.view == nil || ic.layer == nil || ic.layer.Image == nil {
		return
	}

	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	err := ic.view.Fit(
		geometry.Size{Width: float64(viewSize.Width), Height: float64(viewSize.Height)},
		ic.layer.Size(),
	)
	if err != nil {
		return
	}
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(ic.view.Zoom)
	}
}

// FitEnabled reports whether auto-fit on resize is active.
func (ic *ImageCanvas) FitEnabled() bool {
	return ic.fitToWindow
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

// CheckResize checks if the scroll container was resized and auto-fits if enabled.
func (ic *ImageCanvas) CheckResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnLeftClick sets a callback for left-click events.
// Coordinates are in image space.
func (ic *ImageCanvas) OnLeftClick(callback func(x, y float64)) {
	ic.onLeftClick = callback
}

// OnRightClick sets a callback for right-click events.
// Coordinates are in image space.
func (ic *ImageCanvas) OnRightClick(callback func(x, y float64)) {
	ic.onRightClick = callback
}

// OnMouseMove sets a callback for pointer movement.
// Coordinates are in image space.
func (ic *ImageCanvas) OnMouseMove(callback func(x, y float64)) {
	ic.onMouseMove = callback
}

// Refresh refreshes the canvas display.
func (ic *ImageCanvas) Refresh() {
	ic.raster.Refresh()
}

// scale returns the effective display scale, 1.0 when no view is bound.
func (ic *ImageCanvas) scale() float64 {
	if ic.view == nil {
		return 1.0
	}
	return ic.view.EffectiveScale()
}

// toImage converts a content position to image coordinates.
func (ic *ImageCanvas) toImage(pos fyne.Position) (geometry.Point2D, error) {
	if ic.view == nil {
		return geometry.Point2D{}, fmt.Errorf("no view bound")
	}
	return ic.view.ToImage(geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)})
}

// updateContentSize updates the content size based on image and scale.
func (ic *ImageCanvas) updateContentSize() {
	if ic.layer == nil || ic.layer.Image == nil {
		ic.imgSize = fyne.NewSize(400, 300)
	} else {
		s := ic.scale()
		ic.imgSize = fyne.NewSize(
			float32(float64(ic.layer.Width())*s),
			float32(float64(ic.layer.Height())*s),
		)
	}

	ic.raster.SetMinSize(ic.imgSize)
	ic.raster.Resize(ic.imgSize)
	if ic.content != nil {
		ic.content.Resize(ic.imgSize)
		ic.content.Refresh()
	}
	ic.raster.Refresh()
	if ic.scroll != nil {
		ic.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (ic *ImageCanvas) draw(w, h int) image.Image {
	// Check for size change and auto-fit if enabled
	currentSize := fyne.NewSize(float32(w), float32(h))
	if ic.fitToWindow && currentSize != ic.lastScrollSize && w > 0 && h > 0 {
		ic.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go func() {
			ic.FitToWindow()
		}()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(output, 0, 0, w-1, h-1, ic.style.Background)

	s := ic.scale()
	ic.compositeImage(output, w, h, s)

	if ic.style.GridEnabled {
		ic.drawGrid(output, w, h, s)
	}

	if ic.calibration != nil {
		ic.drawMeasurementLine(output, *ic.calibration, s)
	}
	for _, line := range ic.measurements {
		ic.drawMeasurementLine(output, line, s)
	}

	ic.drawPreview(output, s)

	if ic.pointerIn && ic.style.ShowCrosshair {
		ic.drawCrosshair(output, w, h)
	}

	if ic.style.ShowRulers {
		ic.drawRulers(output, w, h, s)
	}

	return output
}

// compositeImage draws the blueprint scaled by nearest-neighbor sampling.
func (ic *ImageCanvas) compositeImage(output *image.RGBA, w, h int, s float64) {
	if ic.layer == nil || ic.layer.Image == nil || s <= 0 {
		return
	}
	src := ic.layer.Image
	srcBounds := src.Bounds()

	for y := 0; y < h; y++ {
		srcY := int(float64(y)/s) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := 0; x < w; x++ {
			srcX := int(float64(x)/s) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// drawGrid draws grid lines at the configured image-pixel spacing.
func (ic *ImageCanvas) drawGrid(output *image.RGBA, w, h int, s float64) {
	spacing := float64(ic.style.GridSpacing) * s
	if spacing < 4 {
		return
	}
	col := ic.style.GridColor

	for x := 0.0; x < float64(w); x += spacing {
		drawLine(output, int(x), 0, int(x), h-1, col, 1)
	}
	for y := 0.0; y < float64(h); y += spacing {
		drawLine(output, 0, int(y), w-1, int(y), col, 1)
	}
}

// drawMeasurementLine draws one overlay line with endpoint markers and
// an optional midpoint label.
func (ic *ImageCanvas) drawMeasurementLine(output *image.RGBA, line Line, s float64) {
	x1 := int(line.Start.X * s)
	y1 := int(line.Start.Y * s)
	x2 := int(line.End.X * s)
	y2 := int(line.End.Y * s)

	drawLine(output, x1, y1, x2, y2, line.Color, line.Width)
	fillCircle(output, x1, y1, ic.style.PointSize, line.PointColor)
	fillCircle(output, x2, y2, ic.style.PointSize, line.PointColor)

	if line.Label != "" && ic.style.ShowLabels {
		scale := ic.labelScale()
		cx := (x1 + x2) / 2
		cy := (y1+y2)/2 - (5*scale+4) // sit above the line
		drawTextCentered(output, line.Label, cx, cy, line.TextColor, scale,
			ic.style.LabelBG, ic.style.LabelBGColor)
	}
}

// drawPreview draws the dashed line from the gesture anchor to the pointer.
func (ic *ImageCanvas) drawPreview(output *image.RGBA, s float64) {
	if ic.anchor == nil || ic.previewLine == nil || !ic.pointerIn {
		return
	}

	x1 := int(ic.anchor.X * s)
	y1 := int(ic.anchor.Y * s)
	x2 := int(float64(ic.pointerPos.X))
	y2 := int(float64(ic.pointerPos.Y))

	if ic.snapActive {
		// Mirror the axis-lock rule: zero out the smaller delta.
		dx, dy := x2-x1, y2-y1
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx > dy {
			y2 = y1
		} else {
			x2 = x1
		}
	}

	drawDashedLine(output, x1, y1, x2, y2, ic.previewLine.Color, ic.previewLine.Width)
	fillCircle(output, x1, y1, ic.style.PointSize, ic.previewLine.PointColor)

	if ic.snapActive {
		scale := ic.labelScale()
		drawTextCentered(output, "AXIS", x2, y2-(5*scale+6), ic.previewLine.Color, scale,
			ic.style.LabelBG, ic.style.LabelBGColor)
	}
}

// drawCrosshair draws full-width guides through the pointer position.
func (ic *ImageCanvas) drawCrosshair(output *image.RGBA, w, h int) {
	x := int(ic.pointerPos.X)
	y := int(ic.pointerPos.Y)
	col := ic.style.CrosshairColor

	drawLine(output, 0, y, w-1, y, col, 1)
	drawLine(output, x, 0, x, h-1, col, 1)
}

// drawRulers draws rulers along the top and left edges. With a calibration
// active the ticks land on nice round real-unit values; without one they
// fall back to every 100 image pixels.
func (ic *ImageCanvas) drawRulers(output *image.RGBA, w, h int, s float64) {
	if s <= 0 {
		return
	}
	const thickness = 16

	fillRect(output, 0, 0, w-1, thickness-1, ic.style.RulerBGColor)
	fillRect(output, 0, 0, thickness-1, h-1, ic.style.RulerBGColor)

	col := ic.style.RulerColor

	if ic.rulerPPU > 0 {
		stepUnits := measure.TickStep(ic.rulerPPU*s, 80)
		step := stepUnits * ic.rulerPPU * s
		if step < 8 {
			return
		}
		for i := 0; float64(i)*step < float64(w); i++ {
			x := int(float64(i) * step)
			drawLine(output, x, 0, x, thickness-1, col, 1)
			label := fmt.Sprintf("%.4g%s", float64(i)*stepUnits, ic.rulerUnit)
			drawText(output, label, x+2, 2, col, 1)
		}
		for i := 1; float64(i)*step < float64(h); i++ {
			y := int(float64(i) * step)
			drawLine(output, 0, y, thickness-1, y, col, 1)
			label := fmt.Sprintf("%.4g", float64(i)*stepUnits)
			drawText(output, label, 2, y+2, col, 1)
		}
		return
	}

	const tickEvery = 100.0 // image pixels
	step := tickEvery * s
	if step < 8 {
		return
	}
	for v := 0.0; v < float64(w); v += step {
		x := int(v)
		drawLine(output, x, 0, x, thickness-1, col, 1)
		drawText(output, fmt.Sprintf("%d", int(v/s)), x+2, 2, col, 1)
	}
	for v := step; v < float64(h); v += step {
		y := int(v)
		drawLine(output, 0, y, thickness-1, y, col, 1)
		drawText(output, fmt.Sprintf("%d", int(v/s)), 2, y+2, col, 1)
	}
}

// labelScale derives the bitmap font scale from the current zoom.
func (ic *ImageCanvas) labelScale() int {
	zoom := 1.0
	if ic.view != nil {
		zoom = ic.view.Zoom
	}
	scale := int(zoom * 2)
	if scale < 1 {
		scale = 1
	}
	if scale > 6 {
		scale = 6
	}
	return scale
}

// ImageToCanvas converts image coordinates to content coordinates.
func (ic *ImageCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	s := ic.scale()
	return imgX * s, imgY * s
}

// CanvasToImage converts content coordinates to image coordinates.
func (ic *ImageCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	s := ic.scale()
	if s <= 0 {
		return 0, 0
	}
	return canvasX / s, canvasY / s
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &imageCanvasRenderer{canvas: ic}
}

type imageCanvasRenderer struct {
	canvas *ImageCanvas
}

func (r *imageCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *imageCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *imageCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *imageCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *imageCanvasRenderer) Destroy() {}
