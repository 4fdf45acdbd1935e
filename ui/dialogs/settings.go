package dialogs

import (
	"fmt"
	"strconv"

	"measuremate/internal/app"
	"measuremate/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SettingsDialog provides a property sheet for the visual settings.
type SettingsDialog struct {
	settings *app.Settings
	window   fyne.Window

	// Calibration style
	calLineColor  *colorEntry
	calPointColor *colorEntry
	calLineWidth  *widget.Entry

	// Measurement style
	measLineColor  *colorEntry
	measPointColor *colorEntry
	measTextColor  *colorEntry
	measLineWidth  *widget.Entry
	pointSize      *widget.Entry
	showLabels     *widget.Check
	labelBG        *widget.Check
	labelBGColor   *colorEntry

	// Canvas
	gridEnabled    *widget.Check
	gridColor      *colorEntry
	gridSpacing    *widget.Entry
	showCrosshair  *widget.Check
	crosshairColor *colorEntry
	showRulers     *widget.Check
	rulerColor     *colorEntry
	rulerBGColor   *colorEntry

	// Zoom bounds
	minZoom *widget.Entry
	maxZoom *widget.Entry

	onSave func(*app.Settings)
}

// colorEntry pairs a hex text entry with a live swatch.
type colorEntry struct {
	entry  *widget.Entry
	swatch *fynecanvas.Rectangle
}

func newColorEntry(hex string) *colorEntry {
	ce := &colorEntry{
		entry:  widget.NewEntry(),
		swatch: fynecanvas.NewRectangle(colorutil.ParseHex(hex, colorutil.Gray)),
	}
	ce.swatch.SetMinSize(fyne.NewSize(40, 24))
	ce.entry.SetText(hex)
	ce.entry.OnChanged = func(s string) {
		ce.swatch.FillColor = colorutil.ParseHex(s, colorutil.Gray)
		fynecanvas.Refresh(ce.swatch)
	}
	return ce
}

// widget returns the entry with its swatch for embedding in a form.
func (ce *colorEntry) widget() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, ce.swatch, ce.entry)
}

// hex returns the entered color, or fallback when it does not parse.
func (ce *colorEntry) hex(fallback string) string {
	c := colorutil.ParseHex(ce.entry.Text, colorutil.ParseHex(fallback, colorutil.Gray))
	return colorutil.Hex(c)
}

// NewSettingsDialog creates a settings dialog editing a copy of the
// given settings. onSave receives the updated settings on confirm.
func NewSettingsDialog(settings *app.Settings, window fyne.Window, onSave func(*app.Settings)) *SettingsDialog {
	return &SettingsDialog{
		settings: settings,
		window:   window,
		onSave:   onSave,
	}
}

// Show displays the dialog.
func (d *SettingsDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		container.NewVScroll(content),
		func(save bool) {
			if save {
				d.applyChanges()
				if d.onSave != nil {
					d.onSave(d.settings)
				}
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(460, 620))
	dlg.Show()
}

func (d *SettingsDialog) createContent() fyne.CanvasObject {
	s := d.settings

	// Calibration style section
	d.calLineColor = newColorEntry(s.CalibrationLineColor)
	d.calPointColor = newColorEntry(s.CalibrationPointColor)
	d.calLineWidth = widget.NewEntry()
	d.calLineWidth.SetText(fmt.Sprintf("%.0f", s.CalibrationLineWidth))

	calibrationForm := widget.NewForm(
		widget.NewFormItem("Line Color", d.calLineColor.widget()),
		widget.NewFormItem("Point Color", d.calPointColor.widget()),
		widget.NewFormItem("Line Width", d.calLineWidth),
	)

	// Measurement style section
	d.measLineColor = newColorEntry(s.MeasurementLineColor)
	d.measPointColor = newColorEntry(s.MeasurementPointColor)
	d.measTextColor = newColorEntry(s.MeasurementTextColor)
	d.measLineWidth = widget.NewEntry()
	d.measLineWidth.SetText(fmt.Sprintf("%.0f", s.MeasurementLineWidth))
	d.pointSize = widget.NewEntry()
	d.pointSize.SetText(fmt.Sprintf("%.0f", s.PointSize))
	d.showLabels = widget.NewCheck("Show value labels", nil)
	d.showLabels.SetChecked(s.ShowLabels)
	d.labelBG = widget.NewCheck("Label background", nil)
	d.labelBG.SetChecked(s.LabelBackground)
	d.labelBGColor = newColorEntry(s.LabelBGColor)

	measurementForm := widget.NewForm(
		widget.NewFormItem("Line Color", d.measLineColor.widget()),
		widget.NewFormItem("Point Color", d.measPointColor.widget()),
		widget.NewFormItem("Text Color", d.measTextColor.widget()),
		widget.NewFormItem("Line Width", d.measLineWidth),
		widget.NewFormItem("Point Size", d.pointSize),
		widget.NewFormItem("", d.showLabels),
		widget.NewFormItem("", d.labelBG),
		widget.NewFormItem("Label BG Color", d.labelBGColor.widget()),
	)

	// Canvas section
	d.gridEnabled = widget.NewCheck("Show grid", nil)
	d.gridEnabled.SetChecked(s.GridEnabled)
	d.gridColor = newColorEntry(s.GridColor)
	d.gridSpacing = widget.NewEntry()
	d.gridSpacing.SetText(strconv.Itoa(s.GridSpacing))
	d.showCrosshair = widget.NewCheck("Show crosshair", nil)
	d.showCrosshair.SetChecked(s.ShowCrosshair)
	d.crosshairColor = newColorEntry(s.CrosshairColor)
	d.showRulers = widget.NewCheck("Show rulers", nil)
	d.showRulers.SetChecked(s.ShowRulers)
	d.rulerColor = newColorEntry(s.RulerColor)
	d.rulerBGColor = newColorEntry(s.RulerBGColor)

	canvasForm := widget.NewForm(
		widget.NewFormItem("", d.gridEnabled),
		widget.NewFormItem("Grid Color", d.gridColor.widget()),
		widget.NewFormItem("Grid Spacing (px)", d.gridSpacing),
		widget.NewFormItem("", d.showCrosshair),
		widget.NewFormItem("Crosshair Color", d.crosshairColor.widget()),
		widget.NewFormItem("", d.showRulers),
		widget.NewFormItem("Ruler Color", d.rulerColor.widget()),
		widget.NewFormItem("Ruler BG Color", d.rulerBGColor.widget()),
	)

	// Zoom section
	d.minZoom = widget.NewEntry()
	d.minZoom.SetText(fmt.Sprintf("%.2f", s.MinZoom))
	d.maxZoom = widget.NewEntry()
	d.maxZoom.SetText(fmt.Sprintf("%.2f", s.MaxZoom))

	zoomForm := widget.NewForm(
		widget.NewFormItem("Min Zoom", d.minZoom),
		widget.NewFormItem("Max Zoom", d.maxZoom),
	)

	return container.NewVBox(
		widget.NewCard("Calibration Line", "", calibrationForm),
		widget.NewCard("Measurements", "", measurementForm),
		widget.NewCard("Canvas", "", canvasForm),
		widget.NewCard("Zoom", "", zoomForm),
	)
}

func (d *SettingsDialog) applyChanges() {
	s := d.settings

	s.CalibrationLineColor = d.calLineColor.hex(s.CalibrationLineColor)
	s.CalibrationPointColor = d.calPointColor.hex(s.CalibrationPointColor)
	if v, err := strconv.ParseFloat(d.calLineWidth.Text, 64); err == nil && v > 0 {
		s.CalibrationLineWidth = v
	}

	s.MeasurementLineColor = d.measLineColor.hex(s.MeasurementLineColor)
	s.MeasurementPointColor = d.measPointColor.hex(s.MeasurementPointColor)
	s.MeasurementTextColor = d.measTextColor.hex(s.MeasurementTextColor)
	if v, err := strconv.ParseFloat(d.measLineWidth.Text, 64); err == nil && v > 0 {
		s.MeasurementLineWidth = v
	}
	if v, err := strconv.ParseFloat(d.pointSize.Text, 64); err == nil && v > 0 {
		s.PointSize = v
	}
	s.ShowLabels = d.showLabels.Checked
	s.LabelBackground = d.labelBG.Checked
	s.LabelBGColor = d.labelBGColor.hex(s.LabelBGColor)

	s.GridEnabled = d.gridEnabled.Checked
	s.GridColor = d.gridColor.hex(s.GridColor)
	if v, err := strconv.Atoi(d.gridSpacing.Text); err == nil && v > 0 {
		s.GridSpacing = v
	}
	s.ShowCrosshair = d.showCrosshair.Checked
	s.CrosshairColor = d.crosshairColor.hex(s.CrosshairColor)
	s.ShowRulers = d.showRulers.Checked
	s.RulerColor = d.rulerColor.hex(s.RulerColor)
	s.RulerBGColor = d.rulerBGColor.hex(s.RulerBGColor)

	if v, err := strconv.ParseFloat(d.minZoom.Text, 64); err == nil {
		s.MinZoom = v
	}
	if v, err := strconv.ParseFloat(d.maxZoom.Text, 64); err == nil {
		s.MaxZoom = v
	}
	if s.MinZoom <= 0 || s.MaxZoom <= s.MinZoom {
		s.MinZoom = app.DefaultSettings().MinZoom
		s.MaxZoom = app.DefaultSettings().MaxZoom
	}
}
