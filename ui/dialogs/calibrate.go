// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"measuremate/internal/units"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// CalibrationDialog asks for the real-world distance between the two
// reference clicks. Confirming with a valid positive distance completes
// the calibration; cancelling discards the clicked points.
type CalibrationDialog struct {
	window fyne.Window

	distanceEntry *widget.Entry
	unitSelect    *widget.Select

	onApply  func(distance float64, unit units.Unit)
	onCancel func()
}

// NewCalibrationDialog creates a calibration distance dialog.
func NewCalibrationDialog(window fyne.Window, initial units.Unit, onApply func(float64, units.Unit), onCancel func()) *CalibrationDialog {
	d := &CalibrationDialog{
		window:   window,
		onApply:  onApply,
		onCancel: onCancel,
	}

	d.distanceEntry = widget.NewEntry()
	d.distanceEntry.SetPlaceHolder("e.g. 10.5")

	d.unitSelect = widget.NewSelect(units.Names(), nil)
	d.unitSelect.SetSelected(initial.String())

	return d
}

// Show displays the dialog.
func (d *CalibrationDialog) Show() {
	form := widget.NewForm(
		widget.NewFormItem("Distance", d.distanceEntry),
		widget.NewFormItem("Unit", d.unitSelect),
	)

	dlg := dialog.NewCustomConfirm(
		"Set Reference Distance",
		"Calibrate",
		"Cancel",
		form,
		func(ok bool) {
			if !ok {
				if d.onCancel != nil {
					d.onCancel()
				}
				return
			}
			d.apply()
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(320, 180))
	dlg.Show()
	d.window.Canvas().Focus(d.distanceEntry)
}

func (d *CalibrationDialog) apply() {
	value, err := strconv.ParseFloat(d.distanceEntry.Text, 64)
	if err != nil {
		dialog.ShowError(fmt.Errorf("invalid distance %q", d.distanceEntry.Text), d.window)
		if d.onCancel != nil {
			d.onCancel()
		}
		return
	}
	if value <= 0 {
		dialog.ShowError(fmt.Errorf("distance must be greater than zero"), d.window)
		if d.onCancel != nil {
			d.onCancel()
		}
		return
	}

	unit, err := units.Parse(d.unitSelect.Selected)
	if err != nil {
		unit = units.Meter
	}

	if d.onApply != nil {
		d.onApply(value, unit)
	}
}
