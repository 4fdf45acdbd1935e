package dialogs

import (
	"fmt"
	"strconv"

	"measuremate/internal/measure"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// StyleDialog edits the per-measurement style override. Applying with
// "Use defaults" checked clears the override so the global settings
// apply again.
type StyleDialog struct {
	window fyne.Window

	lineColor   *colorEntry
	pointColor  *colorEntry
	textColor   *colorEntry
	lineWidth   *widget.Entry
	useDefaults *widget.Check

	onApply func(*measure.Style)
}

// NewStyleDialog creates a style dialog prefilled from current, which may
// be nil when the measurement has no override. onApply receives the new
// override, or nil to clear it.
func NewStyleDialog(current *measure.Style, defaults measure.Style, window fyne.Window, onApply func(*measure.Style)) *StyleDialog {
	d := &StyleDialog{
		window:  window,
		onApply: onApply,
	}

	seed := defaults
	if current != nil {
		seed = *current
	}

	d.lineColor = newColorEntry(seed.LineColor)
	d.pointColor = newColorEntry(seed.PointColor)
	d.textColor = newColorEntry(seed.TextColor)
	d.lineWidth = widget.NewEntry()
	d.lineWidth.SetText(fmt.Sprintf("%.0f", seed.LineWidth))
	d.useDefaults = widget.NewCheck("Use defaults", nil)
	d.useDefaults.SetChecked(current == nil)

	return d
}

// Show displays the dialog.
func (d *StyleDialog) Show() {
	form := widget.NewForm(
		widget.NewFormItem("Line Color", d.lineColor.widget()),
		widget.NewFormItem("Point Color", d.pointColor.widget()),
		widget.NewFormItem("Text Color", d.textColor.widget()),
		widget.NewFormItem("Line Width", d.lineWidth),
		widget.NewFormItem("", d.useDefaults),
	)

	dlg := dialog.NewCustomConfirm(
		"Measurement Style",
		"Apply",
		"Cancel",
		form,
		func(ok bool) {
			if !ok || d.onApply == nil {
				return
			}
			if d.useDefaults.Checked {
				d.onApply(nil)
				return
			}
			d.onApply(d.style())
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(360, 300))
	dlg.Show()
}

func (d *StyleDialog) style() *measure.Style {
	style := &measure.Style{
		LineColor:  d.lineColor.hex("#0000FF"),
		PointColor: d.pointColor.hex("#0000FF"),
		TextColor:  d.textColor.hex("#0000FF"),
	}
	if v, err := strconv.ParseFloat(d.lineWidth.Text, 64); err == nil && v > 0 {
		style.LineWidth = v
	} else {
		style.LineWidth = 2
	}
	return style
}
