package dialogs

import (
	"fmt"

	"measuremate/internal/version"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowShortcuts displays the keyboard shortcut reference.
func ShowShortcuts(window fyne.Window) {
	text := `File
  Ctrl+O        Open image
  Ctrl+Shift+O  Open session
  Ctrl+S        Save session
  Ctrl+E        Export annotated image

Measuring
  Left click    Place a point
  Shift+click   Snap second point to axis
  Right click   Remove nearest measurement
  Esc           Cancel in-progress points
  Ctrl+Z        Undo last measurement
  Ctrl+R        Reset calibration

View
  + / -         Zoom in / out
  Ctrl+0        Reset zoom
  Ctrl+F        Fit to window
  Mouse wheel   Zoom

Help
  F1            This reference`

	label := widget.NewLabel(text)
	label.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.ShowCustom("Keyboard Shortcuts", "Close", label, window)
}

// ShowAbout displays the about dialog.
func ShowAbout(window fyne.Window) {
	text := fmt.Sprintf(
		"MeasureMate %s\n\nMeasure real-world distances on blueprints,\nfloor plans, and site photos.\n\nBuild: %s %s",
		version.Version, version.GitCommit, version.BuildTime,
	)
	dialog.ShowInformation("About MeasureMate", text, window)
}
