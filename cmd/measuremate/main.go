// Command measuremate measures real-world distances on blueprint and
// floor-plan images.
package main

import (
	"fmt"
	"log"
	"os"

	"measuremate/internal/app"
	"measuremate/internal/version"
	"measuremate/ui/mainwindow"
	"measuremate/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "measuremate [image or session file]",
	Short: "Measure real-world distances on blueprint images",
	Long: `MeasureMate loads a blueprint, floor plan, or site photo, calibrates
pixels against a known reference distance, and measures distances with
two clicks. Sessions save the calibration and measurement log for later.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGUI,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGUI(cmd *cobra.Command, args []string) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting MeasureMate v%s", version.Version)

	fyneApp := fyneapp.NewWithID("io.measuremate")

	p := prefs.Load()
	settings := app.LoadSettings(p)
	state := app.NewState(settings)

	win := mainwindow.New(fyneApp, state, p)

	if len(args) == 1 {
		if err := win.OpenPath(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		win.RestoreLastImage()
	}

	win.ShowAndRun()
}
