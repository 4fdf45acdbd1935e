package main

import (
	"fmt"
	"os"
	"strconv"

	"measuremate/internal/units"

	"github.com/spf13/cobra"
)

var convertPPU float64

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a distance between units",
	Long: `Convert a distance between meters, centimeters, feet, and inches.
With --ppu the value is taken as a pixel distance and divided by the
pixels-per-unit factor (in the from unit) first, the way a calibrated
session converts measurements.`,
	Args: cobra.ExactArgs(3),
	Run:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().Float64Var(&convertPPU, "ppu", 0, "interpret value as pixels at this pixels-per-unit calibration")
}

func runConvert(cmd *cobra.Command, args []string) {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid value %q\n", args[0])
		os.Exit(1)
	}

	from, err := units.Parse(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	to, err := units.Parse(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if convertPPU > 0 {
		pixels := value
		value = pixels / convertPPU
		fmt.Printf("%g px at %g px/%s = %g %s = %g %s\n",
			pixels, convertPPU, from.Abbrev(),
			value, from.Abbrev(),
			units.Convert(value, from, to), to.Abbrev())
		return
	}

	fmt.Printf("%g %s = %g %s\n", value, from.Abbrev(), units.Convert(value, from, to), to.Abbrev())
}
