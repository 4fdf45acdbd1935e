package measure

import "testing"

func TestTickStep(t *testing.T) {
	tests := []struct {
		name          string
		pixelsPerUnit float64
		targetPixels  float64
		want          float64
	}{
		{"whole units", 20, 100, 5},
		{"dense calibration", 1000, 100, 0.1},
		{"sparse calibration", 0.5, 100, 200},
		{"one unit per target", 100, 100, 1},
		{"zero density", 0, 100, 0},
		{"zero target", 20, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TickStep(tt.pixelsPerUnit, tt.targetPixels); got != tt.want {
				t.Errorf("TickStep(%g, %g) = %g, want %g",
					tt.pixelsPerUnit, tt.targetPixels, got, tt.want)
			}
		})
	}
}
