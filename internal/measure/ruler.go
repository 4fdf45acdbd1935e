package measure

import "math"

// rulerNiceSteps is the series ruler tick spacings are chosen from, in
// declared units.
var rulerNiceSteps = []float64{0.1, 0.2, 0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}

// TickStep picks a ruler tick spacing in declared units: the nice round
// number whose on-screen extent is closest to targetPixels at the given
// pixel density. Returns 0 when either input is non-positive.
func TickStep(pixelsPerUnit, targetPixels float64) float64 {
	if pixelsPerUnit <= 0 || targetPixels <= 0 {
		return 0
	}
	want := targetPixels / pixelsPerUnit
	best := rulerNiceSteps[0]
	for _, n := range rulerNiceSteps[1:] {
		if math.Abs(n-want) < math.Abs(best-want) {
			best = n
		}
	}
	return best
}
