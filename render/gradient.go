package render

import (
	"github.com/lixenwraith/beams/beam"
)

// sampleGradient evaluates stops at t in [0, 1] and returns straight color and clamped alpha
// Stops must be sorted by offset
func sampleGradient(stops []beam.ColorStop, t float64) (RGB, float64) {
	if len(stops) == 0 {
		return RGBBlack, 0
	}
	if t <= stops[0].Offset {
		return stops[0].Color, clampAlpha(stops[0].Alpha)
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color, clampAlpha(last.Alpha)
	}

	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.Offset {
			continue
		}
		lo := stops[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color, clampAlpha(hi.Alpha)
		}
		u := (t - lo.Offset) / span
		// Stop alphas clamp before interpolation, as a canvas parses each stop color
		a := clampAlpha(lo.Alpha) + (clampAlpha(hi.Alpha)-clampAlpha(lo.Alpha))*u
		return Lerp(lo.Color, hi.Color, u), a
	}
	return last.Color, clampAlpha(last.Alpha)
}

func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
