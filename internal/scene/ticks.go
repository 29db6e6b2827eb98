package scene

import "math"

// Ticks returns at most max round values covering [lo, hi], stepped on
// the 1-2-5 ladder. Both the terminal grid and the PNG export place
// their grid lines and axis labels at these values so the two surfaces
// agree. Degenerate or inverted ranges yield nil.
func Ticks(lo, hi float64, max int) []float64 {
	if max < 1 || !(hi > lo) {
		return nil
	}
	step := niceStep((hi - lo) / float64(max))
	var out []float64
	for {
		out = out[:0]
		for i := math.Ceil(lo / step); i*step <= hi+step*1e-9; i++ {
			v := i * step
			if v == 0 {
				v = 0 // drop the sign of negative zero
			}
			out = append(out, v)
		}
		if len(out) <= max {
			return out
		}
		step = niceStep(step * 1.5)
	}
}

// niceStep rounds raw up to the nearest 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	p := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / p; {
	case f <= 1:
		return p
	case f <= 2:
		return 2 * p
	case f <= 5:
		return 5 * p
	default:
		return 10 * p
	}
}
