// Package daily derives the card of the day from the calendar alone, so every
// caller on the same date (and zodiac sign) sees the same cards without any
// shared state.
package daily

import "math"

// NextFloat maps a seed to a float in [0,1) as frac(sin(seed) * 10000).
//
// The transform is frozen: changing it changes every historical card of the day.
func NextFloat(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	r := x - math.Floor(x)
	if r >= 1 {
		// tiny negative x rounds up to exactly 1
		return 0
	}
	return r
}
