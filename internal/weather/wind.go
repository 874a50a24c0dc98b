package weather

import "math"

var compass = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection converts a bearing in degrees to one of eight compass points.
// Each point covers 45 degrees centred on it, so N spans [337.5, 22.5).
// Bearings outside [0, 360) are normalized first; NaN yields "?".
func WindDirection(deg float64) string {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return "?"
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	idx := int(math.Floor((deg+22.5)/45)) % len(compass)
	return compass[idx]
}
