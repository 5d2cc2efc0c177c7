package vec2

import "math"

// T is a point in a surface's 2D parameter space.  Material coordinates
// produced by geometry lie in [0, 1] x [0, 1].
type T [2]float64

// Clamp limits each component to [lo, hi].
func Clamp(v T, lo, hi float64) T {
	return T{
		math.Min(math.Max(v[0], lo), hi),
		math.Min(math.Max(v[1], lo), hi),
	}
}
