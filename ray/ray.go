package ray

import (
	"prism/vmath/vec3"
)

// Ray is a half-line.  Slope need not be unit length; surfaces normalize it
// and report distances along the normalized direction.
type Ray struct {
	Point vec3.T
	Slope vec3.T
}

func (r *Ray) Eval(t float64) vec3.T {
	return vec3.T{
		r.Point[0] + t*r.Slope[0],
		r.Point[1] + t*r.Slope[1],
		r.Point[2] + t*r.Slope[2],
	}
}

// Towards returns the ray from a through b.  Its unit-distance point is b.
func Towards(a, b vec3.T) Ray {
	return Ray{Point: a, Slope: vec3.SubVV(b, a)}
}
