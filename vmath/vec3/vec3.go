package vec3

import (
	"math"
)

type T [3]float64

func (v T) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Normalize scales v to unit length.  The zero vector has no direction; the
// result is NaN in every component and callers must not pass it.
func Normalize(v T) T {
	l := v.Norm()
	return T{
		v[0] / l,
		v[1] / l,
		v[2] / l,
	}
}

func AddVV(a, b T) T {
	return T{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

func SubVV(a, b T) T {
	return AddVV(a, Neg(b))
}

func Neg(a T) T {
	return T{-a[0], -a[1], -a[2]}
}

func MulVS(a T, b float64) T {
	return T{
		a[0] * b,
		a[1] * b,
		a[2] * b,
	}
}

func IProd(a, b T) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func CProd(a, b T) T {
	return T{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Reject returns the component of b that is orthogonal to A.
func Reject(a, b T) T {
	return SubVV(b, MulVS(Normalize(a), IProd(a, b)/a.Norm()))
}

// Reflect mirrors d about the axis n.  Both inputs are normalized first, so
// the result is a unit vector pointing away from the surface on the same side
// as d.  A ray travelling along d bounces off along -Reflect(d, n).
func Reflect(d, n T) T {
	d = Normalize(d)
	n = Normalize(n)
	return Normalize(SubVV(MulVS(n, 2*IProd(d, n)), d))
}

// Refract bends the travel direction d through a boundary with normal n,
// going from a medium of index n1 into one of index n2.  n must point against
// d (back toward where the ray came from).
//
// ok is false on total internal reflection.
func Refract(d, n T, n1, n2 float64) (T, bool) {
	d = Normalize(d)
	n = Normalize(n)

	r := n1 / n2
	cosI := -IProd(n, d)
	cosT2 := 1 - r*r*(1-cosI*cosI)
	if cosT2 < 0 || math.IsNaN(cosT2) {
		return T{}, false
	}

	return Normalize(AddVV(MulVS(d, r), MulVS(n, r*cosI-math.Sqrt(cosT2)))), true
}

// IsFinite reports whether no component is NaN or infinite.
func IsFinite(v T) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
