// Package affinetransform places model-space geometry into the world.
package affinetransform

import (
	"math"

	"prism/vmath/mat33"
	"prism/vmath/vec3"
)

type AffineTransform struct {
	Linear mat33.T
	Offset vec3.T
}

func Identity() AffineTransform {
	return AffineTransform{
		Linear: mat33.Identity(),
	}
}

func Scale(s float64) AffineTransform {
	return AffineTransform{
		Linear: mat33.T{Elts: [9]float64{s, 0.0, 0.0, 0.0, s, 0.0, 0.0, 0.0, s}},
	}
}

func Translate(x vec3.T) AffineTransform {
	result := Identity()
	result.Offset = x
	return result
}

// RotateY rotates by theta radians about the Y axis, counterclockwise when
// viewed from +Y.
func RotateY(theta float64) AffineTransform {
	c, s := math.Cos(theta), math.Sin(theta)
	return AffineTransform{
		Linear: mat33.T{Elts: [9]float64{c, 0, s, 0, 1, 0, -s, 0, c}},
	}
}

// Compose returns the transform that applies b first, then a.
func Compose(a, b AffineTransform) AffineTransform {
	return AffineTransform{
		Linear: mat33.MulMM(a.Linear, b.Linear),
		Offset: vec3.AddVV(a.Offset, mat33.MulMV(a.Linear, b.Offset)),
	}
}

// IsSingular reports whether the linear part collapses space onto a plane
// (or worse), which would flatten every triangle it places.
func (t AffineTransform) IsSingular() bool {
	d := mat33.Determinant(t.Linear)
	return d == 0 || math.IsNaN(d)
}

func TransformPoint(a AffineTransform, b vec3.T) vec3.T {
	return vec3.AddVV(mat33.MulMV(a.Linear, b), a.Offset)
}
