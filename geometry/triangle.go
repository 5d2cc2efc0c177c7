package geometry

import (
	"math"

	"prism/contact"
	"prism/ray"
	"prism/vmath/vec2"
	"prism/vmath/vec3"
)

// triangleEpsilon bounds the parallel-ray, determinant, and minimum-distance
// tests.
const triangleEpsilon = 1e-9

// Triangle is a flat, double-sided Surface.  Its normal follows the winding
// of V: (V1-V0) x (V2-V1).
type Triangle struct {
	V [3]vec3.T
	N vec3.T
}

func NewTriangle(v0, v1, v2 vec3.T) (*Triangle, error) {
	for _, v := range []vec3.T{v0, v1, v2} {
		if !vec3.IsFinite(v) {
			return nil, NewConstructionError("triangle", "vertex %v is not finite", v)
		}
	}

	n := vec3.CProd(vec3.SubVV(v1, v0), vec3.SubVV(v2, v1))
	if n.Norm() == 0 {
		return nil, NewConstructionError("triangle", "vertices %v, %v, %v span no area", v0, v1, v2)
	}

	return &Triangle{
		V: [3]vec3.T{v0, v1, v2},
		N: vec3.Normalize(n),
	}, nil
}

func (tr *Triangle) RayInto(query ray.Ray) (contact.Contact, bool) {
	t, _, ok := tr.barycentric(query)
	if !ok {
		return contact.Contact{}, false
	}
	return contact.Contact{T: t, N: tr.N}, true
}

// barycentric intersects query with the triangle (Moller-Trumbore).  uv are
// the weights of V[1] and V[2].
func (tr *Triangle) barycentric(query ray.Ray) (float64, vec2.T, bool) {
	d := vec3.Normalize(query.Slope)
	if math.Abs(vec3.IProd(d, tr.N)) < triangleEpsilon {
		return 0, vec2.T{}, false
	}

	e1 := vec3.SubVV(tr.V[1], tr.V[0])
	e2 := vec3.SubVV(tr.V[2], tr.V[0])

	dCrossE2 := vec3.CProd(d, e2)
	det := vec3.IProd(e1, dCrossE2)
	if math.Abs(det) < triangleEpsilon {
		return 0, vec2.T{}, false
	}
	invDet := 1 / det

	s := vec3.SubVV(query.Point, tr.V[0])
	u := invDet * vec3.IProd(s, dCrossE2)
	if u < 0 || u > 1 {
		return 0, vec2.T{}, false
	}

	sCrossE1 := vec3.CProd(s, e1)
	v := invDet * vec3.IProd(d, sCrossE1)
	if v < 0 || u+v > 1 {
		return 0, vec2.T{}, false
	}

	t := invDet * vec3.IProd(e2, sCrossE1)
	if t <= triangleEpsilon {
		return 0, vec2.T{}, false
	}
	return t, vec2.T{u, v}, true
}

// Rect is a parallelogram with corners A, B, C, D in order, split into the
// triangles (A, C, B) and (C, A, D).  Material coordinates run from A toward
// D in the first component and from A toward B in the second.
type Rect struct {
	A, B, C, D vec3.T

	halves [2]*Triangle
}

// rectNormalTolerance is how far apart the two halves' unit normals may be.
const rectNormalTolerance = 1e-9

func NewRect(a, b, c, d vec3.T) (*Rect, error) {
	half, err := NewTriangle(a, c, b)
	if err != nil {
		return nil, WrapConstructionError(err, "rect", "first half")
	}
	another, err := NewTriangle(c, a, d)
	if err != nil {
		return nil, WrapConstructionError(err, "rect", "second half")
	}

	if vec3.SubVV(half.N, another.N).Norm() > rectNormalTolerance {
		return nil, NewConstructionError("rect", "corners %v, %v, %v, %v are not coplanar", a, b, c, d)
	}

	return &Rect{
		A: a, B: b, C: c, D: d,
		halves: [2]*Triangle{half, another},
	}, nil
}

func (r *Rect) Normal() vec3.T {
	return r.halves[0].N
}

func (r *Rect) RayInto(query ray.Ray) (contact.Contact, bool) {
	if t, uv, ok := r.halves[0].barycentric(query); ok {
		c := contact.Contact{T: t, N: r.Normal()}
		return c.WithMtl2(vec2.Clamp(vec2.T{uv[0], uv[0] + uv[1]}, 0, 1)), true
	}
	if t, uv, ok := r.halves[1].barycentric(query); ok {
		c := contact.Contact{T: t, N: r.Normal()}
		return c.WithMtl2(vec2.Clamp(vec2.T{1 - uv[0], 1 - uv[0] - uv[1]}, 0, 1)), true
	}
	return contact.Contact{}, false
}

// PointAt maps material coordinates back onto the rect.
func (r *Rect) PointAt(m vec2.T) vec3.T {
	x := vec3.MulVS(vec3.SubVV(r.D, r.A), m[0])
	y := vec3.MulVS(vec3.SubVV(r.B, r.A), m[1])
	return vec3.AddVV(r.A, vec3.AddVV(x, y))
}
