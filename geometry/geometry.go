package geometry

import (
	"math"

	"prism/contact"
	"prism/ray"
	"prism/vmath/vec2"
	"prism/vmath/vec3"
)

// Surface is anything a ray can hit.
//
// RayInto reports the nearest point where query meets the surface at a
// strictly positive distance, measured along the normalized query direction.
// ok is false when there is no such point; that is never an error.
type Surface interface {
	RayInto(query ray.Ray) (c contact.Contact, ok bool)
}

// Nudger is implemented by surfaces that know how to move a point lying on
// them to just inside or just outside their volume.  Secondary rays start
// from nudged points so they do not immediately re-hit the surface they
// left.
type Nudger interface {
	ApproximateOutside(p vec3.T, margin float64) vec3.T
	ApproximateInside(p vec3.T, margin float64) vec3.T
}

// Sphere is a Surface centred at Center.
type Sphere struct {
	Center vec3.T
	Radius float64
}

func NewSphere(center vec3.T, radius float64) (*Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, NewConstructionError("sphere", "radius %v is not a positive finite number", radius)
	}
	if !vec3.IsFinite(center) {
		return nil, NewConstructionError("sphere", "center %v is not finite", center)
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

func (s *Sphere) RayInto(query ray.Ray) (contact.Contact, bool) {
	d := vec3.Normalize(query.Slope)
	toCenter := vec3.SubVV(s.Center, query.Point)

	b := vec3.IProd(toCenter, d)
	missSquared := vec3.IProd(toCenter, toCenter) - b*b
	r2 := s.Radius * s.Radius
	if missSquared > r2 {
		return contact.Contact{}, false
	}

	delta := math.Sqrt(r2 - missSquared)

	t := b - delta
	if t <= 0 {
		t = b + delta
	}
	if t <= 0 {
		return contact.Contact{}, false
	}

	p := vec3.AddVV(query.Point, vec3.MulVS(d, t))
	c := contact.Contact{
		T: t,
		N: vec3.SubVV(p, s.Center),
	}
	return c.WithMtl2(SphereCoords(s.Center, p)), true
}

// SphereCoords maps a point on a sphere to material space.
//
// The second coordinate runs from 0 at the north pole (+Y) to 1 at the south
// pole.  The first wraps around the Y axis: +X maps to 0.5, -X to 0 (and 1),
// with the -Z half of the sphere on (0.5, 1].  Both poles map to 0.
func SphereCoords(center, p vec3.T) vec2.T {
	otp := vec3.Normalize(vec3.SubVV(p, center))

	u := 0.0
	if otp[0] != 0 || otp[2] != 0 {
		xz := vec3.Normalize(vec3.T{otp[0], 0, otp[2]})
		u = (xz[0] + 1 - epsilon32) / 4
		if xz[2] < 0 {
			u = 1 - u
		}
	}

	v := (1 - otp[1]) / 2
	return vec2.Clamp(vec2.T{u, v}, 0, 1)
}

// epsilon32 keeps the seam just below the boundary, matching single-precision
// texture lookups.
const epsilon32 = 1.0 / (1 << 23)

func (s *Sphere) ApproximateOutside(p vec3.T, margin float64) vec3.T {
	dir := vec3.Normalize(vec3.SubVV(p, s.Center))
	return vec3.AddVV(s.Center, vec3.MulVS(dir, s.Radius+margin))
}

func (s *Sphere) ApproximateInside(p vec3.T, margin float64) vec3.T {
	r := s.Radius - margin
	if r <= 0 {
		r = s.Radius / 2
	}
	dir := vec3.Normalize(vec3.SubVV(p, s.Center))
	return vec3.AddVV(s.Center, vec3.MulVS(dir, r))
}
