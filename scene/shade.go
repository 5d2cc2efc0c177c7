package scene

import (
	"math"

	"prism/geometry"
	"prism/material"
	"prism/ray"
	"prism/rgbimage"
	"prism/vmath/vec3"
)

// NoMedium is the medium of a ray travelling through empty space.
const NoMedium = -1

// DefaultBackground is the colour of escaping rays in a scene with no sky.
var DefaultBackground = rgbimage.RGB{134, 75, 165}

// ShadeOptions holds the tunables of CastRay.
type ShadeOptions struct {
	// BounceLimit is the deepest bounce that still spawns reflection and
	// refraction rays.  Primary rays are bounce 0.
	BounceLimit int

	// Epsilon is how far secondary rays start from the surface they leave.
	Epsilon float64

	Background rgbimage.RGB
}

func DefaultShadeOptions() *ShadeOptions {
	return &ShadeOptions{
		BounceLimit: 4,
		Epsilon:     1e-6,
		Background:  DefaultBackground,
	}
}

// CastRay computes the colour seen along query.
//
// medium is the index of the object the ray is travelling through, or
// NoMedium.  bounce counts how many reflections and refractions led here.
func (s *Scene) CastRay(opts *ShadeOptions, query ray.Ray, bounce int, medium int) rgbimage.RGB {
	hit, idx := s.SceneRayIntersect(query)
	if idx == -1 {
		return s.skyColor(opts, query.Slope)
	}

	obj := s.Objects[idx]
	mtl := obj.Material

	d := vec3.Normalize(query.Slope)
	n := vec3.Normalize(hit.N)
	p := vec3.AddVV(query.Point, vec3.MulVS(d, hit.T))

	diffuse, specular := 0.0, 0.0
	for _, l := range s.Lights {
		if !s.lightReaches(l, p, idx) {
			continue
		}

		toLight := vec3.Normalize(vec3.SubVV(l.Origin, p))
		diffuse += math.Max(0, vec3.IProd(toLight, n)) * l.Intensity
		specular += math.Pow(math.Max(0, vec3.IProd(vec3.Reflect(toLight, n), vec3.Neg(d))), mtl.Shininess)
	}

	reflection := rgbimage.Black
	refraction := rgbimage.Black

	if bounce < opts.BounceLimit {
		if mtl.Albedo.Reflective > 0 {
			dir := vec3.Neg(vec3.Reflect(d, n))
			next := ray.Ray{Point: launchPoint(obj.Surface, p, n, dir, opts.Epsilon), Slope: dir}
			reflection = s.CastRay(opts, next, bounce+1, NoMedium).Scale(mtl.Albedo.Reflective)
		}

		if mtl.Albedo.Transmissive > 0 {
			nextMedium := idx
			facing := n
			if medium != NoMedium {
				nextMedium = NoMedium
				facing = vec3.Neg(n)
			}

			dir, tir := transmitDirection(d, facing, s.refractiveIndex(medium), s.refractiveIndex(nextMedium))
			if tir {
				nextMedium = medium
			}

			next := ray.Ray{Point: launchPoint(obj.Surface, p, n, dir, opts.Epsilon), Slope: dir}
			refraction = s.CastRay(opts, next, bounce+1, nextMedium).Scale(mtl.Albedo.Transmissive)
		}
	}

	coords := material.MaterialCoords{Mtl2: hit.Mtl2, HasMtl2: hit.HasMtl2}
	return mtl.Color(coords).Scale(math.Min(1, diffuse*mtl.Albedo.Diffuse)).
		Add(rgbimage.White.Scale(specular * mtl.Albedo.Specular)).
		Add(reflection).
		Add(refraction)
}

// lightReaches reports whether the first thing a ray from l toward p hits is
// the object being shaded.
func (s *Scene) lightReaches(l Light, p vec3.T, idx int) bool {
	_, blocker := s.SceneRayIntersect(ray.Towards(l.Origin, p))
	return blocker == -1 || blocker == idx
}

func (s *Scene) refractiveIndex(medium int) float64 {
	if medium == NoMedium {
		return 1
	}
	if ri := s.Objects[medium].Material.RefractiveIndex; ri > 0 {
		return ri
	}
	return 1
}

// transmitDirection bends d through a boundary whose normal faces back along
// d.  Under total internal reflection the ray is mirrored instead and tir is
// set; the ray then stays in its current medium.
func transmitDirection(d, facing vec3.T, n1, n2 float64) (dir vec3.T, tir bool) {
	if out, ok := vec3.Refract(d, facing, n1, n2); ok {
		return out, false
	}
	return vec3.Neg(vec3.Reflect(d, facing)), true
}

// launchPoint moves p, which lies on surf with outward normal n, off the
// surface toward the side dir heads into.
func launchPoint(surf geometry.Surface, p, n, dir vec3.T, eps float64) vec3.T {
	outside := vec3.IProd(dir, n) > 0

	if nudger, ok := surf.(geometry.Nudger); ok {
		if outside {
			return nudger.ApproximateOutside(p, eps)
		}
		return nudger.ApproximateInside(p, eps)
	}

	if outside {
		return vec3.AddVV(p, vec3.MulVS(n, eps))
	}
	return vec3.SubVV(p, vec3.MulVS(n, eps))
}

// skySphere is the unit sphere escaping rays are projected onto.
var skySphere = &geometry.Sphere{Radius: 1}

func (s *Scene) skyColor(opts *ShadeOptions, dir vec3.T) rgbimage.RGB {
	if s.Sky == nil {
		return opts.Background
	}

	c, ok := skySphere.RayInto(ray.Ray{Slope: dir})
	if !ok {
		return material.DebugPink
	}
	return s.Sky.Color(material.MaterialCoords{Mtl2: c.Mtl2, HasMtl2: c.HasMtl2})
}
