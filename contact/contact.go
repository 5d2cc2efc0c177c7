package contact

import (
	"prism/vmath/vec2"
	"prism/vmath/vec3"
)

// Contact describes where a ray meets a surface.
type Contact struct {
	// T is the distance along the normalized ray direction.  Always > 0.
	T float64

	// N is the outward surface normal.  Not necessarily unit length.
	N vec3.T

	// Mtl2 is the point's position in the surface's material space.  Only
	// meaningful when HasMtl2 is set.
	Mtl2    vec2.T
	HasMtl2 bool
}

// WithMtl2 returns c carrying material coordinates m.
func (c Contact) WithMtl2(m vec2.T) Contact {
	c.Mtl2 = m
	c.HasMtl2 = true
	return c
}
