package scene

import (
	"fmt"
	"math"

	"prism/contact"
	"prism/geometry"
	"prism/material"
	"prism/ray"
	"prism/vmath/vec3"
)

// Object binds a surface to the material it is drawn with.  Materials may be
// shared between objects.
type Object struct {
	Surface  geometry.Surface
	Material *material.Material
}

// Light is a point light.  Its contribution does not fall off with distance.
type Light struct {
	Origin    vec3.T
	Intensity float64
}

// Scene is the immutable world a render reads from.  Once rendering starts
// nothing may modify it, so any number of goroutines can shade against it
// without locking.
type Scene struct {
	Objects []*Object
	Lights  []Light

	// Sky, when set, colours rays that escape the scene.  It is sampled as a
	// unit sphere around the world origin, indexed by ray direction.
	Sky *material.Material
}

// AddObject is a convenience function to register an object and get its
// index.  The index identifies the object for shadow and medium tracking.
func (s *Scene) AddObject(surface geometry.Surface, m *material.Material) int {
	s.Objects = append(s.Objects, &Object{Surface: surface, Material: m})
	return len(s.Objects) - 1
}

func (s *Scene) AddLight(origin vec3.T, intensity float64) int {
	s.Lights = append(s.Lights, Light{Origin: origin, Intensity: intensity})
	return len(s.Lights) - 1
}

// Validate checks that the scene is complete enough to render.
func (s *Scene) Validate() error {
	for i, o := range s.Objects {
		if o == nil || o.Surface == nil {
			return fmt.Errorf("object %d has no surface", i)
		}
		if o.Material == nil || o.Material.Color == nil {
			return fmt.Errorf("object %d has no material colour", i)
		}
		if o.Material.Albedo.Transmissive > 0 && !(o.Material.RefractiveIndex > 0) {
			return fmt.Errorf("object %d is transmissive with refractive index %v", i, o.Material.RefractiveIndex)
		}
	}
	for i, l := range s.Lights {
		if !vec3.IsFinite(l.Origin) || math.IsNaN(l.Intensity) || math.IsInf(l.Intensity, 0) {
			return fmt.Errorf("light %d is not finite: %+v", i, l)
		}
	}
	if s.Sky != nil && s.Sky.Color == nil {
		return fmt.Errorf("sky material has no colour")
	}
	return nil
}

// SceneRayIntersect finds the nearest object along query.  It returns the
// contact and the object's index, or -1 if the ray escapes.  When two objects
// are hit at exactly the same distance, the one added first wins.
func (s *Scene) SceneRayIntersect(query ray.Ray) (contact.Contact, int) {
	minContact := contact.Contact{}
	minIndex := -1

	for i, o := range s.Objects {
		c, ok := o.Surface.RayInto(query)
		if !ok || c.T <= 0 {
			continue
		}
		if minIndex == -1 || c.T < minContact.T {
			minContact = c
			minIndex = i
		}
	}

	return minContact, minIndex
}
