package geometry

import (
	"prism/affinetransform"
	"prism/contact"
	"prism/ray"
	"prism/vmath/vec3"

	"github.com/golang/glog"
)

// Mesh is a triangle soup.  Intersection is a linear scan; the nearest hit
// wins, and on exact ties the triangle listed first is kept.
type Mesh struct {
	Triangles []*Triangle

	// Skipped counts input triangles dropped for having no area.
	Skipped int
}

// NewMesh builds a mesh from a flat xyz position array and a flat triangle
// index array, placing every vertex with toWorld.
func NewMesh(positions []float64, indices []int, toWorld affinetransform.AffineTransform) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, NewConstructionError("mesh", "position array length %d is not a multiple of 3", len(positions))
	}
	if len(indices)%3 != 0 {
		return nil, NewConstructionError("mesh", "index array length %d is not a multiple of 3", len(indices))
	}
	if toWorld.IsSingular() {
		return nil, NewConstructionError("mesh", "placement transform is singular")
	}

	numVerts := len(positions) / 3
	verts := make([]vec3.T, numVerts)
	for i := range verts {
		p := vec3.T{positions[3*i], positions[3*i+1], positions[3*i+2]}
		verts[i] = affinetransform.TransformPoint(toWorld, p)
	}

	m := &Mesh{}
	for i := 0; i < len(indices); i += 3 {
		var tri [3]vec3.T
		for j := 0; j < 3; j++ {
			idx := indices[i+j]
			if idx < 0 || idx >= numVerts {
				return nil, NewConstructionError("mesh", "triangle %d refers to vertex %d, but there are only %d", i/3, idx, numVerts)
			}
			tri[j] = verts[idx]
		}

		t, err := NewTriangle(tri[0], tri[1], tri[2])
		if err != nil {
			if glog.V(1) {
				glog.Infof("Skipping mesh triangle %d: %v", i/3, err)
			}
			m.Skipped++
			continue
		}
		m.Triangles = append(m.Triangles, t)
	}

	if m.Skipped > 0 {
		glog.Warningf("Mesh dropped %d of %d degenerate triangles", m.Skipped, len(indices)/3)
	}

	return m, nil
}

func (m *Mesh) RayInto(query ray.Ray) (contact.Contact, bool) {
	best := contact.Contact{}
	found := false
	for _, t := range m.Triangles {
		c, ok := t.RayInto(query)
		if !ok {
			continue
		}
		if !found || c.T < best.T {
			best = c
			found = true
		}
	}
	return best, found
}
