// Package meshfile reads triangle meshes from disk into flat position and
// index arrays.
package meshfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/golang/glog"
)

// Extensions lists the file types Load understands.
var Extensions = []string{".obj", ".stl", ".ply"}

// Load reads the mesh at path.  positions holds xyz triples; every three
// entries of indices form one triangle.  Vertices shared between triangles
// are stored once, in order of first use.
func Load(path string) (positions []float64, indices []int, err error) {
	var mesh *fauxgl.Mesh
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = fauxgl.LoadOBJ(path)
	case ".stl":
		mesh, err = fauxgl.LoadSTL(path)
	case ".ply":
		mesh, err = fauxgl.LoadPLY(path)
	default:
		return nil, nil, fmt.Errorf("unsupported mesh format %q (want one of %s)", ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("while loading mesh %s: %w", path, err)
	}

	positions, indices = Flatten(mesh)
	glog.Infof("Loaded mesh %s: %d vertices, %d triangles", path, len(positions)/3, len(indices)/3)
	return positions, indices, nil
}

// Flatten converts a fauxgl mesh to position and index arrays, merging
// vertices with identical positions.
func Flatten(mesh *fauxgl.Mesh) (positions []float64, indices []int) {
	seen := map[fauxgl.Vector]int{}
	index := func(v fauxgl.Vector) int {
		if i, ok := seen[v]; ok {
			return i
		}
		i := len(positions) / 3
		positions = append(positions, v.X, v.Y, v.Z)
		seen[v] = i
		return i
	}

	for _, t := range mesh.Triangles {
		indices = append(indices,
			index(t.V1.Position),
			index(t.V2.Position),
			index(t.V3.Position),
		)
	}
	return positions, indices
}
