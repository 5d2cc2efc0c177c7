// Package scenepack builds the named scenes the renderer ships with.
package scenepack

import (
	"fmt"
	"sort"

	"prism/affinetransform"
	"prism/geometry"
	"prism/material"
	"prism/meshfile"
	"prism/scene"
	"prism/texturefile"
	"prism/vmath/vec3"

	"github.com/golang/glog"
)

// Options carries the external assets some scenes need.
type Options struct {
	// MeshPath is a .obj, .stl, or .ply file, required by the "mesh" scene.
	MeshPath string

	// MeshPlacement takes the mesh from model space into the world.  The zero
	// value is replaced by DefaultMeshPlacement.
	MeshPlacement *affinetransform.AffineTransform

	// TexturePath is an image file, required by the "textured" scene.
	TexturePath string

	// SkyTexturePath optionally wraps an image around the sky.
	SkyTexturePath string
}

// DefaultMeshPlacement puts a unit-sized model a little to the left of the
// demo spheres.
var DefaultMeshPlacement = affinetransform.Compose(
	affinetransform.Translate(vec3.T{-3.5, -1, -8}),
	affinetransform.Compose(affinetransform.RotateY(0.5), affinetransform.Scale(1.2)),
)

type builder func(opts *Options) (*scene.Scene, error)

var builders = map[string]builder{
	"spheres":  buildSpheres,
	"checker":  buildChecker,
	"mesh":     buildMesh,
	"textured": buildTextured,
}

// Names lists the available scenes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadScene builds the named scene.
func LoadScene(name string, opts *Options) (*scene.Scene, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
	if opts == nil {
		opts = &Options{}
	}

	s, err := b(opts)
	if err != nil {
		return nil, fmt.Errorf("while building scene %q: %w", name, err)
	}

	if opts.SkyTexturePath != "" {
		tex, err := texturefile.Load(opts.SkyTexturePath)
		if err != nil {
			return nil, fmt.Errorf("while loading sky texture: %w", err)
		}
		s.Sky = material.TexturedMaterial(tex)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q is invalid: %w", name, err)
	}
	glog.Infof("Built scene %q: %d objects, %d lights", name, len(s.Objects), len(s.Lights))
	return s, nil
}

type sphereSpec struct {
	center vec3.T
	radius float64
	mtl    *material.Material
}

func addSpheres(s *scene.Scene, specs []sphereSpec) error {
	for _, sp := range specs {
		g, err := geometry.NewSphere(sp.center, sp.radius)
		if err != nil {
			return err
		}
		s.AddObject(g, sp.mtl)
	}
	return nil
}

// demoScene is five spheres over a green slab, lit by two lights.
func demoScene() (*scene.Scene, error) {
	s := &scene.Scene{}

	red, green := material.RubberyRed(), material.GlossyGreen()
	err := addSpheres(s, []sphereSpec{
		{vec3.T{1.7, 1.8, -10}, 2, red},
		{vec3.T{2.5, 0.8, -7}, 1, green},
		{vec3.T{-2.5, 0.2, -5}, 1, material.GlossyBlue()},
		{vec3.T{4.5, 5.2, -11}, 2.5, material.Mirror()},
		{vec3.T{-1.2, -0.6, -4}, 0.7, material.Glass()},
	})
	if err != nil {
		return nil, err
	}

	slab, err := geometry.NewRect(
		vec3.T{-1, -2, -5},
		vec3.T{-1, -2, -9},
		vec3.T{3, -2, -9},
		vec3.T{3, -2, -5},
	)
	if err != nil {
		return nil, err
	}
	s.AddObject(slab, green)

	s.AddLight(vec3.T{10, 14, 10}, 0.4)
	s.AddLight(vec3.T{5, 0.5, -4}, 0.8)
	return s, nil
}

func buildSpheres(opts *Options) (*scene.Scene, error) {
	return demoScene()
}

func buildChecker(opts *Options) (*scene.Scene, error) {
	s := &scene.Scene{Sky: material.CheckerboardMaterial()}

	floor, err := geometry.NewRect(
		vec3.T{-6, -2, -2},
		vec3.T{-6, -2, -14},
		vec3.T{6, -2, -14},
		vec3.T{6, -2, -2},
	)
	if err != nil {
		return nil, err
	}
	s.AddObject(floor, material.CheckerboardMaterial())

	err = addSpheres(s, []sphereSpec{
		{vec3.T{-1.5, -0.5, -7}, 1.5, material.Mirror()},
		{vec3.T{1.8, -1, -5.5}, 1, material.Glass()},
		{vec3.T{0, 3, -12}, 2, material.CheckerboardMaterial()},
	})
	if err != nil {
		return nil, err
	}

	s.AddLight(vec3.T{-8, 10, 4}, 0.6)
	s.AddLight(vec3.T{6, 4, -2}, 0.5)
	return s, nil
}

func buildMesh(opts *Options) (*scene.Scene, error) {
	if opts.MeshPath == "" {
		return nil, fmt.Errorf("the mesh scene needs a mesh file")
	}

	s, err := demoScene()
	if err != nil {
		return nil, err
	}

	positions, indices, err := meshfile.Load(opts.MeshPath)
	if err != nil {
		return nil, err
	}

	placement := DefaultMeshPlacement
	if opts.MeshPlacement != nil {
		placement = *opts.MeshPlacement
	}

	m, err := geometry.NewMesh(positions, indices, placement)
	if err != nil {
		return nil, fmt.Errorf("while building mesh from %s: %w", opts.MeshPath, err)
	}
	s.AddObject(m, material.RubberyRed())
	return s, nil
}

func buildTextured(opts *Options) (*scene.Scene, error) {
	if opts.TexturePath == "" {
		return nil, fmt.Errorf("the textured scene needs a texture file")
	}

	tex, err := texturefile.Load(opts.TexturePath)
	if err != nil {
		return nil, err
	}

	s := &scene.Scene{}
	err = addSpheres(s, []sphereSpec{
		{vec3.T{0, 1, -6}, 2.5, material.TexturedMaterial(tex)},
		{vec3.T{3.5, -0.5, -5}, 1, material.Mirror()},
	})
	if err != nil {
		return nil, err
	}

	panel, err := geometry.NewRect(
		vec3.T{-5.5, -1.5, -4},
		vec3.T{-5.5, 2.5, -6},
		vec3.T{-2.5, 2.5, -7},
		vec3.T{-2.5, -1.5, -5},
	)
	if err != nil {
		return nil, err
	}
	s.AddObject(panel, material.TexturedMaterial(tex))

	s.AddLight(vec3.T{-4, 8, 4}, 0.7)
	s.AddLight(vec3.T{6, 2, 0}, 0.5)
	return s, nil
}
