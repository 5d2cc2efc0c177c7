package scenepack

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"prism/geometry"
	"prism/ray"
	"prism/vmath/vec3"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
)

const cubeOBJ = `v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
f 1 2 3
f 1 3 4
f 5 6 7
f 5 7 8
f 1 2 6
f 1 6 5
f 4 3 7
f 4 7 8
f 1 4 8
f 1 8 5
f 2 3 7
f 2 7 6
`

func writeTexture(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{uint8(60 * x), 0, 0, 255})
		img.SetNRGBA(x, 1, color.NRGBA{0, uint8(60 * x), 0, 255})
	}
	path := filepath.Join(t.TempDir(), "tex.png")
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("imaging.Save: %v", err)
	}
	return path
}

func TestNames(t *testing.T) {
	if diff := cmp.Diff(Names(), []string{"checker", "mesh", "spheres", "textured"}); diff != "" {
		t.Errorf("Names() (-got +want)\n%s", diff)
	}
}

func TestLoadSceneSpheres(t *testing.T) {
	s, err := LoadScene("spheres", nil)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if got, want := len(s.Objects), 6; got != want {
		t.Errorf("len(Objects) = %d, want %d", got, want)
	}
	if got, want := len(s.Lights), 2; got != want {
		t.Errorf("len(Lights) = %d, want %d", got, want)
	}

	// Straight down the -Z axis from the camera's default spot, the first
	// thing in the way is the big red sphere.
	_, idx := s.SceneRayIntersect(ray.Ray{Point: vec3.T{1.7, 1.8, 2}, Slope: vec3.T{0, 0, -1}})
	if idx != 0 {
		t.Errorf("SceneRayIntersect hit object %d, want 0", idx)
	}
}

func TestLoadSceneChecker(t *testing.T) {
	s, err := LoadScene("checker", nil)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Sky == nil {
		t.Errorf("checker scene has no sky")
	}
	if _, ok := s.Objects[0].Surface.(*geometry.Rect); !ok {
		t.Errorf("object 0 is %T, want *geometry.Rect", s.Objects[0].Surface)
	}
}

func TestLoadSceneMesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	if err := os.WriteFile(path, []byte(cubeOBJ), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := LoadScene("mesh", &Options{MeshPath: path})
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}

	last := s.Objects[len(s.Objects)-1]
	m, ok := last.Surface.(*geometry.Mesh)
	if !ok {
		t.Fatalf("last object is %T, want *geometry.Mesh", last.Surface)
	}
	if got, want := len(m.Triangles), 12; got != want {
		t.Errorf("len(Triangles) = %d, want %d", got, want)
	}

	// Aim down at the placed cube's top face, off its diagonal.
	center := vec3.AddVV(DefaultMeshPlacement.Offset, vec3.T{0.1, 10, 0.25})
	_, idx := s.SceneRayIntersect(ray.Ray{Point: center, Slope: vec3.T{0, -1, 0}})
	if idx != len(s.Objects)-1 {
		t.Errorf("SceneRayIntersect hit object %d, want the mesh (%d)", idx, len(s.Objects)-1)
	}
}

func TestLoadSceneTextured(t *testing.T) {
	tex := writeTexture(t)
	s, err := LoadScene("textured", &Options{TexturePath: tex, SkyTexturePath: tex})
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Sky == nil {
		t.Errorf("sky texture was not applied")
	}
}

func TestLoadSceneErrors(t *testing.T) {
	testCases := []struct {
		desc string
		name string
		opts *Options
	}{
		{desc: "unknown scene", name: "teapot"},
		{desc: "mesh without path", name: "mesh"},
		{desc: "mesh file missing", name: "mesh", opts: &Options{MeshPath: "/nonexistent/cube.obj"}},
		{desc: "textured without path", name: "textured"},
		{desc: "sky texture missing", name: "spheres", opts: &Options{SkyTexturePath: "/nonexistent/sky.png"}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			if _, err := LoadScene(tc.name, tc.opts); err == nil {
				t.Errorf("LoadScene(%q) succeeded, want error", tc.name)
			}
		})
	}
}
