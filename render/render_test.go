package render

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"prism/camera"
	"prism/contact"
	"prism/geometry"
	"prism/material"
	"prism/ray"
	"prism/rgbimage"
	"prism/scene"
	"prism/vmath/vec3"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()

	s := &scene.Scene{}
	for _, sp := range []struct {
		c vec3.T
		r float64
		m *material.Material
	}{
		{vec3.T{1.7, 1.8, -10}, 2, material.RubberyRed()},
		{vec3.T{-2.5, 0.2, -5}, 1, material.GlossyBlue()},
		{vec3.T{4.5, 5.2, -11}, 2.5, material.Mirror()},
		{vec3.T{-1.2, -0.6, -4}, 0.7, material.Glass()},
	} {
		g, err := geometry.NewSphere(sp.c, sp.r)
		if err != nil {
			t.Fatalf("NewSphere: %v", err)
		}
		s.AddObject(g, sp.m)
	}

	floor, err := geometry.NewRect(vec3.T{-1, -2, -5}, vec3.T{-1, -2, -9}, vec3.T{3, -2, -9}, vec3.T{3, -2, -5})
	if err != nil {
		t.Fatalf("NewRect: %v", err)
	}
	s.AddObject(floor, material.CheckerboardMaterial())

	s.AddLight(vec3.T{10, 14, 10}, 0.4)
	s.AddLight(vec3.T{5, 0.5, -4}, 0.8)
	return s
}

func testCamera(t *testing.T) *camera.PinholeCamera {
	t.Helper()
	cam, err := camera.NewPinhole(vec3.T{0, 1, 0}, vec3.T{0, 0, -1}, 90)
	if err != nil {
		t.Fatalf("NewPinhole: %v", err)
	}
	return cam
}

func TestRenderMatchesSerialCastRay(t *testing.T) {
	s := testScene(t)
	cam := testCamera(t)

	opts := DefaultOptions()
	opts.Width, opts.Height = 32, 24

	want := rgbimage.New(opts.Height, opts.Width)
	for r := 0; r < opts.Height; r++ {
		for c := 0; c < opts.Width; c++ {
			q := cam.ImageToRay(r, opts.Height, c, opts.Width)
			want.Set(r, c, s.CastRay(&opts.ShadeOptions, q, 0, scene.NoMedium))
		}
	}

	for _, workers := range []int{1, 3, 8} {
		opts.Workers = workers
		got, err := Render(context.Background(), s, cam, opts)
		if err != nil {
			t.Fatalf("Render with %d workers: %v", workers, err)
		}
		if diff := cmp.Diff(got, want); diff != "" {
			t.Errorf("Render with %d workers differs from serial shading (-got +want)\n%s", workers, diff)
		}
	}
}

func TestRenderReportsProgress(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 5, 4
	opts.Workers = 2

	calls := 0
	lastDone, lastTotal := 0, 0
	opts.Progress = func(done, total int) {
		calls++
		if done != lastDone+1 {
			t.Errorf("progress jumped from %d to %d", lastDone, done)
		}
		lastDone, lastTotal = done, total
	}

	if _, err := Render(context.Background(), testScene(t), testCamera(t), opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if calls != 20 || lastDone != 20 || lastTotal != 20 {
		t.Errorf("progress called %d times, last (%d, %d), want 20 calls ending (20, 20)", calls, lastDone, lastTotal)
	}
}

func TestRenderSupersample(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 8, 6
	opts.Supersample = 2

	got, err := Render(context.Background(), testScene(t), testCamera(t), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.ColSize != 8 || got.RowSize != 6 {
		t.Errorf("Render size = %dx%d, want 8x6", got.ColSize, got.RowSize)
	}
}

type panickySurface struct{}

func (panickySurface) RayInto(query ray.Ray) (contact.Contact, bool) {
	panic("boom")
}

func TestRenderPanicFailsRender(t *testing.T) {
	s := testScene(t)
	s.AddObject(panickySurface{}, material.GlossyBlue())

	opts := DefaultOptions()
	opts.Width, opts.Height = 16, 12
	opts.Workers = 4

	im, err := Render(context.Background(), s, testCamera(t), opts)
	if err == nil {
		t.Fatalf("Render succeeded, want error")
	}
	if im != nil {
		t.Errorf("Render returned a partial image alongside error %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Render error = %v, want it to mention the panic", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	if _, err := Render(ctx, testScene(t), testCamera(t), opts); err == nil {
		t.Errorf("Render with cancelled context succeeded, want error")
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Options)
	}{
		{name: "zero width", modify: func(o *Options) { o.Width = 0 }},
		{name: "negative height", modify: func(o *Options) { o.Height = -3 }},
		{name: "negative workers", modify: func(o *Options) { o.Workers = -1 }},
		{name: "negative supersample", modify: func(o *Options) { o.Supersample = -2 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Width, opts.Height = 4, 4
			tc.modify(opts)
			if _, err := Render(context.Background(), testScene(t), testCamera(t), opts); err == nil {
				t.Errorf("Render succeeded, want error")
			}
		})
	}
}
