package material

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"prism/rgbimage"
	"prism/vmath/vec2"
)

func at(u, v float64) MaterialCoords {
	return MaterialCoords{Mtl2: vec2.T{u, v}, HasMtl2: true}
}

func TestCheckerboard(t *testing.T) {
	light := rgbimage.RGB{255, 255, 255}
	dark := rgbimage.RGB{0, 0, 0}
	cb := Checkerboard(light, dark)

	testCases := []struct {
		name   string
		coords MaterialCoords
		want   rgbimage.RGB
	}{
		{name: "corner cell", coords: at(0.05, 0.05), want: light},
		{name: "next column", coords: at(0.15, 0.05), want: dark},
		{name: "next row", coords: at(0.05, 0.15), want: dark},
		{name: "diagonal", coords: at(0.15, 0.15), want: light},
		{name: "far corner", coords: at(1, 1), want: light},
		{name: "far edge", coords: at(1, 0), want: dark},
		{name: "no coordinates", coords: MaterialCoords{}, want: DebugPink},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(cb(tc.coords), tc.want); diff != "" {
				t.Errorf("Checkerboard(%+v) (-got +want)\n%s", tc.coords, diff)
			}
		})
	}
}

func TestSolidColorIgnoresCoordinates(t *testing.T) {
	c := rgbimage.RGB{1, 2, 3}
	sc := SolidColor(c)
	for _, coords := range []MaterialCoords{{}, at(0.3, 0.9)} {
		if got := sc(coords); got != c {
			t.Errorf("SolidColor(%+v) = %v, want %v", coords, got, c)
		}
	}
}

func TestImageTexture(t *testing.T) {
	// 2x2: red green / blue white.
	tex, err := NewTexture(2, 2, []uint8{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	})
	if err != nil {
		t.Fatalf("NewTexture: %v", err)
	}
	it := ImageTexture(tex)

	testCases := []struct {
		name   string
		coords MaterialCoords
		want   rgbimage.RGB
	}{
		{name: "top left", coords: at(0, 0), want: rgbimage.RGB{255, 0, 0}},
		{name: "top right", coords: at(1, 0), want: rgbimage.RGB{0, 255, 0}},
		{name: "bottom left", coords: at(0.2, 0.8), want: rgbimage.RGB{0, 0, 255}},
		{name: "bottom right", coords: at(0.9, 1), want: rgbimage.RGB{255, 255, 255}},
		{name: "out of range clamps", coords: at(-3, 7), want: rgbimage.RGB{0, 0, 255}},
		{name: "no coordinates", coords: MaterialCoords{}, want: DebugPink},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(it(tc.coords), tc.want); diff != "" {
				t.Errorf("ImageTexture(%+v) (-got +want)\n%s", tc.coords, diff)
			}
		})
	}
}

func TestNewTextureRejectsShortBuffer(t *testing.T) {
	if _, err := NewTexture(2, 2, make([]uint8, 11)); err == nil {
		t.Errorf("NewTexture with 11 bytes succeeded, want error")
	}
}

func TestPresetAlbedosInRange(t *testing.T) {
	presets := map[string]*Material{
		"solid":   SolidColorMaterial(rgbimage.White),
		"checker": CheckerboardMaterial(),
		"blue":    GlossyBlue(),
		"red":     RubberyRed(),
		"green":   GlossyGreen(),
		"mirror":  Mirror(),
		"glass":   Glass(),
	}
	for name, m := range presets {
		for _, w := range []float64{m.Albedo.Diffuse, m.Albedo.Specular, m.Albedo.Reflective, m.Albedo.Transmissive} {
			if w < 0 || w > 1 {
				t.Errorf("%s albedo %+v has weight outside [0, 1]", name, m.Albedo)
			}
		}
		if m.RefractiveIndex <= 0 {
			t.Errorf("%s refractive index = %v, want > 0", name, m.RefractiveIndex)
		}
	}
}
