package material

import (
	"fmt"
	"math"

	"prism/rgbimage"
	"prism/vmath/vec2"
)

// MaterialCoords is where on a surface a colour is looked up.  Surfaces
// without a parameterization (triangles, meshes) leave HasMtl2 unset.
type MaterialCoords struct {
	Mtl2    vec2.T
	HasMtl2 bool
}

// ColorMap produces the diffuse colour at a surface point.
type ColorMap func(MaterialCoords) rgbimage.RGB

// DebugPink marks lookups that needed material coordinates but got none.
var DebugPink = rgbimage.RGB{200, 50, 200}

// Checkerboard colours used by the built-in checker material.
var (
	CheckerLight = rgbimage.RGB{179, 118, 62}
	CheckerDark  = rgbimage.RGB{67, 45, 35}
)

// CheckerboardRows is the number of cells along each side of the unit square.
const CheckerboardRows = 8

// coordCeiling keeps coordinate 1.0 inside the last cell or texel.
const coordCeiling = 1 - 1.0/(1<<23)

// SolidColor ignores the coordinates entirely.
func SolidColor(c rgbimage.RGB) ColorMap {
	return func(coords MaterialCoords) rgbimage.RGB {
		return c
	}
}

// Checkerboard alternates light and dark over an 8x8 grid; the corner cell
// is light.
func Checkerboard(light, dark rgbimage.RGB) ColorMap {
	return func(coords MaterialCoords) rgbimage.RGB {
		if !coords.HasMtl2 {
			return DebugPink
		}

		x := int(clampCoord(coords.Mtl2[0]) * CheckerboardRows)
		y := int(clampCoord(coords.Mtl2[1]) * CheckerboardRows)
		if (x+y)%2 == 0 {
			return light
		}
		return dark
	}
}

func clampCoord(c float64) float64 {
	if math.IsNaN(c) || c < 0 {
		return 0
	}
	return math.Min(c, coordCeiling)
}

// Texture is a decoded row-major RGB image used by ImageTexture.
type Texture struct {
	Width, Height int
	Pix           []uint8
}

func NewTexture(width, height int, pix []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d is empty", width, height)
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("texture %dx%d needs %d bytes, got %d", width, height, width*height*3, len(pix))
	}
	return &Texture{Width: width, Height: height, Pix: pix}, nil
}

func (t *Texture) At(x, y int) rgbimage.RGB {
	idx := (y*t.Width + x) * 3
	return rgbimage.RGB{t.Pix[idx], t.Pix[idx+1], t.Pix[idx+2]}
}

// ImageTexture samples tex at the nearest texel.  Coordinate (0, 0) is the
// top-left texel and (1, 1) the bottom-right.
func ImageTexture(tex *Texture) ColorMap {
	return func(coords MaterialCoords) rgbimage.RGB {
		if !coords.HasMtl2 {
			return DebugPink
		}

		x := texel(coords.Mtl2[0], tex.Width)
		y := texel(coords.Mtl2[1], tex.Height)
		return tex.At(x, y)
	}
}

func texel(c float64, size int) int {
	i := int(math.Round(clampCoord(c) * float64(size-1)))
	if i >= size {
		i = size - 1
	}
	return i
}

// Albedo weighs the four contributions to a shaded colour.  Each weight is
// an independent factor in [0, 1]; they need not sum to 1.
type Albedo struct {
	Diffuse      float64
	Specular     float64
	Reflective   float64
	Transmissive float64
}

// Material describes how a surface responds to light.
type Material struct {
	Color     ColorMap
	Shininess float64
	Albedo    Albedo

	// RefractiveIndex only matters when Albedo.Transmissive > 0.
	RefractiveIndex float64
}
