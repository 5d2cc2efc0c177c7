package material

import (
	"prism/rgbimage"
)

// SolidColorMaterial has zero shininess, so every light that reaches a point
// adds the full specular highlight regardless of angle (x^0 == 1).
func SolidColorMaterial(c rgbimage.RGB) *Material {
	return &Material{
		Color:           SolidColor(c),
		Albedo:          Albedo{Diffuse: 0.5, Specular: 0.5},
		RefractiveIndex: 1,
	}
}

func CheckerboardMaterial() *Material {
	return &Material{
		Color:           Checkerboard(CheckerLight, CheckerDark),
		Shininess:       50,
		Albedo:          Albedo{Diffuse: 0.8, Specular: 0.6, Reflective: 0.1},
		RefractiveIndex: 1,
	}
}

func TexturedMaterial(tex *Texture) *Material {
	return &Material{
		Color:           ImageTexture(tex),
		Shininess:       50,
		Albedo:          Albedo{Diffuse: 0.9, Specular: 0.2},
		RefractiveIndex: 1,
	}
}

func GlossyBlue() *Material {
	return &Material{
		Color:           SolidColor(rgbimage.RGB{50, 50, 170}),
		Shininess:       200,
		Albedo:          Albedo{Diffuse: 0.5, Specular: 0.5},
		RefractiveIndex: 1,
	}
}

func RubberyRed() *Material {
	return &Material{
		Color:           SolidColor(rgbimage.RGB{190, 30, 30}),
		Shininess:       10,
		Albedo:          Albedo{Diffuse: 0.9, Specular: 0.1},
		RefractiveIndex: 1,
	}
}

func GlossyGreen() *Material {
	return &Material{
		Color:           SolidColor(rgbimage.RGB{50, 250, 50}),
		Shininess:       50,
		Albedo:          Albedo{Diffuse: 0.8, Specular: 0.6, Reflective: 0.1},
		RefractiveIndex: 1,
	}
}

func Mirror() *Material {
	return &Material{
		Color:           SolidColor(rgbimage.RGB{10, 10, 10}),
		Shininess:       200,
		Albedo:          Albedo{Diffuse: 0.2, Specular: 0.6, Reflective: 0.8},
		RefractiveIndex: 1,
	}
}

func Glass() *Material {
	return &Material{
		Color:           SolidColor(rgbimage.RGB{10, 10, 10}),
		Shininess:       200,
		Albedo:          Albedo{Specular: 0.6, Transmissive: 0.9},
		RefractiveIndex: 1.8,
	}
}
