// Package texturefile decodes image files into material textures.
package texturefile

import (
	"fmt"
	"image"

	"prism/material"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
)

// Load decodes the image at path.  Any format imaging can open is accepted;
// alpha is discarded.
func Load(path string) (*material.Texture, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("while decoding texture %s: %w", path, err)
	}

	tex, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("while converting texture %s: %w", path, err)
	}
	glog.Infof("Loaded texture %s: %dx%d", path, tex.Width, tex.Height)
	return tex, nil
}

// FromImage copies img into a texture, keeping the first three bytes of every
// NRGBA pixel.
func FromImage(img image.Image) (*material.Texture, error) {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	pix := make([]uint8, 0, w*h*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			pix = append(pix, row[4*x], row[4*x+1], row[4*x+2])
		}
	}
	return material.NewTexture(w, h, pix)
}
