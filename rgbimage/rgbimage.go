// Package rgbimage holds 8-bit RGB colours and the row-major pixel buffer the
// renderer fills.
package rgbimage

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/nfnt/resize"
)

// RGB is one 8-bit-per-channel colour.  All arithmetic on it saturates.
type RGB [3]uint8

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Scale multiplies every channel by f.  Results above 255 saturate, and
// negative or NaN products become 0.  The fractional part is truncated.
func (c RGB) Scale(f float64) RGB {
	return RGB{
		scaleChannel(c[0], f),
		scaleChannel(c[1], f),
		scaleChannel(c[2], f),
	}
}

func scaleChannel(c uint8, f float64) uint8 {
	v := float64(c) * f
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Add sums channel-wise, saturating at 255.
func (c RGB) Add(o RGB) RGB {
	return RGB{
		addChannel(c[0], o[0]),
		addChannel(c[1], o[1]),
		addChannel(c[2], o[2]),
	}
}

func addChannel(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// Image is a row-major RGB buffer, three bytes per pixel.
type Image struct {
	RowSize, ColSize int
	Pix              []uint8
}

// New returns a zeroed rows x cols image.
func New(rows, cols int) *Image {
	im := &Image{}
	im.Resize(rows, cols)
	return im
}

// Resize reallocates the buffer, discarding any previous contents.
func (s *Image) Resize(rowSize, colSize int) {
	s.RowSize = rowSize
	s.ColSize = colSize
	s.Pix = make([]uint8, rowSize*colSize*3)
}

// Clear zeroes every pixel.
func (s *Image) Clear() {
	for i := range s.Pix {
		s.Pix[i] = 0
	}
}

func (s *Image) Set(r, c int, rgb RGB) {
	idx := (r*s.ColSize + c) * 3
	s.Pix[idx] = rgb[0]
	s.Pix[idx+1] = rgb[1]
	s.Pix[idx+2] = rgb[2]
}

func (s *Image) At(r, c int) RGB {
	idx := (r*s.ColSize + c) * 3
	return RGB{s.Pix[idx], s.Pix[idx+1], s.Pix[idx+2]}
}

// ToNRGBA converts the buffer to an opaque image.NRGBA for encoding.
func (s *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, s.ColSize, s.RowSize))
	for r := 0; r < s.RowSize; r++ {
		for c := 0; c < s.ColSize; c++ {
			px := s.At(r, c)
			out.SetNRGBA(c, r, color.NRGBA{px[0], px[1], px[2], 255})
		}
	}
	return out
}

// FromImage copies any image.Image into an RGB buffer, dropping alpha.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	out := New(b.Dy(), b.Dx())
	for r := 0; r < b.Dy(); r++ {
		for c := 0; c < b.Dx(); c++ {
			px := color.NRGBAModel.Convert(img.At(b.Min.X+c, b.Min.Y+r)).(color.NRGBA)
			out.Set(r, c, RGB{px.R, px.G, px.B})
		}
	}
	return out
}

// Downsample shrinks the image by an integer factor in each dimension with a
// Lanczos filter.  It is used to resolve supersampled renders.
func (s *Image) Downsample(factor int) (*Image, error) {
	if factor < 1 {
		return nil, fmt.Errorf("downsample factor %d must be at least 1", factor)
	}
	if factor == 1 {
		return s, nil
	}
	if s.RowSize%factor != 0 || s.ColSize%factor != 0 {
		return nil, fmt.Errorf("image %dx%d is not divisible by downsample factor %d", s.ColSize, s.RowSize, factor)
	}

	small := resize.Resize(uint(s.ColSize/factor), uint(s.RowSize/factor), s.ToNRGBA(), resize.Lanczos3)
	return FromImage(small), nil
}
