package camera

import (
	"fmt"
	"math"

	"prism/ray"
	"prism/vmath/mat33"
	"prism/vmath/vec3"
)

// Camera maps a pixel to the primary ray through it.  The same pixel always
// produces the same ray.
type Camera interface {
	ImageToRay(curRow, imgRows, curCol, imgCols int) ray.Ray
}

// WorldUp is the direction the top of the image points toward, as far as the
// look direction allows.
var WorldUp = vec3.T{0, 1, 0}

// PinholeCamera projects through a single point.
//
// The columns of ApertureToWorld are the eye (viewing direction), left, and
// up unit vectors.  HalfWidth is the distance from the image centre to its
// left edge on a virtual screen one unit in front of the eye; the vertical
// extent follows from the image's aspect ratio.
type PinholeCamera struct {
	Center          vec3.T
	ApertureToWorld mat33.T
	HalfWidth       float64
}

// NewPinhole builds a camera at center looking along look, with the given
// horizontal field of view in degrees.
func NewPinhole(center, look vec3.T, horizontalFOV float64) (*PinholeCamera, error) {
	if !vec3.IsFinite(center) || !vec3.IsFinite(look) || look.Norm() == 0 {
		return nil, fmt.Errorf("camera at %v looking along %v has no usable orientation", center, look)
	}
	if !(horizontalFOV > 0 && horizontalFOV < 180) {
		return nil, fmt.Errorf("horizontal field of view %v is not in (0, 180) degrees", horizontalFOV)
	}

	eye := vec3.Normalize(look)
	if vec3.Reject(eye, WorldUp).Norm() < 1e-9 {
		return nil, fmt.Errorf("look direction %v is vertical, so the image has no up", look)
	}

	c := &PinholeCamera{
		Center:    center,
		HalfWidth: math.Tan(horizontalFOV * math.Pi / 360),
	}
	c.setEyeDirect(eye)
	c.SetUp(WorldUp)
	return c, nil
}

func (c *PinholeCamera) ImageToRay(curRow, imgRows, curCol, imgCols int) ray.Ray {
	halfHeight := c.HalfWidth * float64(imgRows) / float64(imgCols)

	apertureCoords := vec3.T{
		1.0,
		(1.0 - 2.0*float64(curCol)/float64(imgCols)) * c.HalfWidth,
		(1.0 - 2.0*float64(curRow)/float64(imgRows)) * halfHeight,
	}

	return ray.Ray{
		Point: c.Center,
		Slope: vec3.Normalize(mat33.MulMV(c.ApertureToWorld, apertureCoords)),
	}
}

func (c *PinholeCamera) Eye() vec3.T {
	return c.ApertureToWorld.Column(0)
}

func (c *PinholeCamera) Left() vec3.T {
	return c.ApertureToWorld.Column(1)
}

func (c *PinholeCamera) Up() vec3.T {
	return c.ApertureToWorld.Column(2)
}

func (c *PinholeCamera) SetEye(newEye vec3.T) {
	c.setEyeDirect(vec3.Normalize(newEye))
	c.setUpDirect(vec3.Normalize(vec3.Reject(c.Eye(), c.Up())))
	c.setLeftDirect(vec3.CProd(c.Up(), c.Eye()))
}

func (c *PinholeCamera) SetUp(newUp vec3.T) {
	c.setUpDirect(vec3.Normalize(vec3.Reject(c.Eye(), newUp)))
	c.setLeftDirect(vec3.CProd(c.Up(), c.Eye()))
}

func (c *PinholeCamera) setEyeDirect(newEye vec3.T) {
	c.ApertureToWorld.Elts[0] = newEye[0]
	c.ApertureToWorld.Elts[3] = newEye[1]
	c.ApertureToWorld.Elts[6] = newEye[2]
}

func (c *PinholeCamera) setLeftDirect(newLeft vec3.T) {
	c.ApertureToWorld.Elts[1] = newLeft[0]
	c.ApertureToWorld.Elts[4] = newLeft[1]
	c.ApertureToWorld.Elts[7] = newLeft[2]
}

func (c *PinholeCamera) setUpDirect(newUp vec3.T) {
	c.ApertureToWorld.Elts[2] = newUp[0]
	c.ApertureToWorld.Elts[5] = newUp[1]
	c.ApertureToWorld.Elts[8] = newUp[2]
}
