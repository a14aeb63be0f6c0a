package render

import (
	"fmt"
	"image"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"

	"github.com/lixenwraith/beams/beam"
)

// Canvas is a beam.Surface drawing through the canvas API on a software backend
// Strokes use canvas linear gradients and source-over fills, then share the raster blur and backdrop
type Canvas struct {
	unit     float64
	backdrop Backdrop

	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	blur    float64

	layer   Layer
	blurrer blurrer
	frame   *image.RGBA
	frames  int

	onPresent func(img *image.RGBA)
}

var _ Surface = (*Canvas)(nil)

// NewCanvas creates a canvas surface; unit below 1 is treated as 1
func NewCanvas(unit float64, backdrop Backdrop) *Canvas {
	if unit < 1 {
		unit = 1
	}
	c := &Canvas{unit: unit, backdrop: backdrop}
	c.Resize(0, 0)
	return c
}

func (c *Canvas) Resize(width, height int) {
	cols := max(int(math.Ceil(float64(width)/c.unit)), 1)
	rows := max(int(math.Ceil(float64(height)/c.unit)), 1)
	c.backend = softwarebackend.New(cols, rows)
	c.cv = canvas.New(c.backend)
	c.layer.Reset(cols, rows)
	c.frame = image.NewRGBA(image.Rect(0, 0, cols, rows))
	c.backdrop.compose(c.frame, &c.layer, c.frames)
}

func (c *Canvas) Clear() {
	c.cv.ClearRect(0, 0, float64(c.cv.Width()), float64(c.cv.Height()))
}

func (c *Canvas) SetBlur(radius float64) { c.blur = radius }

func (c *Canvas) FillStroke(s beam.Stroke) {
	if s.Length <= 0 || s.Width <= 0 {
		return
	}
	inv := 1 / c.unit
	length := s.Length * inv
	width := s.Width * inv

	c.cv.Save()
	c.cv.Translate(s.X*inv, s.Y*inv)
	c.cv.Rotate(s.Angle)

	g := c.cv.CreateLinearGradient(0, 0, 0, length)
	for _, st := range s.Stops {
		g.AddColorStop(st.Offset, cssColor(st.Color, st.Alpha))
	}
	c.cv.SetFillStyle(g)
	c.cv.FillRect(-width/2, 0, width, length)
	c.cv.Restore()
}

// Present copies the canvas pixels into the layer, then blurs and composites like Raster
func (c *Canvas) Present() {
	img := c.backend.Image
	for y := 0; y < c.layer.Height; y++ {
		for x := 0; x < c.layer.Width; x++ {
			i := img.PixOffset(x, y)
			j := c.layer.offset(x, y)
			c.layer.Pix[j] = float32(img.Pix[i]) / 255
			c.layer.Pix[j+1] = float32(img.Pix[i+1]) / 255
			c.layer.Pix[j+2] = float32(img.Pix[i+2]) / 255
			c.layer.Pix[j+3] = coverage(img.Pix[i+3])
		}
	}

	c.blurrer.blur(&c.layer, blurSigma(c.blur, c.unit))
	c.blurrer.blur(&c.layer, blurSigma(c.backdrop.ContainerBlur, c.unit))
	c.backdrop.compose(c.frame, &c.layer, c.frames)
	c.frames++

	if c.onPresent != nil {
		c.onPresent(c.frame)
	}
}

func (c *Canvas) SetOnPresent(fn func(img *image.RGBA)) { c.onPresent = fn }
func (c *Canvas) Image() *image.RGBA                    { return c.frame }
func (c *Canvas) Frames() int                           { return c.frames }

// cssColor formats a straight color and clamped alpha as #rrggbbaa
func cssColor(col RGB, alpha float64) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", col.R, col.G, col.B, clamp(clampAlpha(alpha)*255))
}

// coverage recovers fill alpha from a backend pixel
// Filling a transparent pixel with alpha a stores color*a but alpha a*a
func coverage(a uint8) float32 {
	return float32(math.Sqrt(float64(a) / 255))
}
