package render

import (
	"image"
	"math"

	"github.com/lixenwraith/beams/beam"
)

// Raster is a software beam.Surface
// One raster pixel covers unit x unit surface pixels, so coarse hosts such as a terminal can
// run the field at full surface scale and rasterize cheaply
type Raster struct {
	unit     float64
	backdrop Backdrop

	width, height int // surface pixels
	blur          float64

	layer   Layer
	blurrer blurrer
	frame   *image.RGBA
	frames  int

	onPresent func(img *image.RGBA)
}

var _ Surface = (*Raster)(nil)

// NewRaster creates an empty raster; unit below 1 is treated as 1
func NewRaster(unit float64, backdrop Backdrop) *Raster {
	if unit < 1 {
		unit = 1
	}
	return &Raster{
		unit:     unit,
		backdrop: backdrop,
		frame:    image.NewRGBA(image.Rect(0, 0, 0, 0)),
	}
}

// Resize sets the surface extent; the raster spans ceil(extent/unit) pixels
func (r *Raster) Resize(width, height int) {
	r.width, r.height = width, height
	cols := int(math.Ceil(float64(width) / r.unit))
	rows := int(math.Ceil(float64(height) / r.unit))
	r.layer.Reset(cols, rows)
	r.frame = image.NewRGBA(image.Rect(0, 0, r.layer.Width, r.layer.Height))
	r.backdrop.compose(r.frame, &r.layer, r.frames)
}

func (r *Raster) Clear()                 { r.layer.Clear() }
func (r *Raster) SetBlur(radius float64) { r.blur = radius }

// FillStroke scan-converts the rotated rectangle, sampling pixel centers
func (r *Raster) FillStroke(s beam.Stroke) {
	if s.Length <= 0 || s.Width <= 0 {
		return
	}

	inv := 1 / r.unit
	ax, ay := s.X*inv, s.Y*inv
	halfW := s.Width * inv / 2
	length := s.Length * inv
	sin, cos := math.Sincos(s.Angle)

	// Bounding box of the rotated rectangle
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{-halfW, 0}, {halfW, 0}, {halfW, length}, {-halfW, length}} {
		px := ax + c[0]*cos - c[1]*sin
		py := ay + c[0]*sin + c[1]*cos
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}

	x0 := max(int(math.Floor(minX)), 0)
	y0 := max(int(math.Floor(minY)), 0)
	x1 := min(int(math.Ceil(maxX)), r.layer.Width-1)
	y1 := min(int(math.Ceil(maxY)), r.layer.Height-1)

	stops := s.Stops[:]
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - ay
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - ax

			// Inverse rotation into beam space
			lx := dx*cos + dy*sin
			ly := -dx*sin + dy*cos
			if lx < -halfW || lx > halfW || ly < 0 || ly > length {
				continue
			}

			c, a := sampleGradient(stops, ly/length)
			if a <= 0 {
				continue
			}
			r.layer.AddPremul(x, y, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(a))
		}
	}
}

// Present blurs the beam layer and composites the frame
// Strokes add linearly, so blurring the summed layer equals blurring each stroke
func (r *Raster) Present() {
	r.blurrer.blur(&r.layer, blurSigma(r.blur, r.unit))
	r.blurrer.blur(&r.layer, blurSigma(r.backdrop.ContainerBlur, r.unit))
	r.backdrop.compose(r.frame, &r.layer, r.frames)
	r.frames++

	if r.onPresent != nil {
		r.onPresent(r.frame)
	}
}

// SetOnPresent registers fn to receive each composited frame on the presenting goroutine
func (r *Raster) SetOnPresent(fn func(img *image.RGBA)) { r.onPresent = fn }

// Image returns the last composited frame, reused across frames
func (r *Raster) Image() *image.RGBA { return r.frame }

// Layer exposes the beam layer of the current frame
func (r *Raster) Layer() *Layer { return &r.layer }

// Frames returns the number of presented frames
func (r *Raster) Frames() int { return r.frames }

// Unit returns surface pixels per raster pixel
func (r *Raster) Unit() float64 { return r.unit }

// Backdrop returns the compositing settings
func (r *Raster) Backdrop() Backdrop { return r.backdrop }

// SetBackdrop replaces the compositing settings from the next frame on
func (r *Raster) SetBackdrop(b Backdrop) { r.backdrop = b }
