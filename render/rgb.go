package render

import (
	"github.com/lixenwraith/beams/beam"
)

// RGB is an alias to beam.RGB, allowing the render package to extend functionality
type RGB = beam.RGB

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// BlendMode selects how the beam layer lands on the background
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota // Dst = Src + Dst*(1-α), premultiplied source-over
	BlendAdd                    // Dst = clamp(Dst + Src, 255)
)

// clamp converts float to uint8 with rounding
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// Blend performs alpha blending: result = src*alpha + c*(1-alpha)
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping (light accumulation)
func Add(c, src RGB) RGB {
	return RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}
}

// Scale multiplies all channels by factor, clamped so factors above 1 saturate instead of wrapping
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: clamp(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: clamp(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

