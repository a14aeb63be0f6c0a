package render

import (
	"image"
	"math"
	"time"
)

// Backdrop defaults matching the landing page container
const (
	DefaultContainerBlur = 15.0
	DefaultOverlayPeriod = 10 * time.Second
	overlayTint          = 0.05 // white at 5% under the animated opacity
	overlayLow           = 0.05
	overlayHigh          = 0.15
)

// Backdrop composites a blurred beam layer over the container
type Backdrop struct {
	Background RGB
	Mode       BlendMode

	// ContainerBlur is applied on top of the beam-pass blur, in surface units
	ContainerBlur float64

	// Overlay enables the translucent white layer pulsing over OverlayPeriod
	Overlay       bool
	OverlayPeriod time.Duration

	// FPS converts presented frames into overlay time
	FPS int
}

// DefaultBackdrop returns a white container with the overlay on
func DefaultBackdrop() Backdrop {
	return Backdrop{
		Background:    RGBWhite,
		Mode:          BlendAlpha,
		ContainerBlur: DefaultContainerBlur,
		Overlay:       true,
		OverlayPeriod: DefaultOverlayPeriod,
		FPS:           60,
	}
}

// elapsed converts a frame index into overlay time
func (b Backdrop) elapsed(frame int) time.Duration {
	fps := b.FPS
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(frame) * time.Second / time.Duration(fps)
}

// OverlayAlpha returns the effective overlay alpha at a frame index, zero when disabled
func (b Backdrop) OverlayAlpha(frame int) float64 {
	if !b.Overlay {
		return 0
	}
	return overlayTint * OverlayOpacity(b.elapsed(frame), b.OverlayPeriod)
}

// OverlayOpacity walks keyframes 0.05 -> 0.15 -> 0.05 over period with ease-in-out segments
func OverlayOpacity(t, period time.Duration) float64 {
	if period <= 0 {
		return overlayLow
	}
	phase := float64(t%period) / float64(period)
	if phase < 0 {
		phase += 1
	}

	if phase < 0.5 {
		return overlayLow + (overlayHigh-overlayLow)*easeInOut(phase*2)
	}
	return overlayHigh + (overlayLow-overlayHigh)*easeInOut((phase-0.5)*2)
}

// easeInOut is cubic-bezier(0.42, 0, 0.58, 1)
func easeInOut(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	const x1, x2 = 0.42, 0.58
	bezier := func(s, p1, p2 float64) float64 {
		inv := 1 - s
		return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
	}

	// x(s) is monotonic, bisect for the curve parameter
	lo, hi := 0.0, 1.0
	s := x
	for i := 0; i < 32; i++ {
		s = (lo + hi) / 2
		if bezier(s, x1, x2) < x {
			lo = s
		} else {
			hi = s
		}
	}
	return bezier(s, 0, 1)
}

// compose writes the layer over the background into dst, which must match the layer size
func (b Backdrop) compose(dst *image.RGBA, l *Layer, frame int) {
	overlay := b.OverlayAlpha(frame)
	bg := b.Background

	for y := 0; y < l.Height; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+l.Width*4]
		for x := 0; x < l.Width; x++ {
			r, g, bl, a := l.At(x, y)
			src := RGB{R: clamp(float64(r) * 255), G: clamp(float64(g) * 255), B: clamp(float64(bl) * 255)}

			var c RGB
			switch b.Mode {
			case BlendAdd:
				c = Add(bg, src)
			default:
				c = Add(Scale(bg, 1-float64(a)), src)
			}

			if overlay > 0 {
				c = Blend(c, RGBWhite, overlay)
			}

			p := row[x*4 : x*4+4 : x*4+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
		}
	}
}

// blurSigma converts a radius in surface units into raster pixels
func blurSigma(radius, unit float64) float64 {
	if unit <= 0 {
		unit = 1
	}
	return math.Max(radius, 0) / unit
}
