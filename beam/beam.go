package beam

import (
	"math"
)

// Motion and appearance constants
const (
	lengthFactor = 2.5 // beam length relative to surface height
	exitMargin   = 100 // distance past the top edge before recycling
	reentryDepth = 100 // distance below the bottom edge on recycle
	bandCount    = 3   // vertical bands used for recycle placement
	bandJitter   = 0.5 // fraction of band width used for x jitter
	defaultHue   = 190 // start of the default hue band
	hueSpan      = 70  // width of the default hue band
	pulseBase    = 0.9 // pulsing opacity midline
	pulseDepth   = 0.3 // pulsing opacity amplitude
	baseAngle    = -35 // degrees
	angleJitter  = 10  // degrees
)

// Beam is one decorative streak
type Beam struct {
	X, Y       float64
	Width      float64
	Length     float64
	Angle      float64 // degrees
	Speed      float64
	Opacity    float64
	Hue        float64
	Pulse      float64
	PulseSpeed float64
}

// newBeam scatters a beam anywhere in a box 1.5x the surface, centered on it
func newBeam(width, height float64, palette []string, rng Source) Beam {
	angle := baseAngle + rng.Float64()*angleJitter

	hue := defaultHue + rng.Float64()*hueSpan
	if len(palette) > 0 {
		hue = HexToHue(palette[int(rng.Float64()*float64(len(palette)))%len(palette)])
	}

	return Beam{
		X:          rng.Float64()*width*1.5 - width*0.25,
		Y:          rng.Float64()*height*1.5 - height*0.25,
		Width:      40 + rng.Float64()*80,
		Length:     height * lengthFactor,
		Angle:      angle,
		Speed:      0.6 + rng.Float64()*1.2,
		Opacity:    0.4 + rng.Float64()*0.3,
		Hue:        hue,
		Pulse:      rng.Float64() * math.Pi * 2,
		PulseSpeed: 0.02 + rng.Float64()*0.03,
	}
}

// advance moves the beam one tick and reports whether it left the top edge
func (b *Beam) advance() bool {
	b.Y -= b.Speed
	b.Pulse += b.PulseSpeed
	return b.Y+b.Length < -exitMargin
}

// recycle re-enters the beam below the bottom edge in band index%3
// Angle, Length and Pulse carry over
func (b *Beam) recycle(index, total int, width, height float64, palette []string, rng Source) {
	lo, hi := Band(index, width)
	spacing := hi - lo

	b.Y = height + reentryDepth
	b.X = lo + spacing/2 + (rng.Float64()-0.5)*spacing*bandJitter
	b.Width = 100 + rng.Float64()*100
	b.Speed = 0.5 + rng.Float64()*0.4

	if len(palette) > 0 {
		b.Hue = HexToHue(palette[index%len(palette)])
	} else {
		b.Hue = defaultHue + float64(index)*hueSpan/float64(max(total, 1))
	}

	b.Opacity = 0.5 + rng.Float64()*0.3
}

// Band returns the [start, end] x-range of the recycle band for a beam index
func Band(index int, width float64) (start, end float64) {
	spacing := width / bandCount
	column := index % bandCount
	if column < 0 {
		column += bandCount
	}
	start = float64(column) * spacing
	return start, start + spacing
}

// PulsingOpacity returns opacity * (0.9 + sin(pulse) * 0.3) * factor
func PulsingOpacity(opacity, pulse, factor float64) float64 {
	return opacity * (pulseBase + math.Sin(pulse)*pulseDepth) * factor
}

// gradientOffsets are the stop positions along the beam length
var gradientOffsets = [6]float64{0, 0.1, 0.4, 0.6, 0.9, 1.0}

// stroke builds the paint for a beam at the given pulsing opacity
func (b *Beam) stroke(palette []string, opacity float64) Stroke {
	s := Stroke{
		X:      b.X,
		Y:      b.Y,
		Angle:  b.Angle * math.Pi / 180,
		Width:  b.Width,
		Length: b.Length,
	}

	var (
		color     RGB
		edge, mid float64
		paletted  bool
	)

	if len(palette) > 0 {
		paint := Substitute(palette[PaletteIndex(b.Hue, len(palette))])
		color, paletted = ParseHex(paint)
	}

	if paletted {
		// Byte-quantized alpha, as a hex alpha suffix on the paint would be
		edge = quantizeAlpha(opacity * 200)
		mid = quantizeAlpha(opacity * 255)
	} else {
		color = HueColor(b.Hue)
		edge = opacity * 0.8
		mid = opacity * 1.5
	}

	alphas := [6]float64{0, edge, mid, mid, edge, 0}
	for i := range s.Stops {
		s.Stops[i] = ColorStop{Offset: gradientOffsets[i], Color: color, Alpha: alphas[i]}
	}
	return s
}

func quantizeAlpha(v float64) float64 {
	v = math.Round(v)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return v / 255
}
