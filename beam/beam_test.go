package beam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBeamMidpoint(t *testing.T) {
	rng := &seqSource{vals: []float64{0.5}}
	b := newBeam(800, 600, nil, rng)

	assert.InDelta(t, -30, b.Angle, 1e-9)
	assert.InDelta(t, 225, b.Hue, 1e-9)
	assert.InDelta(t, 400, b.X, 1e-9)
	assert.InDelta(t, 300, b.Y, 1e-9)
	assert.InDelta(t, 80, b.Width, 1e-9)
	assert.InDelta(t, 1500, b.Length, 1e-9)
	assert.InDelta(t, 1.2, b.Speed, 1e-9)
	assert.InDelta(t, 0.55, b.Opacity, 1e-9)
	assert.InDelta(t, math.Pi, b.Pulse, 1e-9)
	assert.InDelta(t, 0.035, b.PulseSpeed, 1e-9)
}

func TestNewBeamRanges(t *testing.T) {
	rng := NewSource(7)
	const w, h = 1200.0, 700.0

	for i := 0; i < 500; i++ {
		b := newBeam(w, h, nil, rng)
		require.GreaterOrEqual(t, b.Angle, -35.0)
		require.Less(t, b.Angle, -25.0)
		require.GreaterOrEqual(t, b.X, -w*0.25)
		require.Less(t, b.X, w*1.25)
		require.GreaterOrEqual(t, b.Y, -h*0.25)
		require.Less(t, b.Y, h*1.25)
		require.GreaterOrEqual(t, b.Width, 40.0)
		require.Less(t, b.Width, 120.0)
		require.GreaterOrEqual(t, b.Speed, 0.6)
		require.Less(t, b.Speed, 1.8)
		require.GreaterOrEqual(t, b.Opacity, 0.4)
		require.Less(t, b.Opacity, 0.7)
		require.GreaterOrEqual(t, b.Hue, 190.0)
		require.Less(t, b.Hue, 260.0)
		require.GreaterOrEqual(t, b.PulseSpeed, 0.02)
		require.Less(t, b.PulseSpeed, 0.05)
		require.Equal(t, h*2.5, b.Length)
	}
}

func TestNewBeamCustomPalette(t *testing.T) {
	palette := []string{"#ffffff", "#9058ff", "#FFF2AF"}
	rng := &seqSource{vals: []float64{0.5}}
	b := newBeam(800, 600, palette, rng)

	assert.InDelta(t, HexToHue("#9058ff"), b.Hue, 1e-9)
}

func TestAdvance(t *testing.T) {
	b := Beam{Y: 10, Length: 50, Speed: 1.5, Pulse: 1, PulseSpeed: 0.25}

	exited := b.advance()
	assert.False(t, exited)
	assert.InDelta(t, 8.5, b.Y, 1e-9)
	assert.InDelta(t, 1.25, b.Pulse, 1e-9)

	b.Y = -149
	assert.True(t, b.advance(), "tail at -100.5 is past the exit margin")
}

func TestRecycleKeepsOrientationAndPhase(t *testing.T) {
	rng := &seqSource{vals: []float64{0.5}}
	b := Beam{
		X: -500, Y: -2000, Width: 50, Length: 1500, Angle: -31.5,
		Speed: 1.7, Opacity: 0.42, Hue: 200, Pulse: 12.3, PulseSpeed: 0.04,
	}

	b.recycle(4, 30, 900, 600, nil, rng)

	assert.Equal(t, 700.0, b.Y)
	assert.Equal(t, -31.5, b.Angle)
	assert.Equal(t, 1500.0, b.Length)
	assert.Equal(t, 12.3, b.Pulse)
	assert.Equal(t, 0.04, b.PulseSpeed)

	// index 4 lands in the middle band
	assert.InDelta(t, 450, b.X, 1e-9)
	assert.InDelta(t, 150, b.Width, 1e-9)
	assert.InDelta(t, 0.7, b.Speed, 1e-9)
	assert.InDelta(t, 0.65, b.Opacity, 1e-9)
	assert.InDelta(t, 190+4*70.0/30, b.Hue, 1e-9)
}

func TestRecycleBands(t *testing.T) {
	rng := NewSource(99)
	const w = 1500.0

	for i := 0; i < 300; i++ {
		var b Beam
		b.recycle(i, 30, w, 800, nil, rng)

		lo, hi := Band(i%3, w)
		require.GreaterOrEqual(t, b.X, lo, "index %d", i)
		require.LessOrEqual(t, b.X, hi, "index %d", i)
		require.InDelta(t, w/3, hi-lo, 1e-9)
	}
}

func TestRecycleCustomHue(t *testing.T) {
	palette := []string{"#ff0000", "#00ff00", "#0000ff"}
	rng := &seqSource{vals: []float64{0.25}}

	for i, want := range []float64{0, 120, 240, 0, 120} {
		var b Beam
		b.recycle(i, 30, 900, 600, palette, rng)
		assert.InDelta(t, want, b.Hue, 1e-9, "index %d", i)
	}
}

func TestBand(t *testing.T) {
	lo, hi := Band(0, 900)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 300.0, hi)

	lo, hi = Band(5, 900)
	assert.Equal(t, 600.0, lo)
	assert.Equal(t, 900.0, hi)
}

func TestPulsingOpacityBounded(t *testing.T) {
	for _, pulse := range []float64{0, math.Pi / 2, -math.Pi / 2, 1e6, -1e6, 1e15, math.MaxFloat64} {
		for _, in := range []Intensity{IntensitySubtle, IntensityMedium, IntensityStrong} {
			p := PulsingOpacity(0.8, pulse, in.Factor())
			require.False(t, math.IsNaN(p), "pulse=%v", pulse)
			require.False(t, math.IsInf(p, 0), "pulse=%v", pulse)
			require.GreaterOrEqual(t, p, 0.8*0.6*in.Factor()-1e-12)
			require.LessOrEqual(t, p, 0.8*1.2*in.Factor()+1e-12)
		}
	}
}

func TestStrokeCustomSubstitution(t *testing.T) {
	palette := []string{"#ffffff", "#9058ff", "#F4F8D3"}
	// hue 150 selects the middle palette slot
	b := Beam{X: 10, Y: 20, Width: 100, Length: 400, Angle: -30, Hue: 150}

	s := b.stroke(palette, 0.5)

	assert.InDelta(t, -math.Pi/6, s.Angle, 1e-12)
	for _, stop := range s.Stops {
		assert.Equal(t, RGB{R: 0x70, G: 0x30, B: 0xff}, stop.Color)
	}
	assert.Equal(t, [6]float64{0, 0.1, 0.4, 0.6, 0.9, 1}, offsets(s))
	assert.InDelta(t, 100.0/255, s.Stops[1].Alpha, 1e-12)
	assert.InDelta(t, 128.0/255, s.Stops[2].Alpha, 1e-12)
	assert.Equal(t, s.Stops[1].Alpha, s.Stops[4].Alpha)
	assert.Equal(t, s.Stops[2].Alpha, s.Stops[3].Alpha)
	assert.Zero(t, s.Stops[0].Alpha)
	assert.Zero(t, s.Stops[5].Alpha)
}

func TestStrokeWhiteRoutesToTintedWhite(t *testing.T) {
	palette := []string{"#ffffff", "#9058ff", "#F4F8D3"}
	b := Beam{Hue: 0}
	s := b.stroke(palette, 0.5)
	assert.Equal(t, RGB{R: 0xc8, G: 0xc8, B: 0xff}, s.Stops[2].Color)
}

func TestStrokeHueSelectsPaletteSlot(t *testing.T) {
	palette := []string{"#ffffff", "#9058ff", "#F4F8D3"}

	// the purple hue lands in the last third of the circle
	b := Beam{Hue: HexToHue("#9058ff")}
	s := b.stroke(palette, 0.5)
	assert.Equal(t, RGB{R: 0xff, G: 0xf2, B: 0xaf}, s.Stops[2].Color)
}

func TestStrokeDefaultModeAlphaUnclamped(t *testing.T) {
	b := Beam{Hue: 220, Length: 100, Width: 10}
	s := b.stroke(nil, 0.9)

	assert.Equal(t, HueColor(220), s.Stops[2].Color)
	assert.InDelta(t, 0.72, s.Stops[1].Alpha, 1e-12)
	assert.InDelta(t, 1.35, s.Stops[2].Alpha, 1e-12, "surface clamps, the field does not")
}

func TestStrokeInvalidPaletteFallsBackToHue(t *testing.T) {
	b := Beam{Hue: 0}
	s := b.stroke([]string{"chartreuse"}, 0.5)
	assert.Equal(t, HueColor(0), s.Stops[2].Color)
}

func offsets(s Stroke) [6]float64 {
	var out [6]float64
	for i, st := range s.Stops {
		out[i] = st.Offset
	}
	return out
}
