package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Drone partials relative to the root: root, fifth, octave, detuned octave
var droneVoices = []struct {
	ratio, gain float64
}{
	{1.0, 0.5},
	{1.5, 0.25},
	{2.0, 0.18},
	{2.01, 0.12},
}

const (
	droneAmplitude = 0.2
	lfoHz          = 0.1 // slow swell, one cycle per 10 s like the backdrop overlay
	levelGlide     = 0.0005
)

// Drone is an endless sine chord whose loudness glides toward the current level
type Drone struct {
	sr     beep.SampleRate
	freq   float64
	phases []float64
	lfo    float64

	level   atomic.Uint64 // float64 bits, target in 0..1
	current float64
}

var _ beep.Streamer = (*Drone)(nil)

// NewDrone creates a silent drone at the given root frequency
func NewDrone(sr beep.SampleRate, freq float64) *Drone {
	return &Drone{sr: sr, freq: freq, phases: make([]float64, len(droneVoices))}
}

// SetLevel sets the target loudness, clamped to 0..1; safe from any goroutine
func (d *Drone) SetLevel(level float64) {
	if math.IsNaN(level) {
		level = 0
	}
	level = min(max(level, 0), 1)
	d.level.Store(math.Float64bits(level))
}

// Level returns the target loudness
func (d *Drone) Level() float64 { return math.Float64frombits(d.level.Load()) }

func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	target := d.Level()
	rate := float64(d.sr)

	for i := range samples {
		d.current += (target - d.current) * levelGlide

		swell := 0.75 + 0.25*math.Sin(2*math.Pi*d.lfo)
		d.lfo = math.Mod(d.lfo+lfoHz/rate, 1)

		var sample float64
		for v, voice := range droneVoices {
			sample += voice.gain * math.Sin(2*math.Pi*d.phases[v])
			d.phases[v] = math.Mod(d.phases[v]+d.freq*voice.ratio/rate, 1)
		}
		sample *= droneAmplitude * swell * d.current

		samples[i][0] = sample
		samples[i][1] = sample
	}
	return len(samples), true
}

func (d *Drone) Err() error {
	return nil
}
