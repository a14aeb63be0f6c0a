package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// Brightness reports the loudness source in 0..1, typically a beam field
type Brightness interface {
	Brightness() float64
}

// Engine plays the drone on the system speaker
// Every method is safe before Initialize and after Cleanup, doing nothing
type Engine struct {
	mu          sync.Mutex
	cfg         Config
	drone       *Drone
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	mixer       *beep.Mixer
	initialized bool
	log         *zap.Logger
}

// NewEngine creates an engine; nothing touches the audio device until Initialize
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.normalized()
	sr := beep.SampleRate(cfg.SampleRate)

	e := &Engine{
		cfg:   cfg,
		drone: NewDrone(sr, cfg.BaseFreq),
		mixer: &beep.Mixer{},
		log:   logger.Named("audio"),
	}
	e.volume = &effects.Volume{Streamer: e.drone, Base: 2}
	e.applyVolume(cfg.MasterVolume)
	e.ctrl = &beep.Ctrl{Streamer: e.volume}
	return e
}

// Initialize opens the speaker and starts the drone, a disabled config is a no-op
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized || !e.cfg.Enabled {
		return nil
	}

	sr := beep.SampleRate(e.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Millisecond*100)); err != nil {
		return err
	}

	e.ctrl.Paused = false
	e.mixer.Add(e.ctrl)
	speaker.Play(e.mixer)
	e.initialized = true
	e.log.Debug("speaker initialized", zap.Int("sample_rate", e.cfg.SampleRate))
	return nil
}

// Cleanup silences the drone and clears the mixer
func (e *Engine) Cleanup() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}

	speaker.Lock()
	e.ctrl.Paused = true
	e.mixer.Clear()
	speaker.Unlock()

	e.initialized = false
	e.log.Debug("speaker released")
}

// Initialized reports whether the speaker is playing
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// SetLevel forwards loudness to the drone
func (e *Engine) SetLevel(level float64) { e.drone.SetLevel(level) }

// SetVolume changes the master volume in 0..1
func (e *Engine) SetVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cfg.MasterVolume = min(max(v, 0), 1)
	if e.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	e.applyVolume(e.cfg.MasterVolume)
}

func (e *Engine) applyVolume(v float64) {
	e.volume.Silent = v <= 0
	if v > 0 {
		e.volume.Volume = math.Log2(v)
	}
}

// Follow polls src every interval and tracks its brightness until ctx is done
// Brightness is scaled by the strongest pulsing opacity a beam can reach
func (e *Engine) Follow(ctx context.Context, src Brightness, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.drone.SetLevel(0)
			return
		case <-ticker.C:
			e.drone.SetLevel(src.Brightness() / peakBrightness)
		}
	}
}

// peakBrightness is the largest pulsing opacity, 0.8 * (0.9 + 0.3) at full intensity
const peakBrightness = 0.96
