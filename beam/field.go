package beam

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Option configures a Field at construction
type Option func(*Field)

// WithSource injects the random source, the default is seeded from the clock
func WithSource(src Source) Option {
	return func(f *Field) { f.rng = src }
}

// WithLogger attaches a logger, the default discards
func WithLogger(logger *zap.Logger) Option {
	return func(f *Field) {
		if logger != nil {
			f.log = logger.Named("field")
		}
	}
}

// WithSurface mounts a surface at construction
func WithSurface(s Surface) Option {
	return func(f *Field) { f.surface = s }
}

// Field is the beam field renderer
// Frame and resize callbacks are expected on one goroutine; the mutex only makes
// Start/Stop/Configure from other goroutines safe
type Field struct {
	mu sync.Mutex

	cfg     Config
	rng     Source
	log     *zap.Logger
	sched   Scheduler
	view    Viewport
	surface Surface

	beams         []Beam
	width, height int
	brightness    float64

	running    bool
	pending    FrameID
	hasPending bool
	unlisten   func()
}

// New creates a stopped field; a nil viewport leaves the surface unsized until Resize
func New(cfg Config, sched Scheduler, view Viewport, opts ...Option) *Field {
	f := &Field{
		cfg:   cfg.clone(),
		sched: sched,
		view:  view,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = NewSource(uint64(time.Now().UnixNano()))
	}
	if f.surface != nil {
		f.resizeLocked()
	}
	return f
}

// Attach mounts a surface, sizes it and regenerates the beams
func (f *Field) Attach(s Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.surface = s
	if s != nil {
		f.resizeLocked()
	}
}

// Start registers the resize listener and schedules the first tick
func (f *Field) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return
	}
	f.running = true

	if f.view != nil {
		f.unlisten = f.view.OnResize(f.Resize)
	}
	if f.surface != nil {
		f.resizeLocked()
	}
	f.scheduleLocked()

	f.log.Debug("started",
		zap.Int("width", f.width),
		zap.Int("height", f.height),
		zap.Int("beams", len(f.beams)))
}

// Stop cancels the pending tick and deregisters the resize listener
func (f *Field) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running {
		return
	}
	f.running = false

	if f.hasPending {
		f.sched.CancelFrame(f.pending)
		f.hasPending = false
	}
	if f.unlisten != nil {
		f.unlisten()
		f.unlisten = nil
	}

	f.log.Debug("stopped")
}

// Run starts the field and stops it when ctx is done
func (f *Field) Run(ctx context.Context) error {
	f.Start()
	defer f.Stop()

	<-ctx.Done()
	return ctx.Err()
}

// Configure replaces the configuration, regenerating the beams and restarting a running field
func (f *Field) Configure(cfg Config) {
	f.mu.Lock()
	running := f.running
	f.mu.Unlock()

	if running {
		f.Stop()
	}

	f.mu.Lock()
	f.cfg = cfg.clone()
	if f.surface != nil {
		f.resizeLocked()
	}
	f.log.Debug("configured",
		zap.Stringer("intensity", cfg.Intensity),
		zap.Stringer("color_mode", cfg.ColorMode),
		zap.Strings("custom_colors", cfg.CustomColors))
	f.mu.Unlock()

	if running {
		f.Start()
	}
}

// Config returns a copy of the active configuration
func (f *Field) Config() Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg.clone()
}

// Resize recomputes the surface extent from the viewport and regenerates the beams
func (f *Field) Resize() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.surface == nil {
		return
	}
	f.resizeLocked()
}

func (f *Field) resizeLocked() {
	w, h := f.width, f.height
	if f.view != nil {
		vw, vh := f.view.Size()
		ratio := f.view.PixelRatio()
		if ratio <= 0 {
			ratio = 1
		}
		w = int(math.Round(float64(vw) * ratio))
		h = int(math.Round(float64(vh) * ratio))
	}
	f.width, f.height = w, h
	f.surface.Resize(w, h)

	palette := f.cfg.palette()
	n := f.cfg.BeamCount()
	f.beams = make([]Beam, n)
	for i := range f.beams {
		f.beams[i] = newBeam(float64(w), float64(h), palette, f.rng)
	}

	f.log.Debug("resized", zap.Int("width", w), zap.Int("height", h), zap.Int("beams", n))
}

// SetSize fixes the surface extent when no viewport drives the field
func (f *Field) SetSize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.width, f.height = width, height
	if f.surface != nil && f.view == nil {
		f.resizeLocked()
	}
}

// Step advances and paints one frame without scheduling another
func (f *Field) Step() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stepLocked()
}

func (f *Field) tick() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hasPending = false
	if !f.running {
		return
	}
	f.stepLocked()
	f.scheduleLocked()
}

func (f *Field) scheduleLocked() {
	if f.sched == nil {
		return
	}
	f.pending = f.sched.RequestFrame(f.tick)
	f.hasPending = true
}

func (f *Field) stepLocked() {
	s := f.surface
	if s == nil {
		return
	}

	s.Clear()
	s.SetBlur(f.cfg.Blur)

	palette := f.cfg.palette()
	factor := f.cfg.Intensity.Factor()
	width, height := float64(f.width), float64(f.height)
	total := len(f.beams)

	sum := 0.0
	for i := range f.beams {
		b := &f.beams[i]
		if b.advance() {
			b.recycle(i, total, width, height, palette, f.rng)
		}

		opacity := PulsingOpacity(b.Opacity, b.Pulse, factor)
		sum += opacity
		s.FillStroke(b.stroke(palette, opacity))
	}

	if total > 0 {
		f.brightness = sum / float64(total)
	}

	s.Present()
}

// Beams returns a snapshot of the beam set
func (f *Field) Beams() []Beam {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Beam(nil), f.beams...)
}

// Size returns the surface extent in surface pixels
func (f *Field) Size() (width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height
}

// Brightness returns the mean pulsing opacity of the last painted frame
func (f *Field) Brightness() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.brightness
}

// Running reports whether the field is scheduled
func (f *Field) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}
