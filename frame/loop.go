package frame

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/beams/beam"
	"go.uber.org/zap"
)

// DefaultFPS matches a common display refresh
const DefaultFPS = 60

// Loop runs frame callbacks on a fixed interval from one goroutine
// Work handed to Post runs on the same goroutine between frames
type Loop struct {
	q        queue
	interval time.Duration
	posted   chan func()
	log      *zap.Logger

	frames  atomic.Uint64
	onCrash func(r any)

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	stopped  atomic.Bool
}

// NewLoop creates a stopped loop ticking fps times per second
func NewLoop(fps int, logger *zap.Logger) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		interval: time.Second / time.Duration(fps),
		posted:   make(chan func(), 16),
		stopChan: make(chan struct{}),
		log:      logger.Named("frame"),
	}
}

func (l *Loop) RequestFrame(fn func()) beam.FrameID { return l.q.add(fn) }
func (l *Loop) CancelFrame(id beam.FrameID)         { l.q.cancel(id) }

// SetCrashHandler installs fn to receive panics from frame callbacks, call before Start
// Without a handler the panic propagates and terminates the process
func (l *Loop) SetCrashHandler(fn func(r any)) { l.onCrash = fn }

// Post queues fn to run on the loop goroutine, dropping it if the loop is stopped
func (l *Loop) Post(fn func()) {
	select {
	case l.posted <- fn:
	case <-l.stopChan:
	}
}

// Start launches the loop goroutine
// A Loop is single-use: Start after Stop does nothing
func (l *Loop) Start() {
	if l.stopped.Load() {
		l.log.Warn("start on stopped loop ignored")
		return
	}
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	l.wg.Add(1)
	go l.run()
	l.log.Debug("loop started", zap.Duration("interval", l.interval))
}

// Stop halts the loop and waits for the goroutine, safe to call more than once
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.stopped.Store(true)
		close(l.stopChan)
	})
	l.wg.Wait()
	if l.running.CompareAndSwap(true, false) {
		l.log.Debug("loop stopped", zap.Uint64("frames", l.frames.Load()))
	}
}

// Running reports whether the loop goroutine has been started and not stopped
func (l *Loop) Running() bool { return l.running.Load() }

// Pending returns the number of scheduled frame callbacks
func (l *Loop) Pending() int { return l.q.len() }

// Frames returns the number of frames run
func (l *Loop) Frames() uint64 { return l.frames.Load() }

func (l *Loop) run() {
	defer l.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			if l.onCrash == nil {
				panic(r)
			}
			l.log.Error("frame callback panicked", zap.Any("panic", r))
			l.onCrash(r)
		}
	}()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.posted:
			fn()
		case <-ticker.C:
			for _, e := range l.q.take() {
				e.fn()
			}
			l.frames.Add(1)
		}
	}
}
