package frame

import (
	"slices"
	"sync"
)

// Listeners is a resize listener registry
type Listeners struct {
	mu     sync.Mutex
	nextID uint64
	fns    map[uint64]func()
}

// Add registers fn and returns its deregistration, which is idempotent
func (ls *Listeners) Add(fn func()) (cancel func()) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.fns == nil {
		ls.fns = make(map[uint64]func())
	}
	ls.nextID++
	id := ls.nextID
	ls.fns[id] = fn

	return func() {
		ls.mu.Lock()
		defer ls.mu.Unlock()
		delete(ls.fns, id)
	}
}

// Emit calls every listener in registration order outside the lock
func (ls *Listeners) Emit() {
	ls.mu.Lock()
	ids := make([]uint64, 0, len(ls.fns))
	for id := range ls.fns {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, ls.fns[id])
	}
	ls.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Len returns the number of registered listeners
func (ls *Listeners) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.fns)
}

// Static is a viewport whose size changes only through Resize
type Static struct {
	mu            sync.Mutex
	width, height int
	ratio         float64
	listeners     Listeners
}

// NewStatic creates a viewport of the given layout size and pixel ratio
func NewStatic(width, height int, ratio float64) *Static {
	if ratio <= 0 {
		ratio = 1
	}
	return &Static{width: width, height: height, ratio: ratio}
}

func (s *Static) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *Static) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

func (s *Static) OnResize(fn func()) func() { return s.listeners.Add(fn) }

// Resize changes the size and notifies listeners synchronously
func (s *Static) Resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
	s.listeners.Emit()
}

// Listeners returns the number of registered resize listeners
func (s *Static) Listeners() int { return s.listeners.Len() }
