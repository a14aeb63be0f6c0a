package beam

import (
	"sort"
)

// seqSource cycles through fixed values
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// fakeScheduler records pending callbacks without running them
type fakeScheduler struct {
	next     FrameID
	pending  map[FrameID]func()
	canceled int
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[FrameID]func())}
}

func (s *fakeScheduler) RequestFrame(fn func()) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *fakeScheduler) CancelFrame(id FrameID) {
	if _, ok := s.pending[id]; ok {
		s.canceled++
	}
	delete(s.pending, id)
}

// fire runs every callback pending at call time, in id order
func (s *fakeScheduler) fire() {
	ids := make([]FrameID, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn := s.pending[id]
		delete(s.pending, id)
		fn()
	}
}

// fakeViewport tracks resize listener registration
type fakeViewport struct {
	w, h      int
	ratio     float64
	next      int
	listeners map[int]func()
}

func newFakeViewport(w, h int, ratio float64) *fakeViewport {
	return &fakeViewport{w: w, h: h, ratio: ratio, listeners: make(map[int]func())}
}

func (v *fakeViewport) Size() (int, int)    { return v.w, v.h }
func (v *fakeViewport) PixelRatio() float64 { return v.ratio }

func (v *fakeViewport) OnResize(fn func()) func() {
	v.next++
	id := v.next
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

func (v *fakeViewport) resize(w, h int) {
	v.w, v.h = w, h
	for _, fn := range v.listeners {
		fn()
	}
}

// recordingSurface keeps the strokes of the last frame
type recordingSurface struct {
	width, height int
	resizes       int
	clears        int
	presents      int
	blur          float64
	strokes       []Stroke
}

func (s *recordingSurface) Resize(w, h int) {
	s.width, s.height = w, h
	s.resizes++
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.strokes = s.strokes[:0]
}

func (s *recordingSurface) SetBlur(r float64)    { s.blur = r }
func (s *recordingSurface) FillStroke(st Stroke) { s.strokes = append(s.strokes, st) }
func (s *recordingSurface) Present()             { s.presents++ }
