package frame

import (
	"github.com/lixenwraith/beams/beam"
)

// Manual is a scheduler advanced explicitly by its owner
type Manual struct {
	q      queue
	frames uint64
}

// NewManual creates an idle manual scheduler
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) RequestFrame(fn func()) beam.FrameID { return m.q.add(fn) }
func (m *Manual) CancelFrame(id beam.FrameID)         { m.q.cancel(id) }

// Advance runs the callbacks pending at call time and returns how many ran
func (m *Manual) Advance() int {
	batch := m.q.take()
	for _, e := range batch {
		e.fn()
	}
	m.frames++
	return len(batch)
}

// Pending returns the number of scheduled callbacks
func (m *Manual) Pending() int { return m.q.len() }

// Frames returns the number of Advance calls
func (m *Manual) Frames() uint64 { return m.frames }
