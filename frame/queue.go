package frame

import (
	"sync"

	"github.com/lixenwraith/beams/beam"
)

// queue holds frame callbacks in request order
type queue struct {
	mu      sync.Mutex
	nextID  beam.FrameID
	pending []entry
}

type entry struct {
	id beam.FrameID
	fn func()
}

func (q *queue) add(fn func()) beam.FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.pending = append(q.pending, entry{id: q.nextID, fn: fn})
	return q.nextID
}

func (q *queue) cancel(id beam.FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.pending {
		if e.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// take detaches callbacks queued so far; requests made while they run wait for the next frame
func (q *queue) take() []entry {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.pending
	q.pending = nil
	return batch
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
