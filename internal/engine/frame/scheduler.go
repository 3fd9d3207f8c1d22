// Package frame provides per-frame callback scheduling for a host main loop,
// the equivalent of requestAnimationFrame / cancelAnimationFrame.
package frame

import "time"

// ID identifies a scheduled callback. The zero ID is never issued.
type ID uint64

// Callback runs once on the next frame with that frame's timestamp.
type Callback func(now time.Time)

// Scheduler queues callbacks for the next frame. It is not safe for
// concurrent use; all calls belong on the main loop goroutine.
type Scheduler struct {
	next    ID
	pending map[ID]Callback
	order   []ID
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[ID]Callback),
	}
}

// RequestFrame schedules cb for the next call to RunFrame.
func (s *Scheduler) RequestFrame(cb Callback) ID {
	s.next++
	id := s.next
	s.pending[id] = cb
	s.order = append(s.order, id)
	return id
}

// CancelFrame drops a scheduled callback. Unknown or already-run IDs are ignored.
func (s *Scheduler) CancelFrame(id ID) {
	delete(s.pending, id)
}

// Pending returns the number of callbacks waiting for the next frame.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// RunFrame runs every callback that was pending when it was called, in request
// order, and returns how many ran. Callbacks requested while running wait for
// the following frame; callbacks cancelled while running are skipped.
func (s *Scheduler) RunFrame(now time.Time) int {
	batch := s.order
	s.order = nil

	ran := 0
	for _, id := range batch {
		cb, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		cb(now)
		ran++
	}
	return ran
}
