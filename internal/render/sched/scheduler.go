// Package sched coalesces repaint requests into per-frame batches.
//
// Many "please repaint" requests arriving between frames collapse into
// at most one invocation per display-refresh tick. The refresh tick
// itself comes from a host-provided FrameSource, so multiple terminal
// instances can own independent schedulers and tests can step frames
// by hand.
//
// The scheduler is single-threaded and cooperative: all calls must come
// from the same goroutine that runs the frame source's fire functions.
package sched

import "time"

// Callback runs at a display-refresh boundary. The timestamp is the
// one passed to Schedule, carried through for latency measurement.
type Callback func(scheduledAt time.Time)

// Handle identifies a scheduled callback for cancellation.
type Handle uint64

// FrameSource provides display-refresh ticks. Request arms a single
// fire at the next boundary and returns an id for CancelRequest.
type FrameSource interface {
	Request(fire func()) int
	CancelRequest(id int)
}

type entry struct {
	handle Handle
	cb     Callback
	at     time.Time
}

// Scheduler batches callbacks onto display-refresh boundaries.
// At most one frame request is armed at a time.
type Scheduler struct {
	source    FrameSource
	next      Handle
	pending   []entry
	armed     bool
	requestID int
}

// New creates a scheduler driven by the given frame source.
func New(source FrameSource) *Scheduler {
	return &Scheduler{source: source}
}

// Schedule registers a callback to run at the next refresh boundary
// and returns a handle usable with Cancel. Callbacks registered while
// a batch is flushing land in the next batch, never the current one.
func (s *Scheduler) Schedule(cb Callback, scheduledAt time.Time) Handle {
	s.next++
	s.pending = append(s.pending, entry{handle: s.next, cb: cb, at: scheduledAt})
	if !s.armed {
		s.armed = true
		s.requestID = s.source.Request(s.flush)
	}
	return s.next
}

// Cancel removes a pending callback if it has not fired. Cancelling an
// unknown or already-fired handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	for i, e := range s.pending {
		if e.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	if len(s.pending) == 0 && s.armed {
		s.armed = false
		s.source.CancelRequest(s.requestID)
	}
}

// Pending returns the number of callbacks awaiting the next boundary.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// flush runs one batch. The pending set is moved out before any
// callback runs, so render-triggers-render chains re-arm for the next
// frame instead of growing the call stack. A panicking callback does
// not stop the batch; the first panic value is re-raised once the
// batch completes and the next frame, if any, is armed.
func (s *Scheduler) flush() {
	s.armed = false
	batch := s.pending
	s.pending = nil

	var firstPanic any
	for _, e := range batch {
		if r := s.invoke(e); r != nil && firstPanic == nil {
			firstPanic = r
		}
	}

	if len(s.pending) > 0 && !s.armed {
		s.armed = true
		s.requestID = s.source.Request(s.flush)
	}
	if firstPanic != nil {
		panic(firstPanic)
	}
}

// invoke runs one callback, converting a panic into a return value.
func (s *Scheduler) invoke(e entry) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	e.cb(e.at)
	return nil
}
