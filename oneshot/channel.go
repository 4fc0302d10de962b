// Package oneshot implements the single-producer / single-consumer
// result channel described in spec.md §4.6: a one-slot value hand-off
// whose Receiver doubles as a future.Future, waking its consumer when the
// Sender delivers a value.
package oneshot

import (
	"sync"

	"github.com/hollowlake/taskengine/future"
)

type state int

const (
	statePending state = iota
	stateReady
)

// context is the shared mutex-guarded state between a Sender and its
// paired Receiver.
type context[T any] struct {
	mu    sync.Mutex
	state state
	waker future.Waker

	value T
	err   error // set when the producer side observed a panic or cancellation
}

// Sender is the write half of a one-shot channel. Send consumes it: a
// second Send or SendError on the same Sender panics.
type Sender[T any] struct {
	ctx  *context[T]
	sent bool
}

// Receiver is the read half of a one-shot channel. It implements
// future.Future[T]; polling it drives the handoff.
type Receiver[T any] struct {
	ctx *context[T]
}

// New returns a fresh, paired Sender/Receiver sharing a Pending context.
func New[T any]() (Sender[T], *Receiver[T]) {
	c := &context[T]{state: statePending}
	return Sender[T]{ctx: c}, &Receiver[T]{ctx: c}
}

// Send delivers value to the paired Receiver and wakes it if it is
// currently parked waiting on this channel. Per invariant I4, Send must
// be called at most once; a second call panics.
func (s *Sender[T]) Send(value T) {
	s.deliver(value, nil)
}

// SendError delivers a failure instead of a value — used to surface a
// recovered panic or a cancellation through the same channel (see
// SPEC_FULL.md's panic-isolation supplement).
func (s *Sender[T]) SendError(err error) {
	var zero T
	s.deliver(zero, err)
}

func (s *Sender[T]) deliver(value T, err error) {
	if s.sent {
		panic("oneshot: Send called more than once")
	}
	s.sent = true

	c := s.ctx
	c.mu.Lock()
	c.value = value
	c.err = err
	c.state = stateReady
	w := c.waker
	c.waker = nil
	c.mu.Unlock()

	if w != nil {
		w.Wake()
	}
}

// Poll implements future.Future[T]. While Pending it installs (or
// refreshes) cx's waker; once Ready it returns the delivered value.
// Subsequent polls are undefined per invariant I4; in this implementation
// the slot is not cleared on read, so they return the same value with
// ready=true again.
func (r *Receiver[T]) Poll(cx *future.Context) (T, bool) {
	c := r.ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == statePending {
		c.waker = cx.Waker()
		var zero T
		return zero, false
	}

	return c.value, true
}

// TryRecv is a non-blocking observation of the channel state, used by
// BlockOn-style callers that want to distinguish a delivered error from a
// delivered value without driving the Future protocol. It returns
// ok=false while Pending.
func (r *Receiver[T]) TryRecv() (value T, err error, ok bool) {
	c := r.ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == statePending {
		return value, nil, false
	}
	return c.value, c.err, true
}
