// Package task implements the runtime's Task object: a reference-counted
// wrapper around an erased deferred computation plus the atomic lifecycle
// state machine that guarantees at-most-one concurrent poll.
package task

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hollowlake/taskengine/future"
)

// ErrPanicked is delivered through a task's paired error channel when its
// deferred computation panics during a poll, instead of letting the panic
// unwind into the worker goroutine driving it.
var ErrPanicked = errors.New("task: computation panicked")

// State is one of the four states a Task occupies over its lifetime.
type State int32

const (
	// Pending is the initial state, and the state a Task returns to when
	// its inner computation reports it is not yet ready.
	Pending State = iota
	// Scheduled means the Task has been admitted to a scheduler's
	// ordering structure and is waiting to be paired with a worker.
	Scheduled
	// Running means a worker is currently inside Poll for this Task.
	Running
	// Completed is terminal: the inner computation has produced its value.
	Completed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Task wraps an erased, unit-producing deferred computation plus its
// atomic state and an optional deadline used for earliest-deadline-first
// scheduling. The zero value is not usable; construct with New.
type Task struct {
	mu    sync.Mutex
	inner future.Future[struct{}]

	state atomic.Int32

	// deadline is nil when the task was reserved without one. Per the
	// EDF ordering convention documented in spec.md §9 Open Question 1,
	// a nil deadline compares as 0 — the most urgent possible value.
	deadline *uint64

	// heapIndex is recorded by scheduler.EDF's heap operations; nothing
	// reads it, and it is opaque to Task itself. -1 means "not in a heap".
	heapIndex int
}

// New wraps inner (the actual computation driving towards value V) so
// that, once it completes, its result is forwarded into send and the
// Task itself reports completion as a unit-producing Future. This is the
// only form of computation a Task stores; callers never see V directly
// through Task.
//
// If inner.Poll panics, the panic is recovered here and reported through
// sendErr as ErrPanicked instead of unwinding into the polling worker's
// goroutine; the task still transitions to Completed. sendErr may be nil,
// in which case a panicking computation is left to propagate.
func New[V any](inner future.Future[V], send func(V), sendErr func(error), deadline *uint64) *Task {
	wrapped := future.FromFunc(func(cx *future.Context) (result struct{}, ready bool) {
		if sendErr != nil {
			defer func() {
				if p := recover(); p != nil {
					sendErr(fmt.Errorf("%w: %v", ErrPanicked, p))
					ready = true
				}
			}()
		}

		v, ok := inner.Poll(cx)
		if !ok {
			return struct{}{}, false
		}
		send(v)
		return struct{}{}, true
	})

	t := &Task{inner: wrapped, deadline: deadline, heapIndex: -1}
	t.state.Store(int32(Pending))
	return t
}

// SetState unconditionally stores s (release ordering via atomic.Store).
func (t *Task) SetState(s State) {
	t.state.Store(int32(s))
}

// GetState loads the current state (acquire ordering via atomic.Load).
func (t *Task) GetState() State {
	return State(t.state.Load())
}

// Deadline returns the task's deadline and whether one was set.
func (t *Task) Deadline() (uint64, bool) {
	if t.deadline == nil {
		return 0, false
	}
	return *t.deadline, true
}

// effectiveDeadline returns the deadline used for EDF comparisons: the set
// deadline, or 0 (most urgent) when absent.
func (t *Task) effectiveDeadline() uint64 {
	if t.deadline == nil {
		return 0
	}
	return *t.deadline
}

// Less reports whether t is more urgent than other, for EDF heap keying.
// Tasks compare by effective deadline alone.
func (t *Task) Less(other *Task) bool {
	return t.effectiveDeadline() < other.effectiveDeadline()
}

// SetHeapIndex satisfies container/heap bookkeeping needs for
// scheduler.EDF without exposing Task's internals to that package.
func (t *Task) SetHeapIndex(idx int) { t.heapIndex = idx }

// Poll is the critical operation described in spec.md §4.1:
//
//  1. CAS Scheduled->Running. On failure (state isn't Scheduled), return
//     Pending without touching the inner computation — this is how the
//     runtime prevents a task from being polled concurrently by two
//     workers racing a waker fired mid-poll.
//  2. On success, poll the inner computation once under the per-task
//     mutex.
//  3. If Pending: CAS Running->Pending. If that fails, a wake already
//     moved the state to Scheduled; leave it alone, the scheduler now
//     owns it again.
//  4. If Ready: store Completed.
//
// Poll returns true when the inner computation completed.
func (t *Task) Poll(cx *future.Context) bool {
	if !t.state.CompareAndSwap(int32(Scheduled), int32(Running)) {
		return false
	}

	t.mu.Lock()
	_, ready := t.inner.Poll(cx)
	t.mu.Unlock()

	if !ready {
		t.state.CompareAndSwap(int32(Running), int32(Pending))
		return false
	}

	t.state.Store(int32(Completed))
	return true
}
