// Package waker implements the wake relay described in spec.md §4.4: the
// object a polled Future retains and invokes to signal it may have made
// progress, re-admitting its owning Task to the scheduler.
package waker

import (
	"sync"

	"github.com/hollowlake/taskengine/future"
	"github.com/hollowlake/taskengine/task"
)

// Scheduler is the subset of scheduler.Scheduler the relay needs. Kept as
// a local interface so this package does not import scheduler directly
// (the dependency runs the other way: the engine wires a scheduler into
// each relay it hands to a worker).
type Scheduler interface {
	Schedule(t *task.Task)
}

// Relay holds a scheduler handle and the task it wakes. It implements
// future.Waker.
type Relay struct {
	mu        sync.Mutex
	scheduler Scheduler
	lock      sync.Locker // the engine's scheduler mutex; held during Schedule
	task      *task.Task
}

// New builds a Relay bound to (lock, scheduler, t). lock must be the same
// mutex guarding all other access to scheduler.
func New(lock sync.Locker, scheduler Scheduler, t *task.Task) *Relay {
	return &Relay{lock: lock, scheduler: scheduler, task: t}
}

// Reset rebinds an already-allocated Relay to a new task, so it can be
// reused from a pool (see pool.Pool and SPEC_FULL.md's relay-pool
// supplement) instead of being reallocated on every poll. Callers must
// only do this once no Future can still be holding this Relay as a live
// waker from an earlier Pending poll — a relay handed back while still
// retained elsewhere would let Reset silently rebind it to an unrelated
// task underneath that retained reference.
func (r *Relay) Reset(lock sync.Locker, scheduler Scheduler, t *task.Task) {
	r.mu.Lock()
	r.lock = lock
	r.scheduler = scheduler
	r.task = t
	r.mu.Unlock()
}

// Wake re-admits the relay's task if, and only if, it observes Pending:
//   - Pending: the task isn't queued anywhere else; schedule it.
//   - Scheduled: already queued by someone else; nothing to do.
//   - Running: nothing is done; the in-flight poll's post-poll CAS
//     (task.Task.Poll) then moves the task back to Pending, so a wake
//     delivered while the task is Running does not re-admit it.
//   - Completed: must not be revived.
//
// This PENDING-only gate is what preserves invariant I2 (a task admitted
// at most once simultaneously); see spec.md §9 Open Question 3 for the
// narrower race this does not close.
func (r *Relay) Wake() {
	r.mu.Lock()
	t, sched, lock := r.task, r.scheduler, r.lock
	r.mu.Unlock()

	if t.GetState() != task.Pending {
		return
	}

	lock.Lock()
	defer lock.Unlock()

	// Re-check under the lock: the state may have moved on between the
	// unlocked peek above and acquiring the scheduler mutex.
	if t.GetState() != task.Pending {
		return
	}
	sched.Schedule(t)
}

var _ future.Waker = (*Relay)(nil)
