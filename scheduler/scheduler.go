// Package scheduler implements the task admission queue, worker-idle
// queue, and pairing logic described in spec.md §4.2: FIFO and
// earliest-deadline-first orderings sharing a common default
// Schedule/Notify behaviour.
package scheduler

import (
	"github.com/hollowlake/taskengine/task"
)

// WorkerInfo is broadcast by an idle worker: its personal mailbox, used
// by the scheduler to hand it exactly one task, and a wake channel used
// to un-park it. Both channels are owned by the worker; the scheduler
// only ever sends on them.
type WorkerInfo struct {
	Mailbox chan *task.Task
	Wake    chan struct{}
}

// unpark signals w without blocking: the wake channel is always buffered
// (capacity 1), so at most one pending wake is coalesced.
func (w WorkerInfo) unpark() {
	select {
	case w.Wake <- struct{}{}:
	default:
	}
}

// Ordering is the pluggable admission-queue strategy shared by FIFO and
// EDF: register admits a task, take removes the next-to-run one.
type Ordering interface {
	register(t *task.Task)
	take() (*task.Task, bool)
}

// Scheduler is the capability set the engine and workers depend on. FIFO
// and EDF both embed *Base, which implements Schedule and Notify in terms
// of the embedding type's Ordering.
type Scheduler interface {
	// Register admits a task to the ordering structure. Per invariant I2
	// a task may be registered only while it is not already admitted.
	Register(t *task.Task)

	// Take removes and returns the next-to-run task, or (nil, false).
	Take() (*task.Task, bool)

	// PendingWorkers returns the idle-worker queue, ordered by arrival.
	PendingWorkers() *WorkerQueue

	// WorkerReceiver returns the channel new WorkerInfo broadcasts arrive
	// on.
	WorkerReceiver() <-chan WorkerInfo

	// Schedule transitions t to Scheduled, admits it, and attempts
	// pairing with an idle worker.
	Schedule(t *task.Task)

	// Notify drains newly-arrived workers into the pending queue, then
	// pairs pending workers with available tasks until either queue is
	// exhausted.
	Notify()
}

// WorkerQueue is a simple arrival-ordered FIFO of idle WorkerInfo records.
type WorkerQueue struct {
	items []WorkerInfo
}

// PushBack appends w to the back of the queue.
func (q *WorkerQueue) PushBack(w WorkerInfo) {
	q.items = append(q.items, w)
}

// PushFront re-inserts w at the front — used by Notify when a worker was
// popped but no task was available to pair it with.
func (q *WorkerQueue) PushFront(w WorkerInfo) {
	q.items = append([]WorkerInfo{w}, q.items...)
}

// PopFront removes and returns the oldest entry, or (zero, false).
func (q *WorkerQueue) PopFront() (WorkerInfo, bool) {
	if len(q.items) == 0 {
		return WorkerInfo{}, false
	}
	w := q.items[0]
	q.items = q.items[1:]
	return w, true
}

// Len reports the number of idle workers currently queued.
func (q *WorkerQueue) Len() int { return len(q.items) }

// Base implements the shared Schedule/Notify behaviour of spec.md §4.2 in
// terms of an embedding Ordering. FIFO and EDF embed *Base and supply
// register/take via their own Ordering implementation.
type Base struct {
	ordering Ordering
	workers  WorkerQueue
	receiver <-chan WorkerInfo
}

// NewBase wires a Base over the given Ordering and worker-broadcast
// receiver. Ordering implementations call this from their constructor.
func NewBase(ordering Ordering, receiver <-chan WorkerInfo) *Base {
	return &Base{ordering: ordering, receiver: receiver}
}

// Register admits t to the ordering structure.
func (b *Base) Register(t *task.Task) { b.ordering.register(t) }

// Take removes the next-to-run task.
func (b *Base) Take() (*task.Task, bool) { return b.ordering.take() }

// PendingWorkers returns the idle-worker queue.
func (b *Base) PendingWorkers() *WorkerQueue { return &b.workers }

// WorkerReceiver returns the worker-broadcast channel.
func (b *Base) WorkerReceiver() <-chan WorkerInfo { return b.receiver }

// Schedule sets t to Scheduled, registers it, and calls Notify. Callers
// must hold the engine's scheduler lock.
func (b *Base) Schedule(t *task.Task) {
	t.SetState(task.Scheduled)
	b.ordering.register(t)
	b.Notify()
}

// Notify drains newly-arrived WorkerInfo broadcasts into the pending
// queue, then repeatedly pairs one pending worker with one task. If a
// worker is popped but no task is available, it is pushed back to the
// front and Notify stops. Callers must hold the engine's scheduler lock.
func (b *Base) Notify() {
	for {
		select {
		case w := <-b.receiver:
			b.workers.PushBack(w)
			continue
		default:
		}
		break
	}

	for {
		w, ok := b.workers.PopFront()
		if !ok {
			return
		}
		t, ok := b.ordering.take()
		if !ok {
			b.workers.PushFront(w)
			return
		}
		w.Mailbox <- t
		w.unpark()
	}
}
