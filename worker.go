package taskengine

import (
	"sync"
	"time"

	"github.com/hollowlake/taskengine/future"
	"github.com/hollowlake/taskengine/scheduler"
	"github.com/hollowlake/taskengine/task"
)

// workerLoop is one of the Engine's persistent worker goroutines. It
// implements the loop from spec.md §4.3, substituting a buffered wake
// channel for OS thread park/un-park — the idiomatic Go equivalent of
// "block until signaled".
type workerLoop struct {
	engine  *Engine
	mailbox chan *task.Task
	wake    chan struct{}
}

func newWorkerLoop(e *Engine) *workerLoop {
	return &workerLoop{
		engine:  e,
		mailbox: make(chan *task.Task, 1),
		wake:    make(chan struct{}, 1),
	}
}

// run executes the worker loop until the engine's shutdown flag is
// observed set. wg.Done is called exactly once, on exit.
func (w *workerLoop) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		if w.engine.shutdown.Load() {
			return
		}

		info := scheduler.WorkerInfo{Mailbox: w.mailbox, Wake: w.wake}

		select {
		case w.engine.broadcast <- info:
		default:
			// Broadcast channel is sized to WorkerNum and drained by
			// Notify before a worker reaches this point again in the
			// common case; a full channel here means a duplicate
			// broadcast is already pending and can be skipped.
		}

		w.engine.metrics.parked.Add(1)

		w.engine.schedulerMu.Lock()
		w.engine.sched.Notify()
		w.engine.schedulerMu.Unlock()

		<-w.wake

		w.engine.metrics.parked.Add(-1)

		if w.engine.shutdown.Load() {
			return
		}

		select {
		case t := <-w.mailbox:
			w.poll(t)
		default:
			// Spurious or out-of-order wake relative to the mailbox
			// send: loop back around and republish, per spec.md §4.3.
		}
	}
}

// poll drives one Task.Poll call with a wake relay leased from the
// engine's relay pool. The relay is only returned to the pool once Poll
// reports Ready: a Pending result means the polled Future may have
// retained this exact *waker.Relay as a long-lived wake handle (e.g. a
// spawned timer or goroutine invoking it asynchronously later), and
// returning it early would let a concurrent Get/Reset on another worker
// silently rebind it out from under that still-pending caller, losing
// the original task's completion. Pending relays are simply leaked back
// to garbage collection instead of recycled.
func (w *workerLoop) poll(t *task.Task) {
	relay := w.engine.relayPool.Get()
	relay.Reset(&w.engine.schedulerMu, w.engine.sched, t)

	cx := future.NewContext(relay)

	w.engine.metrics.running.Add(1)
	start := time.Now()

	done := t.Poll(cx)

	w.engine.metrics.pollDuration.Record(time.Since(start).Seconds())
	w.engine.metrics.running.Add(-1)

	if done {
		w.engine.metrics.completed.Add(1)
		w.engine.relayPool.Put(relay)
	}
}
