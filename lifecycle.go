package taskengine

import "sync"

// lifecycleCoordinator encapsulates Engine's shutdown sequence. It is a
// wiring helper adapted from the teacher's lifecycleCoordinator: it
// doesn't own the engine's fields, it orchestrates flipping the shutdown
// flag, draining/un-parking workers, and joining them in a deterministic
// order.
//
// Close is safe for concurrent calls; the sequence executes exactly once.
type lifecycleCoordinator struct {
	engine *Engine
	once   sync.Once
}

func newLifecycleCoordinator(e *Engine) *lifecycleCoordinator {
	return &lifecycleCoordinator{engine: e}
}

// Close executes the shutdown sequence exactly once, per spec.md §4.5:
//  1. set the shutdown flag (release),
//  2. drain the worker-broadcast channel non-blockingly and un-park
//     every worker so it observes shutdown,
//  3. join all worker goroutines.
func (lc *lifecycleCoordinator) Close() {
	lc.once.Do(func() {
		e := lc.engine
		e.shutdown.Store(true)

		// Drain any WorkerInfo broadcasts still sitting in the channel;
		// those workers are parked and only reachable through it.
		for {
			select {
			case info := <-e.broadcast:
				nonBlockingUnpark(info.Wake)
				continue
			default:
			}
			break
		}

		// Every worker's own wake channel is reachable directly too
		// (covers the window between a worker leaving the broadcast
		// channel and reaching its park point).
		for _, w := range e.workers {
			nonBlockingUnpark(w.wake)
		}

		e.wg.Wait()
	})
}

func nonBlockingUnpark(wake chan struct{}) {
	select {
	case wake <- struct{}{}:
	default:
	}
}
