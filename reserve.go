package taskengine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hollowlake/taskengine/future"
)

// Result pairs a value with an error, the way a blocking Go function
// naturally returns both; ReserveFunc and the RunAll/ForEach/Map helpers
// operate on Future[Result[T]] so ordinary (context.Context) (T, error)
// callables can be driven through the Poll-based Future protocol.
type Result[T any] struct {
	Value T
	Err   error
}

// ReserveFunc adapts a blocking (context.Context) (T, error) callable —
// the shape the teacher's TaskFunc/TaskResultError adapters accept — into
// a Future[Result[T]] and reserves it on e. The callable runs on its own
// goroutine (mirroring the teacher's task.go adapters) so a Future.Poll
// call never blocks a worker goroutine; Poll only observes completion.
func ReserveFunc[T any](
	e *Engine, ctx context.Context, fn func(context.Context) (T, error), deadline *uint64,
) *ReceiverHandle[Result[T]] {
	f := newBlockingFuture(ctx, fn)
	r := Reserve[Result[T]](e, f, deadline)
	return &ReceiverHandle[Result[T]]{inner: r}
}

// ReserveValue reserves an always-ready value, useful for tests and for
// adapting pure computations that need no polling at all.
func ReserveValue[T any](e *Engine, v T, deadline *uint64) *ReceiverHandle[T] {
	r := Reserve[T](e, future.Ready(v), deadline)
	return &ReceiverHandle[T]{inner: r}
}

// ReceiverHandle is a thin, BlockOn-friendly wrapper around
// oneshot.Receiver[T]; it exists so callers of the high-level helpers
// don't need to import the oneshot package directly.
type ReceiverHandle[T any] struct {
	inner future.Future[T]
}

// Poll implements future.Future[T] by delegating to the wrapped Receiver.
func (h *ReceiverHandle[T]) Poll(cx *future.Context) (T, bool) { return h.inner.Poll(cx) }

// blockingFuture bridges a blocking function call into the Poll protocol:
// the function runs on its own goroutine once, and Poll observes a done
// channel plus ctx.Done(), exactly mirroring the teacher's
// taskResultError.execute pattern (task.go) including panic recovery.
type blockingFuture[T any] struct {
	once sync.Once
	done chan struct{}

	result T
	err    error
}

func newBlockingFuture[T any](ctx context.Context, fn func(context.Context) (T, error)) future.Future[Result[T]] {
	bf := &blockingFuture[T]{done: make(chan struct{})}

	start := func() {
		go func() {
			defer func() {
				if p := recover(); p != nil {
					bf.err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
				}
				close(bf.done)
			}()
			bf.result, bf.err = fn(ctx)
		}()
	}

	return future.FromFunc(func(cx *future.Context) (Result[T], bool) {
		bf.once.Do(start)

		select {
		case <-bf.done:
			return Result[T]{Value: bf.result, Err: bf.err}, true
		case <-ctx.Done():
			return Result[T]{Err: ctx.Err()}, true
		default:
		}

		// Not finished yet: arrange a wake once the goroutine above
		// closes done, then report Pending. A second, throwaway
		// goroutine relays that close event into the waker exactly
		// once per poll that observes Pending — cheap relative to the
		// blocking call it is waiting on.
		go func() {
			select {
			case <-bf.done:
				cx.Waker().Wake()
			case <-ctx.Done():
				cx.Waker().Wake()
			}
		}()

		var zero Result[T]
		return zero, false
	})
}

// BlockOn drives f on the calling goroutine to completion: install a
// waker that un-parks this goroutine, poll once, and if Pending, park
// until woken, looping until Ready. This is spec.md §6's block_on
// utility.
func BlockOn[T any](f future.Future[T]) T {
	wake := make(chan struct{}, 1)
	w := future.WakerFunc(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	cx := future.NewContext(w)

	for {
		if v, ready := f.Poll(cx); ready {
			return v
		}
		<-wake
	}
}
