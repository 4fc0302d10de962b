package taskengine

import (
	"context"
	"errors"
	"sync"
)

// RunAll reserves every fn on e and waits for all of them to complete,
// adapted from the teacher's RunAll: each fn runs concurrently through
// the Engine's worker pool rather than spinning up an ephemeral runtime
// per call. By default results are returned in completion order; pass
// WithPreserveOrder to recover input order instead. The returned error
// is errors.Join of every per-task error, each tagged with its input
// index via TaskMetaError.
func RunAll[T any](
	ctx context.Context, e *Engine, fns []func(context.Context) (T, error), opts ...BatchOption,
) ([]T, error) {
	if len(fns) == 0 {
		return nil, nil
	}
	cfg := newBatchConfig(opts)

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.stopOnError {
		runCtx, cancel = context.WithCancel(ctx)
		defer cancel()
	}

	handles := make([]*ReceiverHandle[Result[T]], len(fns))
	for i, fn := range fns {
		handles[i] = ReserveFunc[T](e, runCtx, fn, nil)
	}

	events := make(chan completionEvent[T], len(fns))
	var (
		errsMu sync.Mutex
		errs   []error
		wg     sync.WaitGroup
	)
	wg.Add(len(handles))

	for i, h := range handles {
		i, h := i, h
		go func() {
			defer wg.Done()
			res := BlockOn[Result[T]](h)
			if res.Err != nil {
				errsMu.Lock()
				errs = append(errs, newTaskTaggedError(res.Err, i))
				errsMu.Unlock()
				if cancel != nil {
					cancel()
				}
				events <- completionEvent[T]{idx: i, present: false}
				return
			}
			events <- completionEvent[T]{idx: i, val: res.Value, present: true}
		}()
	}

	go func() {
		wg.Wait()
		close(events)
	}()

	var results []T
	if cfg.preserveOrder {
		resultsCh := make(chan T, len(handles))
		ro := newReorderer[T](events, resultsCh)
		done := make(chan struct{})
		go func() {
			ro.run()
			close(resultsCh)
			close(done)
		}()
		for v := range resultsCh {
			results = append(results, v)
		}
		<-done
	} else {
		for ev := range events {
			if ev.present {
				results = append(results, ev.val)
			}
		}
	}

	errsMu.Lock()
	defer errsMu.Unlock()
	return results, errors.Join(errs...)
}
