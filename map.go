package taskengine

import "context"

// Map fans out items through fn on e and returns results and an
// aggregated error, adapted from the teacher's Map: it delegates to
// RunAll after wrapping each item into a computation that calls
// fn(ctx, item). Ordering follows RunAll: completion order by default,
// input order if WithPreserveOrder is given.
func Map[T, R any](
	ctx context.Context, e *Engine, items []T, fn func(context.Context, T) (R, error), opts ...BatchOption,
) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	fns := make([]func(context.Context) (R, error), len(items))
	for i := range items {
		item := items[i]
		fns[i] = func(c context.Context) (R, error) { return fn(c, item) }
	}
	return RunAll[R](ctx, e, fns, opts...)
}
