package taskengine

import "context"

// ForEach applies fn to each item concurrently on e, adapted from the
// teacher's ForEach: it builds error-only computations and delegates to
// RunAll, returning the aggregated error (errors.Join) or nil when every
// item succeeds.
func ForEach[T any](ctx context.Context, e *Engine, items []T, fn func(context.Context, T) error, opts ...BatchOption) error {
	if len(items) == 0 {
		return nil
	}
	fns := make([]func(context.Context) (struct{}, error), len(items))
	for i := range items {
		item := items[i]
		fns[i] = func(c context.Context) (struct{}, error) { return struct{}{}, fn(c, item) }
	}
	_, err := RunAll[struct{}](ctx, e, fns, opts...)
	return err
}
