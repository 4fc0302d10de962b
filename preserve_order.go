package taskengine

// batchConfig holds the options RunAll/ForEach/Map honor, adapted from
// the teacher's Option mechanism (Option/WithStopOnError/WithPreserveOrder)
// but scoped to the batch helpers rather than a whole Workers instance,
// since batches now run against a shared, persistent Engine.
type batchConfig struct {
	preserveOrder bool
	stopOnError   bool
}

// BatchOption configures RunAll, ForEach, and Map.
type BatchOption func(*batchConfig)

// WithPreserveOrder makes RunAll/Map buffer out-of-order completions and
// flush them to the caller strictly in original input order, via an
// internal reorderer.
func WithPreserveOrder() BatchOption {
	return func(c *batchConfig) { c.preserveOrder = true }
}

// WithStopOnError cancels the batch's context on the first task error;
// tasks not yet finished then report the context's error, although their
// functions are still called (with the cancelled context).
func WithStopOnError() BatchOption {
	return func(c *batchConfig) { c.stopOnError = true }
}

func newBatchConfig(opts []BatchOption) batchConfig {
	var c batchConfig
	for _, o := range opts {
		o(&c)
	}
	return c
}
