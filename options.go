package taskengine

import (
	"fmt"

	"github.com/hollowlake/taskengine/metrics"
)

// Option configures an Engine. Use NewEngineWithOptions to construct an
// Engine via options.
type Option func(*Config)

// WithWorkerNum sets the number of worker goroutines (must be > 0).
func WithWorkerNum(n uint) Option {
	return func(c *Config) {
		if n == 0 {
			panic("WithWorkerNum requires n > 0")
		}
		c.WorkerNum = n
	}
}

// WithFIFOScheduler selects first-in-first-out task ordering (the
// default).
func WithFIFOScheduler() Option {
	return func(c *Config) { c.Scheduler = SchedulerFIFO }
}

// WithEDFScheduler selects earliest-deadline-first task ordering.
func WithEDFScheduler() Option {
	return func(c *Config) { c.Scheduler = SchedulerEDF }
}

// WithMetricsProvider installs a metrics.Provider the engine records
// instrumentation to. Default: metrics.NoopProvider{}.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(c *Config) {
		if p == nil {
			panic("WithMetricsProvider requires a non-nil provider")
		}
		c.MetricsProvider = p
	}
}

// WithFixedRelayPool bounds the per-poll wake-relay pool to capacity
// live objects, adapted from the teacher's WithFixedPool.
func WithFixedRelayPool(capacity uint) Option {
	return func(c *Config) {
		if capacity == 0 {
			panic("WithFixedRelayPool requires capacity > 0")
		}
		c.relayPool = relayPoolFixed
		c.relayPoolCapacity = capacity
	}
}

// WithDynamicRelayPool selects a sync.Pool-backed wake-relay pool (the
// default), adapted from the teacher's WithDynamicPool.
func WithDynamicRelayPool() Option {
	return func(c *Config) { c.relayPool = relayPoolDynamic }
}

// NewEngineWithOptions constructs an Engine using functional options,
// applied over defaultConfig(). Panics if the resulting Config is
// invalid, matching the teacher's NewOptions behaviour.
func NewEngineWithOptions(schedulerFactory SchedulerFactory, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("nil taskengine option")
		}
		opt(&cfg)
	}

	if err := validateConfig(&cfg); err != nil {
		panic(fmt.Errorf("invalid taskengine config: %w", err))
	}

	return newEngine(&cfg, schedulerFactory)
}
