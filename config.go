package taskengine

import (
	"fmt"

	"github.com/hollowlake/taskengine/metrics"
)

// SchedulerKind selects one of the two built-in Scheduler implementations
// described in spec.md §4.2.
type SchedulerKind int

const (
	// SchedulerFIFO orders admitted tasks by arrival.
	SchedulerFIFO SchedulerKind = iota
	// SchedulerEDF orders admitted tasks by ascending deadline.
	SchedulerEDF
)

// relayPoolKind selects the object-pool strategy backing per-poll wake
// relays (see SPEC_FULL.md's pool supplement).
type relayPoolKind int

const (
	relayPoolDynamic relayPoolKind = iota
	relayPoolFixed
)

// Config holds Engine configuration.
type Config struct {
	// WorkerNum is the number of worker goroutines the Engine spawns.
	// Must be at least 1.
	// Default: 4.
	WorkerNum uint

	// Scheduler selects FIFO or EDF ordering.
	// Default: SchedulerFIFO.
	Scheduler SchedulerKind

	// MetricsProvider receives the engine's instrumentation. A nil
	// provider is replaced with metrics.NoopProvider{}.
	// Default: metrics.NoopProvider{}.
	MetricsProvider metrics.Provider

	relayPool         relayPoolKind
	relayPoolCapacity uint
}

// validateConfig performs lightweight invariant checks.
func validateConfig(cfg *Config) error {
	if cfg.WorkerNum == 0 {
		return fmt.Errorf("%w: WorkerNum must be at least 1", ErrInvalidConfig)
	}
	if cfg.Scheduler != SchedulerFIFO && cfg.Scheduler != SchedulerEDF {
		return fmt.Errorf("%w: unknown Scheduler kind %v", ErrInvalidConfig, cfg.Scheduler)
	}
	return nil
}
