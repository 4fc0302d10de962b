package taskengine

import "github.com/hollowlake/taskengine/metrics"

// defaultConfig centralizes default values for Config. Applied by both
// NewEngine (when cfg is nil) and NewEngineWithOptions (options builder
// base).
func defaultConfig() Config {
	return Config{
		WorkerNum:       4,
		Scheduler:       SchedulerFIFO,
		MetricsProvider: metrics.NewNoopProvider(),
		relayPool:       relayPoolDynamic,
	}
}
