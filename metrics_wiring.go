package taskengine

import "github.com/hollowlake/taskengine/metrics"

// engineMetrics bundles the instruments an Engine records against,
// adapted from the teacher's metrics.Provider usage: a default Noop
// provider unless the caller installs one via WithMetricsProvider /
// Config.MetricsProvider.
type engineMetrics struct {
	scheduled    metrics.Counter
	running      metrics.UpDownCounter
	completed    metrics.Counter
	parked       metrics.UpDownCounter
	pollDuration metrics.Histogram
}

func newEngineMetrics(p metrics.Provider) engineMetrics {
	if p == nil {
		p = metrics.NewNoopProvider()
	}
	return engineMetrics{
		scheduled: p.Counter(
			"taskengine.tasks.scheduled",
			metrics.WithDescription("tasks admitted to the scheduler"),
			metrics.WithUnit("1"),
		),
		running: p.UpDownCounter(
			"taskengine.tasks.running",
			metrics.WithDescription("tasks currently inside a poll"),
			metrics.WithUnit("1"),
		),
		completed: p.Counter(
			"taskengine.tasks.completed",
			metrics.WithDescription("tasks that reached Completed"),
			metrics.WithUnit("1"),
		),
		parked: p.UpDownCounter(
			"taskengine.workers.parked",
			metrics.WithDescription("worker goroutines currently parked"),
			metrics.WithUnit("1"),
		),
		pollDuration: p.Histogram(
			"taskengine.task.poll.duration",
			metrics.WithDescription("wall time spent inside a single Task.Poll call"),
			metrics.WithUnit("s"),
		),
	}
}
