// Package taskengine implements the core of an async execution engine: a
// multi-threaded runtime that accepts lazily-evaluated deferred
// computations, drives them to completion by repeatedly inspecting their
// readiness, parks worker goroutines when no work exists, and delivers
// results to awaiting consumers through a one-shot channel.
package taskengine

import (
	"sync"
	"sync/atomic"

	"github.com/hollowlake/taskengine/future"
	"github.com/hollowlake/taskengine/oneshot"
	"github.com/hollowlake/taskengine/pool"
	"github.com/hollowlake/taskengine/scheduler"
	"github.com/hollowlake/taskengine/task"
	"github.com/hollowlake/taskengine/waker"
)

// SchedulerFactory builds a Scheduler from the worker-broadcast channel
// the engine creates for it, per spec.md §6's Engine::new contract.
type SchedulerFactory func(workerBroadcast <-chan scheduler.WorkerInfo) scheduler.Scheduler

// FIFOFactory is the built-in SchedulerFactory producing a first-in-
// first-out Scheduler.
func FIFOFactory(rx <-chan scheduler.WorkerInfo) scheduler.Scheduler { return scheduler.NewFIFO(rx) }

// EDFFactory is the built-in SchedulerFactory producing an
// earliest-deadline-first Scheduler.
func EDFFactory(rx <-chan scheduler.WorkerInfo) scheduler.Scheduler { return scheduler.NewEDF(rx) }

// Engine owns the worker goroutines, the shared scheduler, the shutdown
// flag, and the instrumentation the runtime reports through.
type Engine struct {
	schedulerMu sync.Mutex
	sched       scheduler.Scheduler

	broadcast chan scheduler.WorkerInfo

	shutdown atomic.Bool
	lifecyc  *lifecycleCoordinator

	workers []*workerLoop
	wg      sync.WaitGroup

	relayPool pool.Pool[*waker.Relay]

	metrics engineMetrics
}

// NewEngine constructs an Engine from a Config (nil uses defaults) and a
// scheduler factory. If schedulerFactory is nil, the built-in factory
// matching cfg.Scheduler is used.
//
// Deprecated: this Config-based constructor is the teacher-style
// counterpart of NewEngineWithOptions; both are supported long-term, but
// prefer options for new code.
func NewEngine(cfg *Config, schedulerFactory SchedulerFactory) *Engine {
	if cfg == nil {
		c := defaultConfig()
		cfg = &c
	}
	if err := validateConfig(cfg); err != nil {
		panic(err)
	}
	return newEngine(cfg, schedulerFactory)
}

func newEngine(cfg *Config, schedulerFactory SchedulerFactory) *Engine {
	if schedulerFactory == nil {
		switch cfg.Scheduler {
		case SchedulerEDF:
			schedulerFactory = EDFFactory
		default:
			schedulerFactory = FIFOFactory
		}
	}

	broadcast := make(chan scheduler.WorkerInfo, cfg.WorkerNum)

	e := &Engine{
		broadcast: broadcast,
		sched:     schedulerFactory(broadcast),
		metrics:   newEngineMetrics(cfg.MetricsProvider),
	}

	switch cfg.relayPool {
	case relayPoolFixed:
		e.relayPool = pool.NewFixed[*waker.Relay](cfg.relayPoolCapacity, func() *waker.Relay {
			return waker.New(&e.schedulerMu, e.sched, nil)
		})
	default:
		e.relayPool = pool.NewDynamic[*waker.Relay](func() *waker.Relay {
			return waker.New(&e.schedulerMu, e.sched, nil)
		})
	}

	e.workers = make([]*workerLoop, cfg.WorkerNum)
	e.wg.Add(int(cfg.WorkerNum))
	for i := range e.workers {
		w := newWorkerLoop(e)
		e.workers[i] = w
		go w.run(&e.wg)
	}

	e.lifecyc = newLifecycleCoordinator(e)

	return e
}

// Reserve submits computation for execution, optionally ordered by
// deadline under an EDF scheduler, and returns the Receiver half of the
// one-shot channel its result will be delivered through. This is the
// core operation described in spec.md §4.5/§6.
func Reserve[V any](e *Engine, computation future.Future[V], deadline *uint64) *oneshot.Receiver[V] {
	sender, receiver := oneshot.New[V]()

	t := task.New(computation, func(v V) { sender.Send(v) }, sender.SendError, deadline)

	e.metrics.scheduled.Add(1)

	e.schedulerMu.Lock()
	e.sched.Schedule(t)
	e.schedulerMu.Unlock()

	return receiver
}

// GracefulShutdown terminates the pool: it sets the shutdown flag,
// un-parks every worker so it observes it, and joins all worker
// goroutines. Safe to call more than once or concurrently; the sequence
// executes exactly once.
func (e *Engine) GracefulShutdown() {
	e.lifecyc.Close()
}
