package waker

import (
	"sync"
	"testing"

	"github.com/hollowlake/taskengine/future"
	"github.com/hollowlake/taskengine/scheduler"
	"github.com/hollowlake/taskengine/task"
)

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []*task.Task
}

func (f *fakeScheduler) Schedule(t *task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, t)
}

func (f *fakeScheduler) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scheduled)
}

func newTestTask() *task.Task {
	return task.New(future.Ready(struct{}{}), func(struct{}) {}, nil, nil)
}

func TestRelay_WakeSchedulesPendingTask(t *testing.T) {
	var lock sync.Mutex
	sched := &fakeScheduler{}
	tsk := newTestTask() // starts Pending

	r := New(&lock, sched, tsk)
	r.Wake()

	if sched.count() != 1 {
		t.Fatalf("scheduled count = %d; want 1", sched.count())
	}
}

func TestRelay_WakeIgnoresScheduledTask(t *testing.T) {
	var lock sync.Mutex
	sched := &fakeScheduler{}
	tsk := newTestTask()
	tsk.SetState(task.Scheduled)

	r := New(&lock, sched, tsk)
	r.Wake()

	if sched.count() != 0 {
		t.Fatalf("scheduled count = %d; want 0 for an already-scheduled task", sched.count())
	}
}

func TestRelay_WakeIgnoresCompletedTask(t *testing.T) {
	var lock sync.Mutex
	sched := &fakeScheduler{}
	tsk := newTestTask()
	tsk.SetState(task.Completed)

	r := New(&lock, sched, tsk)
	r.Wake()

	if sched.count() != 0 {
		t.Fatalf("scheduled count = %d; want 0 for a completed task", sched.count())
	}
}

func TestRelay_ResetRebindsToNewTask(t *testing.T) {
	var lock sync.Mutex
	sched := &fakeScheduler{}
	first := newTestTask()
	second := newTestTask()

	r := New(&lock, sched, first)
	r.Reset(&lock, sched, second)
	r.Wake()

	if sched.count() != 1 {
		t.Fatalf("scheduled count = %d; want 1", sched.count())
	}
	if sched.scheduled[0] != second {
		t.Fatalf("Wake scheduled the stale task bound before Reset")
	}
}

// TestRelay_WakeIsIdempotent exercises spec.md's P7: firing a waker twice
// in a row produces the same observable effect as firing it once, because
// the second call finds the task already Scheduled and is a no-op.
func TestRelay_WakeIsIdempotent(t *testing.T) {
	var lock sync.Mutex
	receiver := make(chan scheduler.WorkerInfo)
	sched := scheduler.NewFIFO(receiver)
	tsk := newTestTask()

	r := New(&lock, sched, tsk)
	r.Wake()
	r.Wake()

	if got := tsk.GetState(); got != task.Scheduled {
		t.Fatalf("task state = %v; want Scheduled", got)
	}

	count := 0
	for {
		if _, ok := sched.Take(); ok {
			count++
			continue
		}
		break
	}
	if count != 1 {
		t.Fatalf("task admitted %d times via double Wake; want exactly 1", count)
	}
}

var _ future.Waker = (*Relay)(nil)
