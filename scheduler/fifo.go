package scheduler

import "github.com/hollowlake/taskengine/task"

// FIFO orders admitted tasks by arrival: Take returns the
// earliest-registered task still admitted.
type FIFO struct {
	*Base
	queue []*task.Task
}

// NewFIFO constructs a FIFO scheduler consuming worker broadcasts from
// receiver, per the scheduler_factory contract in spec.md §6.
func NewFIFO(receiver <-chan WorkerInfo) *FIFO {
	f := &FIFO{}
	f.Base = NewBase(f, receiver)
	return f
}

func (f *FIFO) register(t *task.Task) {
	f.queue = append(f.queue, t)
}

func (f *FIFO) take() (*task.Task, bool) {
	if len(f.queue) == 0 {
		return nil, false
	}
	t := f.queue[0]
	f.queue = f.queue[1:]
	return t, true
}
