package scheduler

import (
	"container/heap"

	"github.com/hollowlake/taskengine/task"
)

// EDF (earliest-deadline-first) orders admitted tasks by a min-heap keyed
// on task.Task.Less. At any Take, the returned task has the minimum
// deadline among those currently admitted. Tasks without a deadline
// compare as deadline 0 (most urgent); see spec.md §9 Open Question 1.
type EDF struct {
	*Base
	heap taskHeap
}

// NewEDF constructs an EDF scheduler consuming worker broadcasts from
// receiver.
func NewEDF(receiver <-chan WorkerInfo) *EDF {
	e := &EDF{}
	e.Base = NewBase(e, receiver)
	heap.Init(&e.heap)
	return e
}

func (e *EDF) register(t *task.Task) {
	heap.Push(&e.heap, t)
}

func (e *EDF) take() (*task.Task, bool) {
	if e.heap.Len() == 0 {
		return nil, false
	}
	return heap.Pop(&e.heap).(*task.Task), true
}

// taskHeap adapts []*task.Task to container/heap.Interface. Insertion and
// removal are both O(log n), matching spec.md's sift-up/sift-down
// description; tie-breaking among equal deadlines follows container/heap's
// internal order and is, as spec.md notes, implementation-defined.
type taskHeap []*task.Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool { return h[i].Less(h[j]) }

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].SetHeapIndex(i)
	h[j].SetHeapIndex(j)
}

func (h *taskHeap) Push(x interface{}) {
	t := x.(*task.Task)
	t.SetHeapIndex(len(*h))
	*h = append(*h, t)
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.SetHeapIndex(-1)
	*h = old[:n-1]
	return t
}
