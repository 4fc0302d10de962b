package taskengine_test

import (
	"fmt"

	taskengine "github.com/hollowlake/taskengine"
	"github.com/hollowlake/taskengine/future"
)

// Example_deadlineScheduler mirrors deadline.rs: tasks submitted with an
// EDF engine run in order of ascending deadline, and a task reserved
// without one is treated as maximally urgent (deadline.rs's own caveat —
// "execution order depends on scheduling and may vary" — applies once
// more than one worker is racing to dequeue, so a gate task pins all
// four reservations to the scheduler's admission queue before the sole
// worker is released to drain it in order).
func Example_deadlineScheduler() {
	e := taskengine.NewEngineWithOptions(taskengine.EDFFactory, taskengine.WithWorkerNum(1))
	defer e.GracefulShutdown()

	gate := make(chan struct{})
	blocker := taskengine.Reserve[struct{}](e, future.FromFunc(func(*future.Context) (struct{}, bool) {
		<-gate
		return struct{}{}, true
	}), nil)

	d100, d300, d200 := uint64(100), uint64(300), uint64(200)

	task2 := taskengine.Reserve[int](e, future.Ready(300), &d300)
	task3 := taskengine.Reserve[int](e, future.Ready(200), &d200)
	task4 := taskengine.Reserve[int](e, future.Ready(0), nil)
	task1 := taskengine.Reserve[int](e, future.Ready(100), &d100)

	close(gate)
	taskengine.BlockOn[struct{}](blocker)

	fmt.Println("task 4 (no deadline):", taskengine.BlockOn[int](task4))
	fmt.Println("task 1 (deadline=100):", taskengine.BlockOn[int](task1))
	fmt.Println("task 3 (deadline=200):", taskengine.BlockOn[int](task3))
	fmt.Println("task 2 (deadline=300):", taskengine.BlockOn[int](task2))

	// Output:
	// task 4 (no deadline): 0
	// task 1 (deadline=100): 100
	// task 3 (deadline=200): 200
	// task 2 (deadline=300): 300
}
