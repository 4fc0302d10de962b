package taskengine_test

import (
	"context"
	"fmt"

	taskengine "github.com/hollowlake/taskengine"
)

// Example_manyTasks mirrors many_tasks.rs: fan a large batch of small
// computations out across an 8-worker engine via Map and verify every
// result, rather than printing each one (100 lines would make a poor
// Example). preserve-order keeps index i paired with its own result.
func Example_manyTasks() {
	e := taskengine.NewEngineWithOptions(nil, taskengine.WithWorkerNum(8))
	defer e.GracefulShutdown()

	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	results, err := taskengine.Map[int, int](context.Background(), e, items, func(_ context.Context, i int) (int, error) {
		return i*i + 42 + 43, nil
	}, taskengine.WithPreserveOrder())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for i, r := range results {
		if want := i*i + 85; r != want {
			fmt.Printf("task %d produced %d, want %d\n", i, r, want)
			return
		}
	}
	fmt.Println("all 100 tasks completed successfully")

	// Output:
	// all 100 tasks completed successfully
}
