package taskengine

import (
	"errors"

	"github.com/hollowlake/taskengine/task"
)

// Namespace prefixes every sentinel error this package defines, mirroring
// the teacher's error-namespacing convention.
const Namespace = "taskengine"

var (
	// ErrInvalidConfig is reported by validateConfig for a Config that
	// fails validation; NewEngine and NewEngineWithOptions panic with it.
	ErrInvalidConfig = errors.New(Namespace + ": invalid configuration")

	// ErrTaskPanicked tags an error delivered through a task's channel
	// when its deferred computation panicked during a poll. It is the
	// same sentinel task.Poll reports, so callers can match on either.
	ErrTaskPanicked = task.ErrPanicked
)
