package ports

import (
	"context"
	"time"
)

// Task is one unit of probe work. Results are observed through side effects
// on captured state, not return values.
type Task func(ctx context.Context)

// Scheduler runs tasks under a concurrency ceiling and a shared deadline.
// The deadline gates new task starts only; in-flight tasks always finish.
type Scheduler interface {
	Run(ctx context.Context, tasks []Task, deadline time.Time)

	// Skipped reports how many tasks the last Run abandoned at the deadline.
	Skipped() int
}
