package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eleven-am/probegate/internal/ports"
)

// Pool runs probe tasks with a fixed worker count and a shared wall-clock
// deadline. The deadline only gates new task starts; a task already running
// on a worker always finishes. Run returns once every started task has
// completed and the queue is drained.
type Pool struct {
	workers int
	logger  *slog.Logger

	started int64
	skipped int64
}

func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		workers: workers,
		logger:  logger.With("component", "scheduler"),
	}
}

func (p *Pool) Run(ctx context.Context, tasks []ports.Task, deadline time.Time) {
	if len(tasks) == 0 {
		return
	}

	atomic.StoreInt64(&p.started, 0)
	atomic.StoreInt64(&p.skipped, 0)

	queue := make(chan ports.Task, len(tasks))
	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	workers := p.workers
	if workers > len(tasks) {
		workers = len(tasks)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if p.expired(ctx, deadline) {
					atomic.AddInt64(&p.skipped, 1)
					continue
				}
				atomic.AddInt64(&p.started, 1)
				p.execute(ctx, task)
			}
		}()
	}
	wg.Wait()

	if skipped := atomic.LoadInt64(&p.skipped); skipped > 0 {
		p.logger.Info("deadline reached before queue drained", "started", atomic.LoadInt64(&p.started), "skipped", skipped)
	}
}

// Started reports how many tasks the last Run actually launched.
func (p *Pool) Started() int {
	return int(atomic.LoadInt64(&p.started))
}

// Skipped reports how many tasks the last Run abandoned at the deadline.
func (p *Pool) Skipped() int {
	return int(atomic.LoadInt64(&p.skipped))
}

func (p *Pool) expired(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return true
	}
	return !deadline.IsZero() && !time.Now().Before(deadline)
}

func (p *Pool) execute(ctx context.Context, task ports.Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", "panic", r)
		}
	}()
	task(ctx)
}
