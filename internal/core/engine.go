package core

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/probegate/internal/adapters/scheduler"
	"github.com/eleven-am/probegate/internal/adapters/tracker"
	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// Engine runs one bounded probing round per Check call: cache triage first,
// then real probes under the concurrency and deadline limits, then verdict
// write-back and batch accounting. Per-node failures never abort the batch.
type Engine struct {
	cfg      *domain.Config
	retry    *tracker.Retry
	batch    *tracker.Batch
	pool     ports.Scheduler
	mat      ports.Materializer
	strategy ports.ProbeStrategy
	logger   *slog.Logger

	mu        sync.Mutex
	lastRound RoundMetrics
}

func NewEngine(cfg *domain.Config, cache ports.Cache, mat ports.Materializer, strategy ports.ProbeStrategy, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "engine")

	return &Engine{
		cfg:      cfg,
		retry:    tracker.NewRetry(cache, logger),
		batch:    tracker.NewBatch(cache, logger),
		pool:     scheduler.NewPool(cfg.Concurrency, logger),
		mat:      mat,
		strategy: strategy,
		logger:   logger,
	}
}

// probeItem is the per-node working state for one round. Verdicts land here
// as side effects of pool tasks.
type probeItem struct {
	node       domain.Node
	fp         string
	priorTries int
	accepted   atomic.Bool
}

// Check probes the supplied nodes and returns the subset whose final verdict
// is accept, labels tagged. The returned error reflects only engine-level
// problems; individual node failures are absorbed into their verdicts.
func (e *Engine) Check(ctx context.Context, nodes []domain.Node) ([]domain.Node, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := e.logger.With("run_id", runID)

	metrics := RoundMetrics{RunID: runID, Total: len(nodes)}

	candidates := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		if Excluded(n.Label, e.cfg.Labeling.ExcludeMarkers) {
			metrics.ExcludedNodes++
			continue
		}
		candidates = append(candidates, n)
	}

	batchKey := domain.BatchKey(nodes)
	metrics.BatchKey = batchKey
	logger.Debug("round starting", "batch", batchKey, "nodes", len(nodes), "excluded", metrics.ExcludedNodes)

	meta, metaExists := e.batch.Lookup(batchKey)
	if tracker.IsLocked(meta, metaExists, e.cfg.MaxRuns, e.cfg.Force) {
		accepted := e.answerFromCache(candidates, &metrics)
		metrics.Locked = true
		metrics.Duration = time.Since(start)
		logger.Info("batch locked, answered from cache", "batch", batchKey, "accepted", len(accepted))
		e.storeMetrics(metrics)
		return accepted, nil
	}

	accepted := make([]domain.Node, 0, len(candidates))
	var items []*probeItem

	for _, n := range candidates {
		fp := n.Fingerprint()
		rec, exists := e.retry.Lookup(fp)

		if exists && rec.OK && !e.cfg.Force {
			metrics.CachedAccepts++
			accepted = append(accepted, e.tagged(n))
			continue
		}

		if !tracker.ShouldProbe(rec, exists, e.cfg.MaxTries, e.cfg.Force) {
			metrics.CachedRejects++
			logger.Debug("retry cap reached, rejecting from cache", "fingerprint", fp, "tries", rec.Tries)
			continue
		}

		items = append(items, &probeItem{node: n, fp: fp, priorTries: rec.Tries})
	}

	var attempted int64
	var unusable int64
	var inconclusive int64

	tasks := make([]ports.Task, len(items))
	for i := range items {
		item := items[i]
		tasks[i] = func(taskCtx context.Context) {
			e.probeNode(taskCtx, item, logger, &attempted, &unusable, &inconclusive)
		}
	}

	deadline := time.Time{}
	if e.cfg.Deadline > 0 {
		deadline = start.Add(e.cfg.Deadline)
	}
	e.pool.Run(ctx, tasks, deadline)

	metrics.Probed = int(atomic.LoadInt64(&attempted))
	metrics.Unusable = int(atomic.LoadInt64(&unusable))
	metrics.Inconclusive = int(atomic.LoadInt64(&inconclusive))
	metrics.DeadlineMissed = e.pool.Skipped()

	for _, item := range items {
		if item.accepted.Load() {
			metrics.Accepted++
			accepted = append(accepted, e.tagged(item.node))
		}
	}
	metrics.Rejected = metrics.Probed - metrics.Accepted - metrics.Inconclusive

	e.batch.Advance(batchKey, meta, metrics.Probed, e.cfg.MaxRuns)

	metrics.Duration = time.Since(start)
	logger.Info("round finished",
		"batch", batchKey,
		"probed", metrics.Probed,
		"accepted", len(accepted),
		"cached_accepts", metrics.CachedAccepts,
		"cached_rejects", metrics.CachedRejects,
		"inconclusive", metrics.Inconclusive,
		"unusable", metrics.Unusable,
		"duration", metrics.Duration)

	e.storeMetrics(metrics)
	return accepted, nil
}

func (e *Engine) probeNode(ctx context.Context, item *probeItem, logger *slog.Logger, attempted, unusable, inconclusive *int64) {
	conn, err := e.mat.Materialize(ctx, item.node, e.cfg.PlatformHint)
	if err != nil {
		// not the node's fault: no attempt consumed, no verdict recorded
		atomic.AddInt64(unusable, 1)
		logger.Debug("node unusable, skipped", "fingerprint", item.fp, "error", err)
		return
	}
	defer conn.Close()

	atomic.AddInt64(attempted, 1)
	result := e.strategy.Probe(ctx, conn, e.cfg.Timeout)

	if !result.Conclusive {
		atomic.AddInt64(inconclusive, 1)
		logger.Debug("probe inconclusive, verdict not cached", "fingerprint", item.fp)
		return
	}

	e.retry.Record(item.fp, item.priorTries, result.OK)
	if result.OK {
		item.accepted.Store(true)
	}
}

// answerFromCache resolves a locked batch without touching the network.
// Absent records and negative records both reject.
func (e *Engine) answerFromCache(candidates []domain.Node, metrics *RoundMetrics) []domain.Node {
	accepted := make([]domain.Node, 0, len(candidates))
	for _, n := range candidates {
		rec, exists := e.retry.Lookup(n.Fingerprint())
		if exists && rec.OK {
			metrics.CachedAccepts++
			accepted = append(accepted, e.tagged(n))
		} else {
			metrics.CachedRejects++
		}
	}
	return accepted
}

// Reset is the force-override path: it drops the decision records for every
// supplied node and the batch round history, so the next Check probes fresh.
func (e *Engine) Reset(ctx context.Context, nodes []domain.Node) error {
	for _, n := range nodes {
		if err := e.retry.Forget(n.Fingerprint()); err != nil {
			return err
		}
	}
	return e.batch.Forget(domain.BatchKey(nodes))
}

// LastRound returns metrics for the most recent Check invocation.
func (e *Engine) LastRound() RoundMetrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRound
}

func (e *Engine) storeMetrics(m RoundMetrics) {
	e.mu.Lock()
	e.lastRound = m
	e.mu.Unlock()
}

func (e *Engine) tagged(n domain.Node) domain.Node {
	n.Label = TagLabel(n.Label, e.cfg.Labeling.Prefix)
	return n
}
