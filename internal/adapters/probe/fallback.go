package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/probegate/internal/ports"
)

// Fallback runs the primary strategy and, only on a negative verdict, runs
// the secondary and returns its result instead. A positive primary result
// short-circuits; the secondary never runs.
type Fallback struct {
	primary   ports.ProbeStrategy
	secondary ports.ProbeStrategy
	logger    *slog.Logger
}

func NewFallback(primary, secondary ports.ProbeStrategy, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}

	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With("component", "probe", "strategy", "fallback"),
	}
}

func (f *Fallback) Probe(ctx context.Context, conn ports.ConnHandle, timeout time.Duration) ports.ProbeResult {
	result := f.primary.Probe(ctx, conn, timeout)
	if result.OK {
		return result
	}

	f.logger.Debug("primary probe negative, trying secondary")
	return f.secondary.Probe(ctx, conn, timeout)
}
