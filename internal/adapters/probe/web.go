package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// Web probes a frontend page. Web targets rarely expose a structured error
// schema, so the policy is forced permissive: any allow-listed status counts
// as reachable unless a deny marker appears in the body.
type Web struct {
	client ports.HTTPClient
	target domain.TargetConfig
	policy domain.ClassifierConfig
	name   string
	logger *slog.Logger
}

func NewWeb(client ports.HTTPClient, target domain.TargetConfig, policy domain.ClassifierConfig, logger *slog.Logger) *Web {
	if logger == nil {
		logger = slog.Default()
	}

	policy.Permissive = true

	return &Web{
		client: client,
		target: target,
		policy: policy,
		name:   domain.TargetWeb,
		logger: logger.With("component", "probe", "strategy", "web"),
	}
}

func (w *Web) Probe(ctx context.Context, conn ports.ConnHandle, timeout time.Duration) ports.ProbeResult {
	return probeOne(ctx, w.client, conn, w.name, w.target, w.policy, timeout, w.logger)
}
