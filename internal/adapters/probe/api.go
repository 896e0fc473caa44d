// Package probe contains the strategies that turn a live connection into a
// verdict. Every strategy sends its requests, hands the raw signal to the
// classifier, and reports whether the result is conclusive enough to cache.
package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/eleven-am/probegate/internal/adapters/classifier"
	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// API probes a REST endpoint and classifies the response under the strict
// policy by default: only the service's own auth-error envelope counts as
// proof of reachability.
type API struct {
	client ports.HTTPClient
	target domain.TargetConfig
	policy domain.ClassifierConfig
	name   string
	logger *slog.Logger
}

func NewAPI(client ports.HTTPClient, target domain.TargetConfig, policy domain.ClassifierConfig, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}

	return &API{
		client: client,
		target: target,
		policy: policy,
		name:   domain.TargetAPI,
		logger: logger.With("component", "probe", "strategy", "api"),
	}
}

func (a *API) Probe(ctx context.Context, conn ports.ConnHandle, timeout time.Duration) ports.ProbeResult {
	return probeOne(ctx, a.client, conn, a.name, a.target, a.policy, timeout, a.logger)
}

// probeOne performs a single request against one target and classifies the
// outcome. A transport error leaves the target without a signal, which marks
// the whole result inconclusive.
func probeOne(ctx context.Context, client ports.HTTPClient, conn ports.ConnHandle, name string, target domain.TargetConfig, policy domain.ClassifierConfig, timeout time.Duration, logger *slog.Logger) ports.ProbeResult {
	resp, err := client.Get(ctx, target.URL, target.Headers, conn, timeout)
	if err != nil {
		logger.Debug("transport failure", "target", name, "url", target.URL, "error", err)
		return ports.ProbeResult{
			OK:         false,
			Conclusive: false,
			Targets: map[string]ports.TargetResult{
				name: {OK: false, Signal: nil},
			},
		}
	}

	outcome := classifier.Classify(resp.Status, resp.Body, policy)
	logger.Debug("response classified", "target", name, "status", resp.Status, "outcome", outcome.String())

	return ports.ProbeResult{
		OK:         outcome == classifier.Accept,
		Conclusive: true,
		Targets: map[string]ports.TargetResult{
			name: {
				OK:     outcome == classifier.Accept,
				Signal: &ports.Signal{Status: resp.Status, Body: resp.Body},
			},
		},
	}
}
