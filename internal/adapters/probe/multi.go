package probe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

// Multi probes several targets concurrently over the same connection and
// reports a per-target verdict map. The aggregate result is conclusive only
// when every target produced a concrete signal; a single transport failure
// makes the round unsafe to cache as a negative.
type Multi struct {
	client   ports.HTTPClient
	targets  map[string]domain.TargetConfig
	policies map[string]domain.ClassifierConfig
	logger   *slog.Logger
}

func NewMulti(client ports.HTTPClient, targets map[string]domain.TargetConfig, policies map[string]domain.ClassifierConfig, logger *slog.Logger) *Multi {
	if logger == nil {
		logger = slog.Default()
	}

	return &Multi{
		client:   client,
		targets:  targets,
		policies: policies,
		logger:   logger.With("component", "probe", "strategy", "multi"),
	}
}

func (m *Multi) Probe(ctx context.Context, conn ports.ConnHandle, timeout time.Duration) ports.ProbeResult {
	var mu sync.Mutex
	var wg sync.WaitGroup

	results := make(map[string]ports.TargetResult, len(m.targets))

	for name, target := range m.targets {
		wg.Add(1)
		go func(name string, target domain.TargetConfig) {
			defer wg.Done()

			policy, ok := m.policies[name]
			if !ok {
				policy = domain.DefaultClassifierConfig()
			}

			one := probeOne(ctx, m.client, conn, name, target, policy, timeout, m.logger)

			mu.Lock()
			results[name] = one.Targets[name]
			mu.Unlock()
		}(name, target)
	}
	wg.Wait()

	out := ports.ProbeResult{
		OK:         len(results) > 0,
		Conclusive: true,
		Targets:    results,
	}
	for _, tr := range results {
		if tr.Signal == nil {
			out.Conclusive = false
		}
		if !tr.OK {
			out.OK = false
		}
	}
	return out
}
