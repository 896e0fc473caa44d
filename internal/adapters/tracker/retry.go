package tracker

import (
	"log/slog"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
	"github.com/eleven-am/probegate/internal/xjson"
)

// Retry enforces the per-node attempt cap across invocations. Success is
// sticky: once a record carries OK=true the node is never probed again while
// the cache holds. Failure accumulates tries until the cap, then acts as a
// permanent give-up marker subject only to force override.
type Retry struct {
	cache  ports.Cache
	logger *slog.Logger
}

func NewRetry(cache ports.Cache, logger *slog.Logger) *Retry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Retry{
		cache:  cache,
		logger: logger.With("component", "retry-tracker"),
	}
}

// Lookup fetches the decision record for a fingerprint. A cache failure is
// reported as absent: the engine degrades to always-probe rather than
// refusing the node.
func (t *Retry) Lookup(fingerprint string) (domain.DecisionRecord, bool) {
	data, exists, err := t.cache.Get(domain.DecisionKey(fingerprint))
	if err != nil {
		t.logger.Error("decision lookup failed, treating as absent", "fingerprint", fingerprint, "error", err)
		return domain.DecisionRecord{}, false
	}
	if !exists {
		return domain.DecisionRecord{}, false
	}

	var rec domain.DecisionRecord
	if err := xjson.Unmarshal(data, &rec); err != nil {
		t.logger.Error("decision record corrupted, treating as absent", "fingerprint", fingerprint, "error", err)
		return domain.DecisionRecord{}, false
	}
	return rec, true
}

// ShouldProbe decides whether a node earns a real probe this round.
// maxTries <= 0 disables the cap.
func ShouldProbe(rec domain.DecisionRecord, exists bool, maxTries int, force bool) bool {
	if force {
		return true
	}
	if !exists {
		return true
	}
	if rec.OK {
		return false
	}
	return maxTries <= 0 || rec.Tries < maxTries
}

// Record persists the outcome of a completed probe, bumping the attempt
// counter past whatever was observed before the probe ran.
func (t *Retry) Record(fingerprint string, priorTries int, ok bool) domain.DecisionRecord {
	rec := domain.DecisionRecord{
		OK:        ok,
		Tries:     priorTries + 1,
		Timestamp: time.Now(),
	}

	data, err := xjson.Marshal(rec)
	if err != nil {
		t.logger.Error("failed to marshal decision record", "fingerprint", fingerprint, "error", err)
		return rec
	}

	if err := t.cache.Put(domain.DecisionKey(fingerprint), data); err != nil {
		t.logger.Error("failed to persist decision record", "fingerprint", fingerprint, "error", err)
	} else {
		t.logger.Debug("decision recorded", "fingerprint", fingerprint, "ok", ok, "tries", rec.Tries)
	}
	return rec
}

// Forget drops the decision record for a fingerprint, the force-reset path.
func (t *Retry) Forget(fingerprint string) error {
	return t.cache.Delete(domain.DecisionKey(fingerprint))
}
