package tracker

import (
	"log/slog"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
	"github.com/eleven-am/probegate/internal/xjson"
)

// Batch bounds the total probing cost for one exact node set. Once a batch
// has consumed its allowance of real probing rounds it locks, and every
// later invocation for the same set answers purely from cache.
type Batch struct {
	cache  ports.Cache
	logger *slog.Logger
}

func NewBatch(cache ports.Cache, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}

	return &Batch{
		cache:  cache,
		logger: logger.With("component", "batch-tracker"),
	}
}

func (t *Batch) Lookup(batchKey string) (domain.BatchMeta, bool) {
	data, exists, err := t.cache.Get(domain.BatchMetaKey(batchKey))
	if err != nil {
		t.logger.Error("batch meta lookup failed, treating as absent", "batch", batchKey, "error", err)
		return domain.BatchMeta{}, false
	}
	if !exists {
		return domain.BatchMeta{}, false
	}

	var meta domain.BatchMeta
	if err := xjson.Unmarshal(data, &meta); err != nil {
		t.logger.Error("batch meta corrupted, treating as absent", "batch", batchKey, "error", err)
		return domain.BatchMeta{}, false
	}
	return meta, true
}

// IsLocked reports whether the batch is in cache-only mode. maxRuns <= 0
// disables locking entirely.
func IsLocked(meta domain.BatchMeta, exists bool, maxRuns int, force bool) bool {
	if force || maxRuns <= 0 || !exists {
		return false
	}
	return meta.Locked || meta.Runs >= maxRuns
}

// Advance counts a finished round against the batch's allowance. Rounds in
// which every node was resolved from cache do not consume a run.
func (t *Batch) Advance(batchKey string, meta domain.BatchMeta, attempted int, maxRuns int) domain.BatchMeta {
	if attempted <= 0 {
		return meta
	}

	meta.Runs++
	meta.Locked = maxRuns > 0 && meta.Runs >= maxRuns
	meta.Timestamp = time.Now()

	data, err := xjson.Marshal(meta)
	if err != nil {
		t.logger.Error("failed to marshal batch meta", "batch", batchKey, "error", err)
		return meta
	}

	if err := t.cache.Put(domain.BatchMetaKey(batchKey), data); err != nil {
		t.logger.Error("failed to persist batch meta", "batch", batchKey, "error", err)
		return meta
	}

	if meta.Locked {
		t.logger.Info("batch locked into cache-only mode", "batch", batchKey, "runs", meta.Runs)
	} else {
		t.logger.Debug("batch round recorded", "batch", batchKey, "runs", meta.Runs)
	}
	return meta
}

// Forget drops the round history for a batch, the force-reset path.
func (t *Batch) Forget(batchKey string) error {
	return t.cache.Delete(domain.BatchMetaKey(batchKey))
}
