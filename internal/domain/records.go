package domain

import "time"

// DecisionRecord is the persisted verdict history for one node fingerprint.
// OK=true is terminal: the node is never re-probed while the record exists,
// regardless of Tries. OK=false accumulates Tries until the configured cap.
type DecisionRecord struct {
	OK        bool      `json:"ok"`
	Tries     int       `json:"tries"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchMeta is the persisted round history for one batch key. Runs counts
// only rounds in which at least one real probe was attempted; Locked is
// permanent once Runs reaches the cap and gates the batch into cache-only
// answers until a force override.
type BatchMeta struct {
	Runs      int       `json:"runs"`
	Locked    bool      `json:"locked"`
	Timestamp time.Time `json:"timestamp"`
}
