package core

import "time"

// RoundMetrics is a snapshot of one Check invocation.
type RoundMetrics struct {
	RunID    string        `json:"run_id"`
	BatchKey string        `json:"batch_key"`
	Locked   bool          `json:"locked"`
	Duration time.Duration `json:"duration"`

	Total          int `json:"total"`
	ExcludedNodes  int `json:"excluded"`
	CachedAccepts  int `json:"cached_accepts"`
	CachedRejects  int `json:"cached_rejects"`
	Probed         int `json:"probed"`
	Accepted       int `json:"accepted"`
	Rejected       int `json:"rejected"`
	Inconclusive   int `json:"inconclusive"`
	Unusable       int `json:"unusable"`
	DeadlineMissed int `json:"deadline_missed"`
}
