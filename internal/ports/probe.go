package ports

import (
	"context"
	"time"
)

// Signal is the raw material a verdict was derived from. A probe that never
// received a response has no Signal at all.
type Signal struct {
	Status int
	Body   string
}

type TargetResult struct {
	OK     bool
	Signal *Signal
}

// ProbeResult is one strategy invocation's outcome. Conclusive reports
// whether every target produced a concrete signal; only conclusive results
// are safe to persist as negative verdicts.
type ProbeResult struct {
	OK         bool
	Conclusive bool
	Targets    map[string]TargetResult
}

// ProbeStrategy performs one or more remote requests through an established
// connection and classifies the response. Strategies never retry internally;
// retries across invocations belong to the trackers.
type ProbeStrategy interface {
	Probe(ctx context.Context, conn ConnHandle, timeout time.Duration) ProbeResult
}
