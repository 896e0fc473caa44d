package probegate

import "github.com/eleven-am/probegate/internal/domain"

// DefaultConfig returns a Config with every documented default applied:
// concurrency 10, per-request timeout 5s, round deadline 60s, two attempts
// per node, two probing rounds per batch, strict classification, api_only
// mode. Callers chain the With* builders to override.
func DefaultConfig() *Config {
	return domain.DefaultConfig()
}

// Fingerprint returns the canonical identity string for a node. Nodes that
// differ only in display label fingerprint identically.
func Fingerprint(n Node) string {
	return n.Fingerprint()
}

// BatchKey returns the order-independent identity of a node set, the key
// the batch lock tracker persists round history under.
func BatchKey(nodes []Node) string {
	return domain.BatchKey(nodes)
}
