package domain

const (
	DecisionPrefix = "decision:"
	BatchPrefix    = "batch:"
)

// DecisionKey builds the canonical cache key for a node's decision record
func DecisionKey(fingerprint string) string {
	return DecisionPrefix + fingerprint
}

// BatchMetaKey builds the canonical cache key for a batch's round metadata
func BatchMetaKey(batchKey string) string {
	return BatchPrefix + batchKey
}
