package core

import "strings"

// TagLabel prepends the configured prefix to a display label. The operation
// is idempotent: a label already carrying the prefix is returned unchanged,
// so repeated invocations never stack prefixes.
func TagLabel(label, prefix string) string {
	if prefix == "" || strings.HasPrefix(label, prefix) {
		return label
	}
	return prefix + label
}

// Excluded reports whether a display label matches any exclusion marker.
// Matching nodes are informational entries (traffic counters, expiry
// notices) and never probed.
func Excluded(label string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(label, marker) {
			return true
		}
	}
	return false
}
