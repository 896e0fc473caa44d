package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Node is one egress path (proxy) configuration under test. The engine never
// interprets the configuration beyond deriving a fingerprint from it; Label
// is display-only and excluded from identity.
type Node struct {
	Protocol string            `json:"protocol" yaml:"protocol"`
	Server   string            `json:"server" yaml:"server"`
	Port     int               `json:"port" yaml:"port"`
	UserID   string            `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Params   map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Label    string            `json:"label,omitempty" yaml:"label,omitempty"`
}

// Fingerprint returns the canonical identity string for the node. Two nodes
// that differ only in Label fingerprint identically. Params are serialized in
// sorted key order so map iteration order never leaks into the identity.
func (n Node) Fingerprint() string {
	var b strings.Builder
	b.WriteString(n.Protocol)
	b.WriteByte('|')
	b.WriteString(n.Server)
	b.WriteByte('|')
	fmt.Fprintf(&b, "%d", n.Port)
	b.WriteByte('|')
	b.WriteString(n.UserID)

	if len(n.Params) > 0 {
		keys := make([]string, 0, len(n.Params))
		for k := range n.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte('|')
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(n.Params[k])
		}
	}

	return b.String()
}

// BatchKey derives an order-independent key for a set of nodes: fingerprints
// are sorted before hashing, so any permutation of the same set yields the
// same key while any membership or configuration change yields a new one.
func BatchKey(nodes []Node) string {
	fps := make([]string, len(nodes))
	for i, n := range nodes {
		fps[i] = n.Fingerprint()
	}
	sort.Strings(fps)

	h := murmur3.New128()
	for _, fp := range fps {
		h.Write([]byte(fp))
		h.Write([]byte{0})
	}
	hi, lo := h.Sum128()
	return fmt.Sprintf("%016x%016x", hi, lo)
}
