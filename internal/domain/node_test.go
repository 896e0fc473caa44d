package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintIgnoresLabel(t *testing.T) {
	a := Node{Protocol: "socks5", Server: "10.0.0.1", Port: 1080, UserID: "u", Label: "edge-1"}
	b := a
	b.Label = "completely different name"

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintParamOrderIndependent(t *testing.T) {
	a := Node{Protocol: "vmess", Server: "h", Port: 443, Params: map[string]string{"sni": "x", "path": "/ws", "alpn": "h2"}}
	b := Node{Protocol: "vmess", Server: "h", Port: 443, Params: map[string]string{"alpn": "h2", "path": "/ws", "sni": "x"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintSensitiveToConfig(t *testing.T) {
	base := Node{Protocol: "socks5", Server: "10.0.0.1", Port: 1080, UserID: "u"}

	changed := base
	changed.Port = 1081
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())

	changed = base
	changed.Server = "10.0.0.2"
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())

	changed = base
	changed.Params = map[string]string{"sni": "x"}
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())
}

func TestBatchKeyPermutationInvariant(t *testing.T) {
	nodes := []Node{
		{Protocol: "socks5", Server: "a", Port: 1},
		{Protocol: "socks5", Server: "b", Port: 2},
		{Protocol: "http", Server: "c", Port: 3},
		{Protocol: "http", Server: "d", Port: 4},
		{Protocol: "vmess", Server: "e", Port: 5},
	}
	want := BatchKey(nodes)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Node, len(nodes))
		copy(shuffled, nodes)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		assert.Equal(t, want, BatchKey(shuffled))
	}
}

func TestBatchKeySensitiveToMembership(t *testing.T) {
	nodes := []Node{
		{Protocol: "socks5", Server: "a", Port: 1},
		{Protocol: "socks5", Server: "b", Port: 2},
	}
	key := BatchKey(nodes)

	assert.NotEqual(t, key, BatchKey(nodes[:1]))

	extra := append([]Node{}, nodes...)
	extra = append(extra, Node{Protocol: "http", Server: "c", Port: 3})
	assert.NotEqual(t, key, BatchKey(extra))

	modified := []Node{nodes[0], {Protocol: "socks5", Server: "b", Port: 2, UserID: "changed"}}
	assert.NotEqual(t, key, BatchKey(modified))
}

func TestBatchKeyLabelInvariant(t *testing.T) {
	a := []Node{{Protocol: "socks5", Server: "a", Port: 1, Label: "one"}}
	b := []Node{{Protocol: "socks5", Server: "a", Port: 1, Label: "two"}}

	assert.Equal(t, BatchKey(a), BatchKey(b))
}
