package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/probegate/internal/domain"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	_, exists, err := m.Get("missing")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, m.Put("k", []byte("v1")))
	value, exists, err := m.Get("k")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, []byte("v1"), value)

	require.NoError(t, m.Put("k", []byte("v2")))
	value, _, _ = m.Get("k")
	assert.Equal(t, []byte("v2"), value)

	require.NoError(t, m.Delete("k"))
	_, exists, _ = m.Get("k")
	assert.False(t, exists)
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()

	src := []byte("original")
	require.NoError(t, m.Put("k", src))
	src[0] = 'X'

	value, _, _ := m.Get("k")
	assert.Equal(t, []byte("original"), value)

	value[0] = 'Y'
	again, _, _ := m.Get("k")
	assert.Equal(t, []byte("original"), again)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())

	_, _, err := m.Get("k")
	assert.ErrorIs(t, err, domain.ErrClosed)
	assert.ErrorIs(t, m.Put("k", nil), domain.ErrClosed)
	assert.ErrorIs(t, m.Delete("k"), domain.ErrClosed)
}
