package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerRoundTrip(t *testing.T) {
	b, err := NewBadger(t.TempDir(), nil)
	require.NoError(t, err)
	defer b.Close()

	_, exists, err := b.Get("missing")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, b.Put("decision:fp1", []byte(`{"ok":true,"tries":1}`)))
	value, exists, err := b.Get("decision:fp1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.JSONEq(t, `{"ok":true,"tries":1}`, string(value))

	require.NoError(t, b.Delete("decision:fp1"))
	_, exists, err = b.Get("decision:fp1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBadger(dir, nil)
	require.NoError(t, err)
	require.NoError(t, b.Put("batch:key", []byte(`{"runs":2,"locked":true}`)))
	require.NoError(t, b.Close())

	reopened, err := NewBadger(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	value, exists, err := reopened.Get("batch:key")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.JSONEq(t, `{"runs":2,"locked":true}`, string(value))
}
