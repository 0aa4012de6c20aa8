package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_RoundTrip(t *testing.T) {
	fc := NewFileCache[[]byte](t.TempDir())
	key := fc.GenerateKey("glo30", -120.5, 38.5)

	_, ok := fc.Get(key)
	assert.False(t, ok)

	payload := []byte{0x49, 0x49, 0x2a, 0x00, 0x08}
	require.NoError(t, fc.Set(key, payload))

	got, ok := fc.Get(key)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestFileCache_KeyIsStableAndParamSensitive(t *testing.T) {
	fc := NewFileCache[[]byte](t.TempDir())

	a := fc.GenerateKey("glo30", -120.5, 38.5, -120.0, 39.0)
	b := fc.GenerateKey("glo30", -120.5, 38.5, -120.0, 39.0)
	c := fc.GenerateKey("glo30", -120.5, 38.5, -120.0, 39.1)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestFileCache_RejectsTamperedEntry(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCache[[]byte](dir)
	key := fc.GenerateKey("tile")
	require.NoError(t, fc.Set(key, []byte("elevation bytes")))

	path := filepath.Join(dir, key+".json")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry CacheEntry[[]byte]
	require.NoError(t, json.Unmarshal(raw, &entry))
	entry.Data = []byte("swapped payload")
	tampered, err := json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, tampered, 0644))

	_, ok := fc.Get(key)
	assert.False(t, ok)
}

func TestFileCache_MissOnGarbageFile(t *testing.T) {
	dir := t.TempDir()
	fc := NewFileCache[string](dir)
	key := fc.GenerateKey("x")
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), []byte("not json"), 0644))

	_, ok := fc.Get(key)
	assert.False(t, ok)
}
