package tts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks(t *testing.T) {
	assert.Nil(t, splitChunks("", 100))

	short := splitChunks("hello world", 100)
	require.Len(t, short, 1)
	assert.Equal(t, "hello world", short[0])
}

func TestSplitChunksBreaksOnSentence(t *testing.T) {
	text := "This is sentence number one. And here follows the second sentence."
	chunks := splitChunks(text, 30)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.True(t, strings.HasSuffix(chunks[0], "."), "chunk %q should end on a sentence", chunks[0])
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitChunksHardCutWithoutSentenceEnd(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := splitChunks(text, 100)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := cacheKey("hello", "nova")
	b := cacheKey("hello", "nova")
	c := cacheKey("hello", "alloy")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 8)
}

func TestSynthCacheRoundTrip(t *testing.T) {
	cache, err := newSynthCache(t.TempDir())
	require.NoError(t, err)

	key := cacheKey("some narration", "nova")
	assert.False(t, cache.has("openai", key, 0))
	assert.False(t, cache.hasAll("openai", key, 2))

	require.NoError(t, cache.write("openai", key, 0, []byte("chunk0")))
	require.NoError(t, cache.write("openai", key, 1, []byte("chunk1")))

	assert.True(t, cache.hasAll("openai", key, 2))

	paths := cache.chunkPaths("openai", key, 2)
	require.Len(t, paths, 2)
	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "chunk1", string(data))
}

func TestSynthCacheStatsAndClear(t *testing.T) {
	cache, err := newSynthCache(t.TempDir())
	require.NoError(t, err)

	key := cacheKey("text", "voice")
	require.NoError(t, cache.write("edge", key, 0, []byte("audio-bytes")))

	stats, err := cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats["cached_files"])
	assert.Equal(t, cache.root, stats["cache_directory"])

	require.NoError(t, cache.Clear())

	stats, err = cache.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats["cached_files"])

	// Cache dir survives a clear.
	_, err = os.Stat(cache.root)
	assert.NoError(t, err)
}

func TestConcatFiles(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.mp3")
	require.NoError(t, os.WriteFile(a, []byte("AAA"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("BBB"), 0644))

	out := filepath.Join(dir, "out", "tour.mp3")
	require.NoError(t, concatFiles([]string{a, b}, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "AAABBB", string(data))
}
