package tts

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// synthCache stores synthesized MP3 chunks on disk so repeated tours of
// the same text and voice never hit the vendor API twice.
type synthCache struct {
	root string
}

func newSynthCache(root string) (*synthCache, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &synthCache{root: root}, nil
}

// cacheKey identifies a text + voice combination.
func cacheKey(text, voice string) string {
	h := md5.New()
	io.WriteString(h, text+voice)
	return fmt.Sprintf("%x", h.Sum(nil))[:8]
}

func (c *synthCache) chunkPath(engine, key string, i int) string {
	return filepath.Join(c.root, engine, fmt.Sprintf("%s_%d.mp3", key, i))
}

func (c *synthCache) has(engine, key string, i int) bool {
	_, err := os.Stat(c.chunkPath(engine, key, i))
	return err == nil
}

func (c *synthCache) hasAll(engine, key string, n int) bool {
	for i := 0; i < n; i++ {
		if !c.has(engine, key, i) {
			return false
		}
	}
	return true
}

func (c *synthCache) write(engine, key string, i int, data []byte) error {
	path := c.chunkPath(engine, key, i)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache chunk %d to %s: %w", i, path, err)
	}
	return nil
}

// chunkPaths returns the cache paths for all n chunks.
func (c *synthCache) chunkPaths(engine, key string, n int) []string {
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		paths = append(paths, c.chunkPath(engine, key, i))
	}
	return paths
}

// Stats walks the cache tree and reports file count and size.
func (c *synthCache) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var totalFiles int64
	var totalSize int64

	err := filepath.Walk(c.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // keep walking
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".mp3") {
			totalFiles++
			totalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	stats["cache_directory"] = c.root
	stats["cached_files"] = totalFiles
	stats["total_size_mb"] = float64(totalSize) / (1024 * 1024)
	return stats, nil
}

// Clear removes all cached audio.
func (c *synthCache) Clear() error {
	if err := os.RemoveAll(c.root); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return os.MkdirAll(c.root, 0755)
}

// splitChunks slices text into vendor-safe pieces, breaking on sentence
// ends where possible.
func splitChunks(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}

		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' || runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return chunks
}

// concatFiles joins chunk files into one output file. MP3 frames are
// self-contained, so plain concatenation yields a playable file.
func concatFiles(paths []string, out string) error {
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	for _, path := range paths {
		chunk, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open chunk %s: %w", path, err)
		}
		_, err = io.Copy(f, chunk)
		chunk.Close()
		if err != nil {
			return fmt.Errorf("failed to append chunk %s: %w", path, err)
		}
	}
	return nil
}
