package tts

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pp-group/edge-tts-go/biz/service/tts/edge"
)

var edgeVoices = []string{
	"en-US-AriaNeural",
	"en-US-GuyNeural",
	"en-US-JennyNeural",
	"en-GB-SoniaNeural",
	"en-AU-NatashaNeural",
}

// EdgeEngine synthesizes speech through the Microsoft Edge TTS service.
// It needs no credentials, which makes it the keyless fallback.
type EdgeEngine struct {
	voice  string
	cache  *synthCache
	player player
	mu     sync.Mutex
}

func newEdgeEngine(config Config, cacheDir string) (*EdgeEngine, error) {
	cache, err := newSynthCache(cacheDir)
	if err != nil {
		return nil, err
	}

	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = edgeVoices[0]
	}

	return &EdgeEngine{voice: voice, cache: cache}, nil
}

func (e *EdgeEngine) synthesize(text string) ([]string, error) {
	// Edge streams per request, so one chunk per request keeps the
	// cache layout shared with the other engines.
	chunks := splitChunks(text, 4000)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	key := cacheKey(text, e.voice)
	if !e.cache.hasAll("edge", key, len(chunks)) {
		for i, chunk := range chunks {
			if e.cache.has("edge", key, i) {
				continue
			}
			audio, err := e.stream(chunk)
			if err != nil {
				return nil, fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
			}
			if err := e.cache.write("edge", key, i, audio); err != nil {
				return nil, err
			}
		}
	}
	return e.cache.chunkPaths("edge", key, len(chunks)), nil
}

// stream collects the MP3 audio for one chunk of text.
func (e *EdgeEngine) stream(text string) ([]byte, error) {
	comm, err := edge.NewCommunicate(text, edge.WithVoice(e.voice))
	if err != nil {
		return nil, fmt.Errorf("edge-tts setup failed: %w", err)
	}

	ch, err := comm.Stream()
	if err != nil {
		return nil, fmt.Errorf("edge-tts stream failed: %w", err)
	}

	var buf bytes.Buffer
	for msg := range ch {
		if msgType, ok := msg["type"].(string); ok && msgType == "audio" {
			if data, ok := msg["data"].([]byte); ok {
				buf.Write(data)
			}
		}
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("edge-tts returned no audio")
	}
	return buf.Bytes(), nil
}

func (e *EdgeEngine) Speak(text string) error {
	e.mu.Lock()
	paths, err := e.synthesize(text)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.player.PlayFiles(paths)
}

func (e *EdgeEngine) SynthesizeToFile(text, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	paths, err := e.synthesize(text)
	if err != nil {
		return err
	}
	return concatFiles(paths, path)
}

func (e *EdgeEngine) SetVoice(voice string) error {
	e.mu.Lock()
	e.voice = voice
	e.mu.Unlock()
	return nil
}

func (e *EdgeEngine) SetSpeed(speed float64) error {
	return fmt.Errorf("edge engine does not support speed control")
}

func (e *EdgeEngine) SetVolume(volume float64) error {
	return fmt.Errorf("edge engine does not support volume control")
}

func (e *EdgeEngine) Stop() error     { return e.player.Stop() }
func (e *EdgeEngine) Pause() error    { return e.player.Pause() }
func (e *EdgeEngine) Resume() error   { return e.player.Resume() }
func (e *EdgeEngine) IsPlaying() bool { return e.player.IsPlaying() }

func (e *EdgeEngine) GetAvailableVoices() ([]string, error) {
	return append([]string(nil), edgeVoices...), nil
}

func (e *EdgeEngine) GetCacheStats() (map[string]interface{}, error) {
	return e.cache.Stats()
}

func (e *EdgeEngine) ClearCache() error {
	return e.cache.Clear()
}
