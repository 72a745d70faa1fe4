package tts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	openaiDefaultBaseURL = "https://api.openai.com"
	openaiDefaultModel   = "tts-1"
	openaiDefaultVoice   = "nova"

	// A little under the 4096-character API limit to be safe.
	openaiChunkLimit = 4000
)

var openaiVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

// OpenAIEngine synthesizes speech through the OpenAI audio API and plays
// or exports the resulting MP3, caching chunks on disk.
type OpenAIEngine struct {
	apiKey  string
	baseURL string
	model   string
	voice   string
	speed   float64
	client  *http.Client
	cache   *synthCache
	player  player
	mu      sync.Mutex
}

func newOpenAIEngine(config Config, apiKey, baseURL, model, cacheDir string) (*OpenAIEngine, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai tts: API key is required")
	}
	if baseURL == "" {
		baseURL = openaiDefaultBaseURL
	}
	if model == "" {
		model = openaiDefaultModel
	}
	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = openaiDefaultVoice
	}
	speed := config.Speed
	if speed == 0 {
		speed = 1.0
	}

	cache, err := newSynthCache(cacheDir)
	if err != nil {
		return nil, err
	}

	return &OpenAIEngine{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		voice:   voice,
		speed:   speed,
		client:  &http.Client{Timeout: 120 * time.Second},
		cache:   cache,
	}, nil
}

type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// synthesize makes sure every chunk of the text exists in the cache and
// returns the chunk paths in playback order.
func (e *OpenAIEngine) synthesize(text string) ([]string, error) {
	chunks := splitChunks(text, openaiChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	key := cacheKey(text, e.voice+"/"+e.model)
	if !e.cache.hasAll("openai", key, len(chunks)) {
		for i, chunk := range chunks {
			if e.cache.has("openai", key, i) {
				continue
			}
			audio, err := e.createSpeech(chunk)
			if err != nil {
				return nil, fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
			}
			if err := e.cache.write("openai", key, i, audio); err != nil {
				return nil, err
			}
		}
	}
	return e.cache.chunkPaths("openai", key, len(chunks)), nil
}

func (e *OpenAIEngine) createSpeech(text string) ([]byte, error) {
	reqBody := speechRequest{
		Model:          e.model,
		Input:          text,
		Voice:          e.voice,
		ResponseFormat: "mp3",
	}
	if e.speed != 1.0 {
		reqBody.Speed = e.speed
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.baseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech API returned HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return io.ReadAll(resp.Body)
}

func (e *OpenAIEngine) Speak(text string) error {
	e.mu.Lock()
	paths, err := e.synthesize(text)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.player.PlayFiles(paths)
}

func (e *OpenAIEngine) SynthesizeToFile(text, path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	paths, err := e.synthesize(text)
	if err != nil {
		return err
	}
	return concatFiles(paths, path)
}

func (e *OpenAIEngine) SetVoice(voice string) error {
	for _, v := range openaiVoices {
		if v == voice {
			e.mu.Lock()
			e.voice = voice
			e.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("voice '%s' not available (options: %s)",
		voice, strings.Join(openaiVoices, ", "))
}

func (e *OpenAIEngine) SetSpeed(speed float64) error {
	if speed < 0.25 || speed > 4.0 {
		return fmt.Errorf("speed must be between 0.25 and 4.0")
	}
	e.mu.Lock()
	e.speed = speed
	e.mu.Unlock()
	return nil
}

func (e *OpenAIEngine) SetVolume(volume float64) error {
	// The speech API has no volume control; playback volume is handled
	// by the OS mixer.
	if volume < 0 || volume > 2.0 {
		return fmt.Errorf("volume must be between 0 and 2.0")
	}
	return nil
}

func (e *OpenAIEngine) Stop() error     { return e.player.Stop() }
func (e *OpenAIEngine) Pause() error    { return e.player.Pause() }
func (e *OpenAIEngine) Resume() error   { return e.player.Resume() }
func (e *OpenAIEngine) IsPlaying() bool { return e.player.IsPlaying() }

func (e *OpenAIEngine) GetAvailableVoices() ([]string, error) {
	return append([]string(nil), openaiVoices...), nil
}

func (e *OpenAIEngine) GetCacheStats() (map[string]interface{}, error) {
	return e.cache.Stats()
}

func (e *OpenAIEngine) ClearCache() error {
	return e.cache.Clear()
}
