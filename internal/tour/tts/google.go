package tts

import (
	"context"
	"fmt"
	"strings"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// A little under the 5000-character API limit to be safe.
const googleChunkLimit = 4800

// GoogleEngine synthesizes speech through Google Cloud Text-to-Speech.
type GoogleEngine struct {
	client *texttospeech.Client
	ctx    context.Context
	voice  string
	speed  float64
	volume float64
	cache  *synthCache
	player player
	mu     sync.Mutex
}

func newGoogleEngine(config Config, cacheDir string) (*GoogleEngine, error) {
	ctx := context.Background()
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS client: %w", err)
	}

	cache, err := newSynthCache(cacheDir)
	if err != nil {
		return nil, err
	}

	voice := config.Voice
	if voice == "" || voice == "default" {
		voice = "en-US-Chirp3-HD-Charon"
	}
	speed := config.Speed
	if speed == 0 {
		speed = 1.0
	}

	return &GoogleEngine{
		client: client,
		ctx:    ctx,
		voice:  voice,
		speed:  speed,
		volume: config.Volume,
		cache:  cache,
	}, nil
}

// languageCode derives the language from a full voice name,
// e.g. "en-US-Chirp3-HD-Charon" -> "en-US".
func languageCode(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

func (g *GoogleEngine) synthesize(text string) ([]string, error) {
	chunks := splitChunks(text, googleChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	key := cacheKey(text, g.voice)
	if !g.cache.hasAll("google", key, len(chunks)) {
		for i, chunk := range chunks {
			if g.cache.has("google", key, i) {
				continue
			}

			audioCfg := &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			}
			// Chirp voices don't support speakingRate/pitch/SSML — skip them
			if !strings.Contains(strings.ToLower(g.voice), "chirp") {
				audioCfg.SpeakingRate = g.speed
				audioCfg.VolumeGainDb = g.volume
			}

			req := &texttospeechpb.SynthesizeSpeechRequest{
				Input: &texttospeechpb.SynthesisInput{
					InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
				},
				Voice: &texttospeechpb.VoiceSelectionParams{
					LanguageCode: languageCode(g.voice),
					Name:         g.voice,
				},
				AudioConfig: audioCfg,
			}
			resp, err := g.client.SynthesizeSpeech(g.ctx, req)
			if err != nil {
				return nil, fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
			}
			if err := g.cache.write("google", key, i, resp.AudioContent); err != nil {
				return nil, err
			}
		}
	}
	return g.cache.chunkPaths("google", key, len(chunks)), nil
}

func (g *GoogleEngine) Speak(text string) error {
	g.mu.Lock()
	paths, err := g.synthesize(text)
	g.mu.Unlock()
	if err != nil {
		return err
	}
	return g.player.PlayFiles(paths)
}

func (g *GoogleEngine) SynthesizeToFile(text, path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	paths, err := g.synthesize(text)
	if err != nil {
		return err
	}
	return concatFiles(paths, path)
}

func (g *GoogleEngine) SetVoice(voice string) error {
	g.mu.Lock()
	g.voice = voice
	g.mu.Unlock()
	return nil
}

func (g *GoogleEngine) SetSpeed(speed float64) error {
	g.mu.Lock()
	g.speed = speed
	g.mu.Unlock()
	return nil
}

func (g *GoogleEngine) SetVolume(volume float64) error {
	g.mu.Lock()
	g.volume = volume
	g.mu.Unlock()
	return nil
}

func (g *GoogleEngine) Stop() error     { return g.player.Stop() }
func (g *GoogleEngine) Pause() error    { return g.player.Pause() }
func (g *GoogleEngine) Resume() error   { return g.player.Resume() }
func (g *GoogleEngine) IsPlaying() bool { return g.player.IsPlaying() }

func (g *GoogleEngine) GetAvailableVoices() ([]string, error) {
	resp, err := g.client.ListVoices(g.ctx, &texttospeechpb.ListVoicesRequest{})
	if err != nil {
		return nil, err
	}
	voices := []string{}
	for _, v := range resp.Voices {
		voices = append(voices, v.Name)
	}
	return voices, nil
}

func (g *GoogleEngine) GetCacheStats() (map[string]interface{}, error) {
	return g.cache.Stats()
}

func (g *GoogleEngine) ClearCache() error {
	return g.cache.Clear()
}
