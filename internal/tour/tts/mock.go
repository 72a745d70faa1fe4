package tts

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// MockEngine simulates synthesis for tests and dry runs.
type MockEngine struct {
	mu      sync.Mutex
	playing bool
	paused  bool
	speed   float64
	volume  float64
	voice   string

	// SpeakDelay lets tests skip the simulated reading pause.
	SpeakDelay time.Duration
}

func NewMockEngine(c Config) *MockEngine {
	voice := c.Voice
	if voice == "" {
		voice = "default"
	}
	speed := c.Speed
	if speed == 0 {
		speed = 1.0
	}
	return &MockEngine{
		speed:      speed,
		volume:     c.Volume,
		voice:      voice,
		SpeakDelay: 2 * time.Second,
	}
}

func (m *MockEngine) Speak(text string) error {
	m.mu.Lock()
	m.playing = true
	m.paused = false
	delay := m.SpeakDelay
	m.mu.Unlock()

	words := len(strings.Fields(text))
	duration := time.Duration(float64(words)/150.0/m.speed) * time.Minute
	color.Yellow("🔊 Narrating... (simulated for %v)", duration.Round(time.Second))

	time.Sleep(delay)

	m.mu.Lock()
	m.playing = false
	m.mu.Unlock()
	return nil
}

// SynthesizeToFile writes a placeholder file so downstream code has a
// real path to work with.
func (m *MockEngine) SynthesizeToFile(text, path string) error {
	content := fmt.Sprintf("mock audio (%s, %d words)\n", m.voice, len(strings.Fields(text)))
	return os.WriteFile(path, []byte(content), 0644)
}

func (m *MockEngine) SetVoice(voice string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voice = voice
	return nil
}

func (m *MockEngine) SetSpeed(speed float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = speed
	return nil
}

func (m *MockEngine) SetVolume(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
	return nil
}

func (m *MockEngine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.paused = false
	return nil
}

func (m *MockEngine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing {
		m.paused = true
	}
	return nil
}

func (m *MockEngine) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.paused {
		m.paused = false
	}
	return nil
}

func (m *MockEngine) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing && !m.paused
}

func (m *MockEngine) GetAvailableVoices() ([]string, error) {
	return []string{"mock-voice"}, nil
}
