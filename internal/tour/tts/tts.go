package tts

type Config struct {
	Type   string
	Voice  string
	Speed  float64
	Volume float64
}

// Engine interface for text-to-speech functionality
type Engine interface {
	Speak(text string) error
	SynthesizeToFile(text, path string) error
	SetVoice(voice string) error
	SetSpeed(speed float64) error
	SetVolume(volume float64) error
	Stop() error
	Pause() error
	Resume() error
	IsPlaying() bool
	GetAvailableVoices() ([]string, error)
}

// CacheableEngine extends Engine with cache management capabilities
type CacheableEngine interface {
	Engine
	GetCacheStats() (map[string]interface{}, error)
	ClearCache() error
}
