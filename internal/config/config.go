package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

func SetDefaults() {
	viper.SetDefault("llm.base_url", "https://api.openai.com")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.timeout", "60s")

	viper.SetDefault("tts.type", "auto") // Auto-select best engine
	viper.SetDefault("tts.voice", "default")
	viper.SetDefault("tts.speed", 1.0)
	viper.SetDefault("tts.volume", 1.0)
	viper.SetDefault("tts.openai_model", "tts-1")
	viper.SetDefault("tts.openai_base_url", "https://api.openai.com")
	viper.SetDefault("tts.cache_path", filepath.Join(CacheDir(), "audio"))

	viper.SetDefault("archive.dir", filepath.Join(CacheDir(), "archive"))

	viper.SetDefault("tour.duration", 10)
	viper.SetDefault("tour.style", "friendly")
	viper.SetDefault("tour.interests", []string{"history", "architecture"})

	// The API key never lives in the config file by default.
	viper.BindEnv("llm.api_key", "OPENAI_API_KEY")
}

// CacheDir returns the directory for synthesized audio and saved tours.
func CacheDir() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "tourcast")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".tourcast", "cache")
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, "cache")
	}

	return "cache"
}
