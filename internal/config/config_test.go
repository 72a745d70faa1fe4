package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetDefaults(t *testing.T) {
	SetDefaults()

	assert.Equal(t, "gpt-4o-mini", viper.GetString("llm.model"))
	assert.Equal(t, "https://api.openai.com", viper.GetString("llm.base_url"))
	assert.Equal(t, "auto", viper.GetString("tts.type"))
	assert.Equal(t, "tts-1", viper.GetString("tts.openai_model"))
	assert.Equal(t, 10, viper.GetInt("tour.duration"))
	assert.Equal(t, "friendly", viper.GetString("tour.style"))
	assert.NotEmpty(t, viper.GetString("tts.cache_path"))
	assert.NotEmpty(t, viper.GetString("archive.dir"))
}

func TestAPIKeyFromEnv(t *testing.T) {
	SetDefaults()
	t.Setenv("OPENAI_API_KEY", "from-env")

	assert.Equal(t, "from-env", viper.GetString("llm.api_key"))
}

func TestCacheDirNeverEmpty(t *testing.T) {
	assert.NotEmpty(t, CacheDir())
}
