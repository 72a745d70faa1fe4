package tts

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineMock(t *testing.T) {
	engine, err := NewEngine(Config{Type: "mock", Speed: 1.0, Volume: 1.0})
	require.NoError(t, err)
	_, ok := engine.(*MockEngine)
	assert.True(t, ok)
}

func TestNewEngineUnsupportedType(t *testing.T) {
	_, err := NewEngine(Config{Type: "gramophone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported TTS engine type")
}

func TestNewEngineOpenAIFromConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	viper.Set("tts.cache_path", t.TempDir())
	defer viper.Set("tts.cache_path", "")

	engine, err := NewEngine(Config{Type: "openai", Voice: "nova"})
	require.NoError(t, err)

	oa, ok := engine.(*OpenAIEngine)
	require.True(t, ok)
	assert.Equal(t, "env-key", oa.apiKey)
	assert.Equal(t, openaiDefaultBaseURL, oa.baseURL)
	assert.Equal(t, openaiDefaultModel, oa.model)
}

func TestBestAvailableEngine(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	// An empty GOOGLE_APPLICATION_CREDENTIALS still counts as set, so
	// only the OpenAI preference can be asserted reliably here.
	t.Setenv("OPENAI_API_KEY", "key")
	assert.Equal(t, EngineTypeOpenAI, bestAvailableEngine())
}

func TestGetAvailableEnginesAlwaysHasFallbacks(t *testing.T) {
	engines := GetAvailableEngines()
	assert.Contains(t, engines, EngineTypeMock)
	assert.Contains(t, engines, EngineTypeEdge)
}

func TestOpenAIKeyPrefersConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	viper.Set("llm.api_key", "config-key")
	defer viper.Set("llm.api_key", "")

	assert.Equal(t, "config-key", openAIKey())

	viper.Set("llm.api_key", "")
	assert.Equal(t, "env-key", openAIKey())
}
