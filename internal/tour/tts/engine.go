package tts

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type EngineType string

const (
	EngineTypeMock   EngineType = "mock"
	EngineTypeOpenAI EngineType = "openai"
	EngineTypeGoogle EngineType = "google"
	EngineTypeEdge   EngineType = "edge"
	EngineTypeESpeak EngineType = "espeak"
	EngineTypeAuto   EngineType = "auto" // Automatically choose best available
)

func (e EngineType) String() string {
	return string(e)
}

// NewEngine creates a new TTS engine based on the provided config
func NewEngine(config Config) (Engine, error) {
	if config.Type == EngineTypeAuto.String() || config.Type == "" {
		config.Type = bestAvailableEngine().String()
	}

	switch config.Type {
	case EngineTypeMock.String():
		return NewMockEngine(config), nil

	case EngineTypeOpenAI.String():
		return newOpenAIEngine(config,
			openAIKey(),
			viper.GetString("tts.openai_base_url"),
			viper.GetString("tts.openai_model"),
			viper.GetString("tts.cache_path"))

	case EngineTypeGoogle.String():
		return newGoogleEngine(config, viper.GetString("tts.cache_path"))

	case EngineTypeEdge.String():
		return newEdgeEngine(config, viper.GetString("tts.cache_path"))

	case EngineTypeESpeak.String():
		return newESpeakEngine(config)

	default:
		return nil, fmt.Errorf("unsupported TTS engine type: %s", config.Type)
	}
}

// bestAvailableEngine prefers the engine the user has credentials for,
// falling back to the keyless Edge service.
func bestAvailableEngine() EngineType {
	if openAIKey() != "" {
		return EngineTypeOpenAI
	}
	if hasGoogleCredentials() {
		return EngineTypeGoogle
	}
	return EngineTypeEdge
}

// GetAvailableEngines returns engines usable in the current environment
func GetAvailableEngines() []EngineType {
	engines := []EngineType{EngineTypeMock, EngineTypeEdge}

	if openAIKey() != "" {
		engines = append(engines, EngineTypeOpenAI)
	}
	if hasGoogleCredentials() {
		engines = append(engines, EngineTypeGoogle)
	}
	if _, err := findESpeakExecutable(); err == nil {
		engines = append(engines, EngineTypeESpeak)
	}

	return engines
}

func openAIKey() string {
	if key := viper.GetString("llm.api_key"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// hasGoogleCredentials checks if Google Cloud credentials are available
func hasGoogleCredentials() bool {
	_, ok := os.LookupEnv("GOOGLE_APPLICATION_CREDENTIALS")
	return ok
}
