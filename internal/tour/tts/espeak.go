// Cross-platform eSpeak implementation
package tts

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// ESpeakEngine implements TTS using eSpeak/eSpeak-NG
type ESpeakEngine struct {
	config  Config
	cmd     *exec.Cmd
	playing bool
	paused  bool
	mutex   sync.RWMutex
}

// newESpeakEngine creates a new eSpeak TTS engine
func newESpeakEngine(config Config) (*ESpeakEngine, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, fmt.Errorf("eSpeak not found: %w", err)
	}

	engine := &ESpeakEngine{
		config: config,
	}

	if err := engine.testInstallation(espeakPath); err != nil {
		return nil, fmt.Errorf("eSpeak test failed: %w", err)
	}

	return engine, nil
}

func findESpeakExecutable() (string, error) {
	candidates := []string{"espeak-ng", "espeak"}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("eSpeak executable not found in PATH")
}

func (e *ESpeakEngine) testInstallation(espeakPath string) error {
	cmd := exec.Command(espeakPath, "--version")
	return cmd.Run()
}

func (e *ESpeakEngine) args() []string {
	args := []string{}

	if e.config.Voice != "" && e.config.Voice != "default" {
		args = append(args, "-v", e.config.Voice)
	}

	// Speed in words per minute, eSpeak default is 175
	speed := int(175 * e.config.Speed)
	if speed <= 0 {
		speed = 175
	}
	args = append(args, "-s", strconv.Itoa(speed))

	// Volume 0-200, default is 100
	volume := int(100 * e.config.Volume)
	if volume <= 0 {
		volume = 100
	}
	args = append(args, "-a", strconv.Itoa(volume))

	return args
}

func (e *ESpeakEngine) Speak(text string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.playing {
		return fmt.Errorf("already playing")
	}

	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return err
	}

	args := append(e.args(), text)
	e.cmd = exec.Command(espeakPath, args...)
	e.playing = true
	e.paused = false

	go func() {
		defer func() {
			e.mutex.Lock()
			e.playing = false
			e.paused = false
			e.mutex.Unlock()
		}()

		if err := e.cmd.Run(); err != nil {
			if e.cmd.ProcessState != nil && e.cmd.ProcessState.Exited() {
				return
			}
			logrus.WithError(err).Warn("eSpeak playback failed")
		}
	}()

	return nil
}

// SynthesizeToFile writes the narration with eSpeak's -w flag. The output
// is WAV regardless of the path's extension.
func (e *ESpeakEngine) SynthesizeToFile(text, path string) error {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return err
	}

	if strings.HasSuffix(strings.ToLower(path), ".mp3") {
		logrus.Warn("eSpeak exports WAV audio; the file will not be MP3-encoded")
	}

	args := append(e.args(), "-w", path, text)
	cmd := exec.Command(espeakPath, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("eSpeak export failed: %w", err)
	}
	return nil
}

func (e *ESpeakEngine) Stop() error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.cmd != nil && e.cmd.Process != nil {
		if err := e.cmd.Process.Kill(); err != nil {
			return err
		}
	}

	e.playing = false
	e.paused = false
	return nil
}

func (e *ESpeakEngine) Pause() error {
	// eSpeak's command-line interface has no pause; the closest we can
	// offer is stop.
	return fmt.Errorf("eSpeak does not support pause")
}

func (e *ESpeakEngine) Resume() error {
	return fmt.Errorf("eSpeak does not support resume")
}

func (e *ESpeakEngine) SetVoice(voice string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	voices, err := e.GetAvailableVoices()
	if err != nil {
		return err
	}

	for _, v := range voices {
		if v == voice {
			e.config.Voice = voice
			return nil
		}
	}

	return fmt.Errorf("voice '%s' not available", voice)
}

func (e *ESpeakEngine) SetSpeed(speed float64) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if speed <= 0 || speed > 3.0 {
		return fmt.Errorf("speed must be between 0.1 and 3.0")
	}

	e.config.Speed = speed
	return nil
}

func (e *ESpeakEngine) SetVolume(volume float64) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if volume < 0 || volume > 2.0 {
		return fmt.Errorf("volume must be between 0 and 2.0")
	}

	e.config.Volume = volume
	return nil
}

func (e *ESpeakEngine) IsPlaying() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.playing && !e.paused
}

func (e *ESpeakEngine) GetAvailableVoices() ([]string, error) {
	espeakPath, err := findESpeakExecutable()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(espeakPath, "--voices")
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	return parseESpeakVoices(string(output)), nil
}

func parseESpeakVoices(output string) []string {
	lines := strings.Split(output, "\n")
	voices := make([]string, 0)

	for i, line := range lines {
		// Skip header line
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		// Pty Language Age/Gender VoiceName File Other Languages
		fields := strings.Fields(line)
		if len(fields) >= 4 {
			voices = append(voices, fields[3])
		}
	}

	return voices
}
