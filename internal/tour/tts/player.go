package tts

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// player plays cached MP3 chunk files through the speaker, one after the
// other, with pause/resume and stop. Shared by all network TTS engines.
type player struct {
	mu         sync.Mutex
	ctrl       *beep.Ctrl
	finish     func()
	sampleRate beep.SampleRate
	playing    bool
	paused     bool
	stopped    bool
}

// PlayFiles plays the files in order and blocks until done or stopped.
func (p *player) PlayFiles(paths []string) error {
	p.mu.Lock()
	p.stopped = false
	p.mu.Unlock()

	for _, path := range paths {
		p.mu.Lock()
		stopped := p.stopped
		p.mu.Unlock()
		if stopped {
			return nil
		}
		if err := p.playFile(path); err != nil {
			return err
		}
	}
	return nil
}

func (p *player) playFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open cached MP3 %s: %w", path, err)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode MP3 %s: %w", path, err)
	}
	defer streamer.Close()

	if p.sampleRate != format.SampleRate {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.sampleRate = format.SampleRate
	}

	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }

	p.mu.Lock()
	p.ctrl = &beep.Ctrl{Streamer: streamer}
	p.finish = finish
	p.playing = true
	p.paused = false
	ctrl := p.ctrl
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(finish)))
	<-done

	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	return nil
}

func (p *player) Stop() error {
	p.mu.Lock()
	p.stopped = true
	p.playing = false
	p.paused = false
	finish := p.finish
	p.mu.Unlock()

	speaker.Clear()
	// Clear drops the callback, so release the waiter ourselves.
	if finish != nil {
		finish()
	}
	return nil
}

func (p *player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil && !p.paused {
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.paused = true
	}
	return nil
}

func (p *player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil && p.paused {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.paused = false
	}
	return nil
}

func (p *player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && !p.paused
}
