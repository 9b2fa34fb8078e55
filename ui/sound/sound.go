// Package sound plays short tones when a piece snaps and when the
// puzzle is solved. Audio is optional: without a device every call is a no-op.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

const (
	snapFreq     = 880.0
	snapDuration = 50 * time.Millisecond
	noteDuration = 120 * time.Millisecond
)

// solved jingle: C5 E5 G5 C6
var solvedNotes = []float64{523.25, 659.25, 783.99, 1046.5}

type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device, the error is not fatal for the game
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

func (p *Player) Snap() {
	s, err := tone(snapFreq, snapDuration)
	if err != nil {
		return
	}
	p.play(s)
}

func (p *Player) Solved() {
	s, err := melody(solvedNotes, noteDuration)
	if err != nil {
		return
	}
	p.play(s)
}

func (p *Player) play(s beep.Streamer) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func tone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(d), sine), nil
}

func melody(freqs []float64, each time.Duration) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		s, err := tone(f, each)
		if err != nil {
			return nil, err
		}
		notes = append(notes, s)
	}
	return beep.Seq(notes...), nil
}
