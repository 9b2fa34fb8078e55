package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneLength(t *testing.T) {
	s, err := tone(snapFreq, snapDuration)
	if err != nil {
		t.Fatalf("tone: %v", err)
	}
	if got, want := drain(s), sampleRate.N(snapDuration); got != want {
		t.Errorf("samples = %d, want %d", got, want)
	}
}

func TestMelodyLength(t *testing.T) {
	s, err := melody(solvedNotes, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("melody: %v", err)
	}
	want := len(solvedNotes) * sampleRate.N(10*time.Millisecond)
	if got := drain(s); got != want {
		t.Errorf("samples = %d, want %d", got, want)
	}
}

func TestToneRejectsBadFrequency(t *testing.T) {
	if _, err := tone(float64(sampleRate), snapDuration); err == nil {
		t.Error("expected error for frequency above nyquist")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer()
	p.Snap()
	p.Solved()
	p.Close()

	var nilPlayer *Player
	nilPlayer.play(nil)
}
