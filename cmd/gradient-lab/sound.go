package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gradient-lab/parameter"
)

// soundPlayer gives short audible feedback on edits
// Initialization failure leaves it silent, never fatal
type soundPlayer struct {
	ready bool
}

func newSoundPlayer() (*soundPlayer, error) {
	sr := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return &soundPlayer{}, err
	}
	return &soundPlayer{ready: true}, nil
}

func (s *soundPlayer) play(freq float64, d time.Duration) {
	if !s.ready {
		return
	}
	sr := beep.SampleRate(parameter.AudioSampleRate)
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sr.N(d), sine))
}

// playError marks a rejected operation
func (s *soundPlayer) playError() {
	s.play(parameter.ErrorCueFreq, parameter.ErrorCueDuration)
}

// playCommit marks a committed edit
func (s *soundPlayer) playCommit() {
	s.play(parameter.CommitCueFreq, parameter.CommitCueDuration)
}
