package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
)

// Error Cue, a short low sine on rejected operations
const (
	ErrorCueFreq     = 220.0
	ErrorCueDuration = 80 * time.Millisecond
)

// Commit Cue, a brief blip when an edit is committed
const (
	CommitCueFreq     = 880.0
	CommitCueDuration = 40 * time.Millisecond
)
