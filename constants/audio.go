package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap is the minimum spacing between two chimes; bursts of placements collapse into one
	MinCueGap = 120 * time.Millisecond
)

// Chime (item placed)
const (
	ChimeFrequency = 880.0
	ChimeDuration  = 50 * time.Millisecond
	ChimeAttack    = 2 * time.Millisecond
	ChimeRelease   = 20 * time.Millisecond
)

// MasterVolume is the mixer gain as a base-2 exponent, -2 is a quarter amplitude
const MasterVolume = -2.0

// Buzz (backlog overflow): a fundamental plus a quieter octave
const (
	BuzzFrequency = 120.0
	BuzzDuration  = 150 * time.Millisecond
	BuzzAttack    = 20 * time.Millisecond
	BuzzRelease   = 60 * time.Millisecond

	// BuzzOvertoneGain is applied as effects.Gain, so the octave plays at half amplitude
	BuzzOvertoneGain = -0.5
)
