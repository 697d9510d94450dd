package constants

import "time"

// Audio Engine
const (
	// SampleRate is the speaker output rate in Hz
	SampleRate = 44100

	// SpeakerBuffer is the speaker buffer length
	SpeakerBuffer = 100 * time.Millisecond

	// DefaultMasterVolume is the initial master volume (0.0-1.0)
	DefaultMasterVolume = 0.6
)

// Background Loop Synthesis
const (
	// LoopBeatInterval is one beat of the synthesized background loop (120 BPM)
	LoopBeatInterval = 500 * time.Millisecond

	// LoopKickDuration is the decay length of the kick on each beat
	LoopKickDuration = 90 * time.Millisecond

	LoopKickFrequencyHz = 55.0
	LoopBassFrequencyHz = 110.0
	LoopLeadFrequencyHz = 220.0

	LoopKickAmplitude = 0.35
	LoopBassAmplitude = 0.12
	LoopLeadAmplitude = 0.05
)
