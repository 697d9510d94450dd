package audio

import (
	"math"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/snake/constants"
)

// LoopGenerator synthesizes the default background loop: a kick on every
// beat over a bass drone, lead stepping through four notes per bar
// Never ends; pausing is done by the wrapping Ctrl
type LoopGenerator struct {
	sr       beep.SampleRate
	pos      int
	beat     int
	kickLen  int
	leadStep [4]float64
}

// NewLoopGenerator creates a background loop generator
func NewLoopGenerator(sr beep.SampleRate) *LoopGenerator {
	return &LoopGenerator{
		sr:      sr,
		beat:    sr.N(constants.LoopBeatInterval),
		kickLen: sr.N(constants.LoopKickDuration),
		// Root, minor third, fifth, minor seventh
		leadStep: [4]float64{1, 1.1892, 1.4983, 1.7818},
	}
}

func (g *LoopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.beat
		bar := (g.pos / g.beat) % len(g.leadStep)
		t := float64(g.pos) / float64(g.sr)

		kick := 0.0
		if beatPos < g.kickLen {
			env := 1.0 - float64(beatPos)/float64(g.kickLen)
			kt := float64(beatPos) / float64(g.sr)
			kick = constants.LoopKickAmplitude * env * math.Sin(2*math.Pi*constants.LoopKickFrequencyHz*(1+2*env)*kt)
		}

		bass := constants.LoopBassAmplitude * math.Sin(2*math.Pi*constants.LoopBassFrequencyHz*t)

		leadFreq := constants.LoopLeadFrequencyHz * g.leadStep[bar]
		leadEnv := math.Exp(-float64(beatPos) / float64(g.sr) * 6)
		lead := constants.LoopLeadAmplitude * leadEnv * math.Sin(2*math.Pi*leadFreq*t)

		sample := kick + bass + lead
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *LoopGenerator) Err() error {
	return nil
}
