package audio

import "github.com/gopxl/beep"

// envelope shapes a streamer into a fixed-length cue with linear attack and release
// Gain is 0 on the first and last sample, so a cue never starts or ends on a step
type envelope struct {
	src     beep.Streamer
	total   int
	attack  int
	release int
	pos     int
}

func newEnvelope(src beep.Streamer, total, attack, release int) *envelope {
	if attack+release > total {
		attack, release = total/2, total-total/2
	}
	return &envelope{src: src, total: total, attack: attack, release: release}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	remaining := e.total - e.pos
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok && n > 0
}

func (e *envelope) Err() error {
	return e.src.Err()
}

func (e *envelope) gain(pos int) float64 {
	g := 1.0
	if e.attack > 0 && pos < e.attack {
		g = float64(pos) / float64(e.attack)
	}
	// Distance to the final sample, which must land on zero
	tail := e.total - 1 - pos
	if e.release > 0 && tail < e.release {
		g = min(g, float64(tail)/float64(e.release))
	}
	return g
}
