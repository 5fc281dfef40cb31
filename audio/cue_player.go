package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/danmaku/components"
	"github.com/lixenwraith/danmaku/constants"
	"github.com/lixenwraith/danmaku/logging"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// CuePlayer plays short audible cues for scheduler events
// Every method is safe before Initialize, after Cleanup, and when no device exists
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool
	enabled     bool
	chimeGate   cueGate
	buzzGate    cueGate
	now         func() time.Time
}

// NewCuePlayer returns a muted, uninitialized player
func NewCuePlayer() *CuePlayer {
	mixer := &beep.Mixer{}
	return &CuePlayer{
		mixer: mixer,
		volume: &effects.Volume{
			Streamer: mixer,
			Base:     2,
			Volume:   constants.MasterVolume,
		},
		chimeGate: cueGate{gap: constants.MinCueGap},
		buzzGate:  cueGate{gap: constants.BuzzDuration},
		now:       time.Now,
	}
}

// Initialize opens the speaker and starts the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(p.volume)
	p.initialized = true
	logging.Logger().Info("audio initialized", "rate", int(sampleRate))
	return nil
}

// SetEnabled mutes or unmutes cues without touching the device
func (p *CuePlayer) SetEnabled(on bool) {
	p.mu.Lock()
	p.enabled = on
	p.mu.Unlock()
}

// Chime queues the placement tone; bursts closer than MinCueGap collapse into one
// Returns whether a cue was queued
func (p *CuePlayer) Chime() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || !p.chimeGate.allow(p.now()) {
		return false
	}
	cue, err := chimeCue()
	if err != nil {
		logging.Logger().Warn("chime generator failed", "err", err)
		return false
	}
	p.queue(cue)
	return true
}

// Buzz queues the low overflow tone
func (p *CuePlayer) Buzz() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() || !p.buzzGate.allow(p.now()) {
		return false
	}
	cue, err := buzzCue()
	if err != nil {
		logging.Logger().Warn("buzz generator failed", "err", err)
		return false
	}
	p.queue(cue)
	return true
}

// queue hands a finite cue to the running mixer, which drops it once drained
func (p *CuePlayer) queue(cue beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

func chimeCue() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, constants.ChimeFrequency)
	if err != nil {
		return nil, err
	}
	return newEnvelope(sine,
		sampleRate.N(constants.ChimeDuration),
		sampleRate.N(constants.ChimeAttack),
		sampleRate.N(constants.ChimeRelease)), nil
}

func buzzCue() (beep.Streamer, error) {
	fundamental, err := generators.SineTone(sampleRate, constants.BuzzFrequency)
	if err != nil {
		return nil, err
	}
	octave, err := generators.SineTone(sampleRate, 2*constants.BuzzFrequency)
	if err != nil {
		return nil, err
	}
	mix := beep.Mix(fundamental, &effects.Gain{Streamer: octave, Gain: constants.BuzzOvertoneGain})
	return newEnvelope(mix,
		sampleRate.N(constants.BuzzDuration),
		sampleRate.N(constants.BuzzAttack),
		sampleRate.N(constants.BuzzRelease)), nil
}

// Cleanup silences pending cues; the speaker stays open for the process lifetime
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// ready requires p.mu held
func (p *CuePlayer) ready() bool {
	return p.initialized && p.enabled
}

// ItemPlaced chimes, letting the player act as a scheduler observer
func (p *CuePlayer) ItemPlaced(*components.Item) { p.Chime() }

// ItemDropped buzzes when the backlog overflows
func (p *CuePlayer) ItemDropped(*components.Item) { p.Buzz() }

// ItemRetired is silent
func (p *CuePlayer) ItemRetired(*components.Item) {}

// cueGate rate-limits a cue to one per gap
type cueGate struct {
	gap  time.Duration
	last time.Time
}

func (g *cueGate) allow(now time.Time) bool {
	if !g.last.IsZero() && now.Sub(g.last) < g.gap {
		return false
	}
	g.last = now
	return true
}
