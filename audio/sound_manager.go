package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100

	tickDurationMs     = 35
	tickFrequencyHz    = 1320.0
	swooshDurationMs   = 220
	swooshFreqStartHz  = 180.0
	swooshFreqEndHz    = 420.0
	swooshAmplitude    = 0.12
	chimeNoteMs        = 140
	errorDurationMs    = 150
	errorFrequencyHz   = 140.0
	errorBuzzAmplitude = 0.2
)

// chimeNotes is a rising major triad
var chimeNotes = [...]float64{659.25, 830.61, 987.77}

// SoundManager plays short interface cues
// Every method is a silent no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	swoosh      *beep.Ctrl
	initialized bool
	log         *zap.Logger
	played      int
}

// NewSoundManager creates an uninitialized manager at the given volume in [0, 1]
func NewSoundManager(volume float64, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer: mixer,
		volume: &effects.Volume{
			Streamer: mixer,
			Base:     2,
			Volume:   volumeToGain(volume),
			Silent:   volume <= 0,
		},
		log: log,
	}
}

// volumeToGain maps a linear 0..1 level to beep's base-2 exponent
func volumeToGain(v float64) float64 {
	if v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return math.Log2(v)
}

// Initialize opens the output device; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDurationMs*time.Millisecond)); err != nil {
		sm.log.Info("audio unavailable, continuing silent", zap.Error(err))
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Enabled reports whether sounds reach the device
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Played returns how many cues were queued
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// Cleanup stops all sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.swoosh != nil {
		sm.swoosh.Paused = true
	}
	speaker.Clear()
	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) add(s beep.Streamer) {
	// Speaker callback reads the mixer under its own lock
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played++
}

// PlayTick plays the short click for a carousel snap
func (sm *SoundManager) PlayTick() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	tone, err := generators.SineTone(sampleRate, tickFrequencyHz)
	if err != nil {
		return
	}
	n := sampleRate.N(tickDurationMs * time.Millisecond)
	sm.add(envelope(beep.Take(n, tone), n, 0.25))
}

// PlaySwoosh starts the drag whoosh; calling it again while playing is a no-op
func (sm *SoundManager) PlaySwoosh() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	if sm.swoosh != nil && !sm.swoosh.Paused {
		return
	}
	sm.swoosh = &beep.Ctrl{Streamer: NewSwooshGenerator(sampleRate)}
	sm.add(sm.swoosh)
}

// StopSwoosh stops the drag whoosh
func (sm *SoundManager) StopSwoosh() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.swoosh != nil {
		speaker.Lock()
		sm.swoosh.Paused = true
		speaker.Unlock()
	}
}

// PlayChime plays the rising triad for a sent message
func (sm *SoundManager) PlayChime() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	n := sampleRate.N(chimeNoteMs * time.Millisecond)
	notes := make([]beep.Streamer, 0, len(chimeNotes))
	for _, f := range chimeNotes {
		tone, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return
		}
		notes = append(notes, envelope(beep.Take(n, tone), n, 0.2))
	}
	sm.add(beep.Seq(notes...))
}

// PlayError plays a short low buzz for rejected input
func (sm *SoundManager) PlayError() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	n := sampleRate.N(errorDurationMs * time.Millisecond)
	sm.add(beep.Take(n, NewBuzzGenerator(sampleRate, errorFrequencyHz)))
}

// --- Generators ---

// envelope applies a linear fade-out over n samples at the given gain
func envelope(s beep.Streamer, n int, gain float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		k, ok := s.Stream(samples)
		for i := 0; i < k; i++ {
			g := gain * (1 - float64(pos)/float64(n))
			if g < 0 {
				g = 0
			}
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return k, ok
	})
}

// SwooshGenerator sweeps a soft tone up and back every swooshDurationMs, endlessly
type SwooshGenerator struct {
	sr      beep.SampleRate
	pos     int
	phase   float64
	samples int
}

// NewSwooshGenerator creates a swoosh generator
func NewSwooshGenerator(sr beep.SampleRate) *SwooshGenerator {
	return &SwooshGenerator{sr: sr, samples: sr.N(swooshDurationMs * time.Millisecond)}
}

func (g *SwooshGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := swooshFreqStartHz + (swooshFreqEndHz-swooshFreqStartHz)*math.Sin(cyclePos*math.Pi)

		// Accumulated phase keeps the sweep free of clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		amp := swooshAmplitude * math.Sin(cyclePos*math.Pi)
		sample := amp * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SwooshGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		// 20ms attack
		attack := math.Min(t/0.02, 1.0)
		sample *= attack * errorBuzzAmplitude

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// Cues is the playback surface the interface layers depend on
type Cues interface {
	PlayTick()
	PlaySwoosh()
	StopSwoosh()
	PlayChime()
	PlayError()
}

var _ Cues = (*SoundManager)(nil)

// Silent is the cue sink used when audio is disabled or unavailable
type Silent struct{}

func (Silent) PlayTick() {}
func (Silent) PlaySwoosh() {}
func (Silent) StopSwoosh() {}
func (Silent) PlayChime() {}
func (Silent) PlayError() {}

var _ Cues = Silent{}
