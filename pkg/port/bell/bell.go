// Package bell rings the window-procs Bell. Graphical and web ports have
// no terminal bell, so they play a short tone; terminal ports write BEL.
package bell

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"nhport/pkg/engine/logger"
)

const (
	sampleRate = beep.SampleRate(44100)

	toneFreq     = 880.0
	toneDuration = 120 * time.Millisecond
)

// Ringer makes a bell noise.
type Ringer interface {
	Ring()
}

// Silent ignores every ring.
type Silent struct{}

func (Silent) Ring() {}

// Terminal writes the BEL control character.
type Terminal struct {
	W io.Writer
}

func (t Terminal) Ring() {
	_, _ = t.W.Write([]byte{0x07})
}

// Tone plays a short decaying sine through the speaker. The speaker is
// opened on the first ring.
type Tone struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	failed      bool
}

// NewTone returns a tone bell at the given volume (0..1).
func NewTone(volume float64) *Tone {
	return &Tone{mixer: &beep.Mixer{}, volume: volume}
}

func (t *Tone) init() bool {
	if t.initialized || t.failed {
		return t.initialized
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		logger.Log.WithError(err).Warn("audio unavailable, bell disabled")
		t.failed = true
		return false
	}
	speaker.Play(t.mixer)
	t.initialized = true
	return true
}

func (t *Tone) Ring() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.init() {
		return
	}
	speaker.Lock()
	t.mixer.Add(Sound(sampleRate, t.volume))
	speaker.Unlock()
}

// Close stops any sound still playing.
func (t *Tone) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		speaker.Clear()
		t.initialized = false
	}
}

// Sound returns the bell as a finite streamer.
func Sound(sr beep.SampleRate, volume float64) beep.Streamer {
	s := beep.Take(sr.N(toneDuration), &generator{sr: sr, freq: toneFreq})
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(volume)}
}

// generator is a sine with an exponential decay.
type generator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (g *generator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		v := 0.4 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*30)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *generator) Err() error {
	return nil
}
