package audio

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/gopxl/beep/v2"
)

// Effect names a synthesized sound.
type Effect int

const (
	EffectThump Effect = iota
	EffectBuild
	EffectSelect
	EffectDeselect
	EffectClear
	EffectError
)

var effectNames = [...]string{
	EffectThump:    "thump",
	EffectBuild:    "build",
	EffectSelect:   "select",
	EffectDeselect: "deselect",
	EffectClear:    "clear",
	EffectError:    "error",
}

func (e Effect) String() string {
	if e >= 0 && int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// waveform is one period of an oscillator, phase in [0, 1).
type waveform func(phase float64) float64

func sine(phase float64) float64 { return gomath.Sin(2 * gomath.Pi * phase) }

func square(phase float64) float64 {
	if phase < 0.5 {
		return 0.5
	}
	return -0.5
}

// voice describes a tone whose pitch slides from start to end frequency
// while its amplitude decays exponentially.
type voice struct {
	wave     waveform
	start    float64 // Hz
	end      float64 // Hz
	duration time.Duration
	decay    float64 // amplitude e-folds per second
}

var voices = map[Effect]voice{
	EffectThump:    {sine, 90, 40, 250 * time.Millisecond, 14},
	EffectBuild:    {sine, 520, 780, 120 * time.Millisecond, 10},
	EffectSelect:   {sine, 880, 880, 60 * time.Millisecond, 30},
	EffectDeselect: {sine, 660, 440, 80 * time.Millisecond, 25},
	EffectClear:    {sine, 440, 110, 200 * time.Millisecond, 8},
	EffectError:    {square, 150, 150, 200 * time.Millisecond, 6},
}

// Streamer returns a finite mono streamer for the effect at sample rate sr.
// Unknown effects play as silence of zero length.
func (e Effect) Streamer(sr beep.SampleRate) beep.Streamer {
	v, ok := voices[e]
	if !ok {
		return &tone{}
	}
	return &tone{v: v, rate: float64(sr), total: sr.N(v.duration)}
}

// tone renders a voice sample by sample.
type tone struct {
	v     voice
	rate  float64
	total int
	pos   int
	phase float64
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.v.start + (t.v.end-t.v.start)*progress
		amp := gomath.Exp(-t.v.decay * float64(t.pos) / t.rate)

		s := amp * t.v.wave(t.phase)
		samples[i][0], samples[i][1] = s, s

		t.phase += freq / t.rate
		t.phase -= gomath.Floor(t.phase)
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }
