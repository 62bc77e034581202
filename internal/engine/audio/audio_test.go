package audio

import (
	gomath "math"
	"testing"

	"github.com/gopxl/beep/v2"

	"github.com/Faultbox/wirebox/internal/events"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
	if m.IsInitialized() || m.IsMuted() {
		t.Error("new manager should be uninitialized and unmuted")
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	// Test clamping
	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}

	m.SetMasterVolume(-1.0)
	if m.GetMasterVolume() != 0.0 {
		t.Errorf("master volume = %f, want 0.0 (clamped)", m.GetMasterVolume())
	}
}

func TestEffectiveVolume(t *testing.T) {
	m := New()
	m.SetMasterVolume(0.5)
	m.SetSFXVolume(0.5)

	if got := m.effectiveVolume(0.8); gomath.Abs(got-0.2) > 1e-12 {
		t.Errorf("effectiveVolume(0.8) = %f, want 0.2", got)
	}
	if got := m.effectiveVolume(3); got != 0.25 {
		t.Errorf("effectiveVolume(3) = %f, want 0.25 (clamped)", got)
	}
	m.SetMuted(true)
	if got := m.effectiveVolume(1); got != 0 {
		t.Errorf("muted effectiveVolume = %f, want 0", got)
	}
}

func TestPlayBeforeInit(t *testing.T) {
	if err := New().Play(EffectThump, 1); err != ErrNotInitialized {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}
}

// drain streams s to the end and returns every left-channel sample.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestEffectStreamerLength(t *testing.T) {
	sr := beep.SampleRate(8000)
	for effect, v := range voices {
		got := len(drain(effect.Streamer(sr)))
		if want := sr.N(v.duration); got != want {
			t.Errorf("%s: %d samples, want %d", effect, got, want)
		}
	}
}

func TestThumpDecays(t *testing.T) {
	samples := drain(EffectThump.Streamer(beep.SampleRate(8000)))

	peak := func(from, to int) float64 {
		p := 0.0
		for _, s := range samples[from:to] {
			p = gomath.Max(p, gomath.Abs(s))
		}
		return p
	}
	q := len(samples) / 4
	head, tail := peak(0, q), peak(3*q, len(samples))
	if head <= tail {
		t.Errorf("thump does not decay: head peak %f, tail peak %f", head, tail)
	}
	if head > 1 {
		t.Errorf("thump clips: peak %f", head)
	}
}

func TestUnknownEffectIsSilent(t *testing.T) {
	if got := len(drain(Effect(99).Streamer(DefaultSampleRate))); got != 0 {
		t.Errorf("unknown effect produced %d samples", got)
	}
	if Effect(99).String() != "effect(99)" {
		t.Errorf("String = %q", Effect(99).String())
	}
}

type played struct {
	effect Effect
	volume float64
}

type fakePlayer struct{ calls []played }

func (f *fakePlayer) Play(e Effect, v float64) error {
	f.calls = append(f.calls, played{e, v})
	return nil
}

func TestSoundsCollision(t *testing.T) {
	p := &fakePlayer{}
	s := NewSounds(p, 0)

	tests := []struct {
		speed float64
		want  []played
	}{
		{0.5, nil},
		{1.0, nil},
		{4, []played{{EffectThump, 0.4}}},
		{25, []played{{EffectThump, 1}}},
	}

	for _, tt := range tests {
		p.calls = nil
		if s.Notify(events.Collision(tt.speed)) {
			t.Error("collision consumed")
		}
		if len(p.calls) != len(tt.want) {
			t.Fatalf("speed %v: %d plays, want %d", tt.speed, len(p.calls), len(tt.want))
		}
		for i := range tt.want {
			if p.calls[i].effect != tt.want[i].effect || gomath.Abs(p.calls[i].volume-tt.want[i].volume) > 1e-12 {
				t.Errorf("speed %v: played %+v, want %+v", tt.speed, p.calls[i], tt.want[i])
			}
		}
	}
}

func TestSoundsBuildAndIgnored(t *testing.T) {
	p := &fakePlayer{}
	bus := events.NewBus()
	bus.Register(NewSounds(p, 0))

	bus.Publish(events.Built(events.BuildEdge))
	bus.Publish(events.Tick())
	bus.Publish(events.NodeMoved(30))

	if len(p.calls) != 1 || p.calls[0].effect != EffectBuild {
		t.Errorf("plays = %+v, want one build chime", p.calls)
	}
}
