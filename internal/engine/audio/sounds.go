package audio

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/logger"
)

// ThumpThreshold is the rebound speed a collision must exceed to be heard.
const ThumpThreshold = 1.0

// Sounds turns bus events into sound effects: collisions thump with a
// volume proportional to the rebound speed and builds chime.
type Sounds struct {
	player Player
	layer  float64
	log    *zap.Logger
}

// NewSounds creates a subscriber playing through p.
func NewSounds(p Player, layer float64) *Sounds {
	return &Sounds{player: p, layer: layer, log: logger.Named("audio")}
}

// Layer implements events.Handler.
func (s *Sounds) Layer() float64 { return s.layer }

// Notify implements events.Handler. It never consumes events.
func (s *Sounds) Notify(ev events.Event) bool {
	switch ev.Kind {
	case events.KindCollision:
		if ev.Speed > ThumpThreshold {
			s.play(EffectThump, ThumpVolume(ev.Speed))
		}
	case events.KindBuild:
		s.play(EffectBuild, 1)
	}
	return false
}

// ThumpVolume maps a rebound speed to a volume in [0, 1].
func ThumpVolume(speed float64) float64 {
	return clamp(speed/10, 0, 1)
}

func (s *Sounds) play(e Effect, volume float64) {
	if err := s.player.Play(e, volume); err != nil {
		s.log.Debug("sound skipped", zap.Stringer("effect", e), zap.Error(err))
	}
}
