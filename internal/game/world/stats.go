package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/events"
)

// Stats records peak speeds and build counts reported on the bus.
type Stats struct {
	PeakMoveSpeed      float64
	PeakCollisionSpeed float64
	Collisions         int

	NodesBuilt int
	EdgesBuilt int
	FacesBuilt int
}

// Layer implements events.Handler.
func (s *Stats) Layer() float64 { return 0 }

// Notify implements events.Handler. It never consumes events.
func (s *Stats) Notify(ev events.Event) bool {
	switch ev.Kind {
	case events.KindNodeMoved:
		if ev.Speed > s.PeakMoveSpeed {
			s.PeakMoveSpeed = ev.Speed
		}
	case events.KindCollision:
		s.Collisions++
		if ev.Speed > s.PeakCollisionSpeed {
			s.PeakCollisionSpeed = ev.Speed
		}
	case events.KindBuild:
		switch ev.Build {
		case events.BuildNode:
			s.NodesBuilt++
		case events.BuildEdge:
			s.EdgesBuilt++
		case events.BuildFace:
			s.FacesBuilt++
		}
	}
	return false
}

// Fields returns the stats as log fields.
func (s *Stats) Fields() []zap.Field {
	return []zap.Field{
		zap.Float64("peak_move_speed", s.PeakMoveSpeed),
		zap.Float64("peak_collision_speed", s.PeakCollisionSpeed),
		zap.Int("collisions", s.Collisions),
		zap.Int("nodes_built", s.NodesBuilt),
		zap.Int("edges_built", s.EdgesBuilt),
		zap.Int("faces_built", s.FacesBuilt),
	}
}
