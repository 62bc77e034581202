// Package physics advances wireframes with Verlet integration, iterative
// stick relaxation and clamping against an axis-aligned box.
//
// The engine knows nothing about cameras, rendering or input. It reports
// per-node movement and wall collisions on the event bus and is otherwise
// pure computation over the wireframes it is given.
package physics

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Config holds the simulation constants.
type Config struct {
	// Friction is the share of velocity kept per tick.
	Friction float64
	// Bounce is the share of velocity kept when a node hits a wall.
	Bounce float64
	// Precision is how many relax/clamp passes run per tick. Higher values
	// give stiffer sticks at a linear cost; low values look elastic.
	Precision int
	// Gravity is added to every free node's velocity each tick.
	Gravity math.Vec3
	// Box is the simulation volume; nodes stay within [0, Box] per axis.
	Box math.Vec3
}

// DefaultConfig returns the stock constants for a 100-unit box.
func DefaultConfig() Config {
	return Config{
		Friction:  0.99,
		Bounce:    0.9,
		Precision: 4,
		Gravity:   math.Vec3{X: 0, Y: 0.2, Z: 0},
		Box:       math.Vec3{X: 100, Y: 100, Z: 100},
	}
}

// Engine simulates the wireframes added to it. It does not own them.
type Engine struct {
	cfg   Config
	items []*wireframe.Wireframe
	bus   *events.Bus
	log   *zap.Logger
}

// New creates an engine. bus may be nil, in which case nothing is reported.
func New(cfg Config, bus *events.Bus) *Engine {
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	e := &Engine{
		cfg: cfg,
		bus: bus,
		log: logger.Named("physics"),
	}
	e.log.Debug("engine created",
		zap.Float64("friction", cfg.Friction),
		zap.Float64("bounce", cfg.Bounce),
		zap.Int("precision", cfg.Precision),
	)
	return e
}

// Config returns the engine's constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// AddItem registers wireframes for simulation.
func (e *Engine) AddItem(items ...*wireframe.Wireframe) {
	e.items = append(e.items, items...)
}

// SetItems replaces the simulated wireframes.
func (e *Engine) SetItems(items []*wireframe.Wireframe) {
	e.items = items
}

// Items returns the simulated wireframes.
func (e *Engine) Items() []*wireframe.Wireframe {
	return e.items
}

// Simulate runs one tick. When both held and target are non-nil the held
// node is first placed at target, which is how the player drags nodes.
func (e *Engine) Simulate(held *wireframe.Node, target *math.Vec3) {
	if held != nil && target != nil {
		held.Pos = *target
	}

	e.movePoints()

	// Each pass depends on the positions corrected by the previous one.
	for i := 0; i < e.cfg.Precision; i++ {
		e.relaxSticks()
		e.constrainPoints()
	}
}

// movePoints integrates every node once.
func (e *Engine) movePoints() {
	for _, w := range e.items {
		for _, n := range w.Nodes {
			vel := n.Pos.Sub(n.Old).Scale(e.cfg.Friction)
			e.publish(events.NodeMoved(vel.Length()))

			n.Old = n.Pos
			n.Pos.AddInPlace(vel.Add(e.cfg.Gravity).Scale(n.W))
		}
	}
}

// relaxSticks moves the endpoints of every stick towards its rest length.
// A pinned endpoint does not move, so a stick with one pinned end only
// closes half the gap per pass; repeated passes converge.
func (e *Engine) relaxSticks() {
	for _, w := range e.items {
		for _, s := range w.Edges {
			rel := s.First.Pos.Sub(s.Second.Pos)
			dist := rel.Length()

			// Coincident endpoints have no direction; split evenly.
			percent := 0.5
			if dist != 0 {
				percent = (s.Length - dist) / dist / 2
			}

			offset := rel.Scale(percent)
			s.First.Pos.AddInPlace(offset.Scale(s.First.W))
			s.Second.Pos.SubInPlace(offset.Scale(s.Second.W))
		}
	}
}

// constrainPoints clamps nodes into the box and reflects their velocity.
func (e *Engine) constrainPoints() {
	box := e.cfg.Box
	for _, w := range e.items {
		for _, n := range w.Nodes {
			// Only used if the node left the box: setting Old on the far
			// side of the wall makes the next tick's velocity point inwards.
			vel := n.Pos.Sub(n.Old).Scale(e.cfg.Bounce)
			collided := false

			if !inside(n.Pos.X, box.X) {
				n.Pos.X = clampAxis(n.Pos.X, box.X)
				n.Old.X = n.Pos.X + vel.X
				collided = true
			}
			if !inside(n.Pos.Y, box.Y) {
				n.Pos.Y = clampAxis(n.Pos.Y, box.Y)
				n.Old.Y = n.Pos.Y + vel.Y
				collided = true
			}
			if !inside(n.Pos.Z, box.Z) {
				n.Pos.Z = clampAxis(n.Pos.Z, box.Z)
				n.Old.Z = n.Pos.Z + vel.Z
				collided = true
			}

			if collided {
				e.publish(events.Collision(vel.Length()))
			}
		}
	}
}

func (e *Engine) publish(ev events.Event) {
	if e.bus != nil {
		e.bus.Publish(ev)
	}
}

func inside(v, max float64) bool {
	return 0 <= v && v <= max
}

func clampAxis(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
