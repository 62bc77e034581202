// Package world ties the design wireframe to the physics engine, camera and
// scene composer, and switches between editing and simulating it.
package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/camera"
	"github.com/Faultbox/wirebox/internal/engine/scene"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/physics"
	"github.com/Faultbox/wirebox/internal/storage"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Config holds everything needed to build a world.
type Config struct {
	Physics physics.Config

	FOV            float64 // radians
	CameraDistance float64 // in front of the box, centred on X and Y
	Width, Height  int

	GridStep int
	Outline  bool
}

// World owns the design wireframe and the components that view and
// simulate it.
type World struct {
	Bus    *events.Bus
	Camera *camera.Camera
	Screen *scene.Screen
	Engine *physics.Engine

	design     *wireframe.Wireframe
	simulating bool
	log        *zap.Logger
}

// New builds a world with an empty design. bus may be nil.
func New(cfg Config, bus *events.Bus) *World {
	box := cfg.Physics.Box
	cam := camera.New(cfg.FOV, StartPosition(box, cfg.CameraDistance), cfg.Width, cfg.Height)

	w := &World{
		Bus:    bus,
		Camera: cam,
		Screen: scene.NewScreen(cam, box, cfg.GridStep),
		Engine: physics.New(cfg.Physics, bus),
		design: wireframe.New(),
		log:    logger.Named("world"),
	}
	w.Screen.SetOutline(cfg.Outline)
	w.Screen.SetItems([]*wireframe.Wireframe{w.design})
	return w
}

// StartPosition places the camera distance units in front of the box,
// level with its centre.
func StartPosition(box math.Vec3, distance float64) math.Vec3 {
	return math.Vec3{X: box.X / 2, Y: box.Y / 2, Z: -distance}
}

// Design returns the wireframe being edited.
func (w *World) Design() *wireframe.Wireframe {
	return w.design
}

// Simulating reports whether a copy of the design is being simulated.
func (w *World) Simulating() bool {
	return w.simulating
}

// StartSimulation hands a deep copy of the design to the engine and the
// screen. The design itself never moves.
func (w *World) StartSimulation() {
	dup := []*wireframe.Wireframe{w.design.Copy()}
	w.Engine.SetItems(dup)
	w.Screen.SetItems(dup)
	w.Screen.SetExtras(nil)
	w.simulating = true
	w.log.Info("simulation started",
		zap.Int("nodes", len(w.design.Nodes)),
		zap.Int("edges", len(w.design.Edges)),
		zap.Int("faces", len(w.design.Faces)))
}

// StopSimulation drops the simulated copy and shows the design again.
func (w *World) StopSimulation() {
	w.Engine.SetItems(nil)
	w.Screen.SetItems([]*wireframe.Wireframe{w.design})
	w.Screen.SetExtras(nil)
	w.simulating = false
	w.log.Info("simulation stopped")
}

// Replace swaps in a new design, e.g. one loaded from disk.
func (w *World) Replace(wf *wireframe.Wireframe) {
	w.design = wf
	if !w.simulating {
		w.Screen.SetItems([]*wireframe.Wireframe{w.design})
	}
	w.Screen.SetExtras(nil)
}

// Save writes the design to path.
func (w *World) Save(path string) error {
	return storage.Save(path, w.design)
}

// Load replaces the design with the one stored at path. On error the
// current design is kept.
func (w *World) Load(path string) error {
	wf, err := storage.Load(path)
	if err != nil {
		return err
	}
	w.Replace(wf)
	return nil
}
