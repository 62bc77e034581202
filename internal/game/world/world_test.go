package world

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/physics"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

func testConfig() Config {
	return Config{
		Physics:        physics.DefaultConfig(),
		FOV:            gomath.Pi / 3,
		CameraDistance: 80,
		Width:          800,
		Height:         600,
		GridStep:       20,
	}
}

func TestNew(t *testing.T) {
	w := New(testConfig(), events.NewBus())

	if w.Camera.Pos != (math.Vec3{X: 50, Y: 50, Z: -80}) {
		t.Errorf("camera at %v, want (50, 50, -80)", w.Camera.Pos)
	}
	if len(w.Screen.Items()) != 1 || w.Screen.Items()[0] != w.Design() {
		t.Error("screen does not show the design")
	}
	if len(w.Engine.Items()) != 0 {
		t.Error("engine should start with nothing to simulate")
	}
}

func TestSimulationLeavesDesignUntouched(t *testing.T) {
	w := New(testConfig(), nil)
	free := wireframe.NewNode(math.Vec3{X: 50, Y: 10, Z: 50}, wireframe.Free)
	w.Design().AddNodes(free)

	w.StartSimulation()
	if !w.Simulating() {
		t.Fatal("not simulating after StartSimulation")
	}
	sim := w.Engine.Items()[0]
	if sim == w.Design() || w.Screen.Items()[0] != sim {
		t.Fatal("engine and screen should share a copy of the design")
	}

	for i := 0; i < 50; i++ {
		w.Engine.Simulate(nil, nil)
	}
	if sim.Nodes[0].Pos.Y <= 10 {
		t.Errorf("simulated node did not fall: %v", sim.Nodes[0])
	}
	if free.Pos != (math.Vec3{X: 50, Y: 10, Z: 50}) {
		t.Errorf("design node moved to %v", free.Pos)
	}

	w.StopSimulation()
	if w.Simulating() || len(w.Engine.Items()) != 0 {
		t.Error("simulation not stopped")
	}
	if w.Screen.Items()[0] != w.Design() {
		t.Error("screen not restored to the design")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")
	w := New(testConfig(), nil)
	w.Design().AddNodes(
		wireframe.NewNode(math.Vec3{X: 0, Y: 50, Z: 50}, wireframe.Pinned),
		wireframe.NewNode(math.Vec3{X: 20, Y: 50, Z: 50}, wireframe.Free),
	)
	w.Design().AddEdges([2]int{0, 1})

	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other := New(testConfig(), nil)
	other.Screen.SetExtras([]*wireframe.Node{wireframe.NewNode(math.Vec3{}, wireframe.Free)})
	if err := other.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(other.Design().Nodes) != 2 || len(other.Design().Edges) != 1 {
		t.Errorf("loaded %d nodes, %d edges", len(other.Design().Nodes), len(other.Design().Edges))
	}
	if other.Screen.Items()[0] != other.Design() {
		t.Error("screen not showing the loaded design")
	}
	if len(other.Screen.Extras()) != 0 {
		t.Error("selection not cleared on load")
	}
}

func TestLoadMissingKeepsDesign(t *testing.T) {
	w := New(testConfig(), nil)
	before := w.Design()
	err := w.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
	if w.Design() != before {
		t.Error("design replaced after failed load")
	}
}

func TestStats(t *testing.T) {
	bus := events.NewBus()
	s := &Stats{}
	bus.Register(s)

	bus.Publish(events.NodeMoved(2))
	bus.Publish(events.NodeMoved(5))
	bus.Publish(events.NodeMoved(3))
	bus.Publish(events.Collision(4))
	bus.Publish(events.Collision(1))
	bus.Publish(events.Built(events.BuildNode))
	bus.Publish(events.Built(events.BuildFace))
	bus.Publish(events.Built(events.BuildFace))

	if s.PeakMoveSpeed != 5 || s.PeakCollisionSpeed != 4 || s.Collisions != 2 {
		t.Errorf("speeds = %+v", s)
	}
	if s.NodesBuilt != 1 || s.EdgesBuilt != 0 || s.FacesBuilt != 2 {
		t.Errorf("builds = %+v", s)
	}
	if len(s.Fields()) != 6 {
		t.Errorf("Fields = %d, want 6", len(s.Fields()))
	}
}

func TestStatsFromPhysics(t *testing.T) {
	bus := events.NewBus()
	s := &Stats{}
	bus.Register(s)

	w := New(testConfig(), bus)
	w.Design().AddNodes(wireframe.NewNodeWithVelocity(
		math.Vec3{X: 50, Y: 99, Z: 50}, wireframe.Free, math.Vec3{X: 50, Y: 94, Z: 50}))
	w.StartSimulation()
	w.Engine.Simulate(nil, nil)

	if s.PeakMoveSpeed <= 0 {
		t.Error("no movement recorded")
	}
	if s.Collisions == 0 || s.PeakCollisionSpeed <= 1 {
		t.Errorf("collision not recorded: %+v", s)
	}
}
