package states

import (
	gomath "math"
	"path/filepath"
	"testing"

	"github.com/Faultbox/wirebox/internal/engine/audio"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/game/world"
	"github.com/Faultbox/wirebox/internal/physics"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

type recorder struct {
	played []audio.Effect
}

func (r *recorder) Play(e audio.Effect, _ float64) error {
	r.played = append(r.played, e)
	return nil
}

func (r *recorder) last() audio.Effect {
	if len(r.played) == 0 {
		return -1
	}
	return r.played[len(r.played)-1]
}

type fixture struct {
	bus     *events.Bus
	world   *world.World
	sound   *recorder
	pointer math.Vec2
	ctx     *Context
	builds  []events.BuildKind
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{bus: events.NewBus(), sound: &recorder{}}
	f.world = world.New(world.Config{
		Physics:        physics.DefaultConfig(),
		FOV:            gomath.Pi / 3,
		CameraDistance: 80,
		Width:          800,
		Height:         600,
		GridStep:       20,
	}, f.bus)
	f.ctx = &Context{
		World:    f.world,
		Sound:    f.sound,
		Pointer:  func() math.Vec2 { return f.pointer },
		Controls: DefaultControls(),
	}
	f.bus.Register(events.Func(10, func(ev events.Event) bool {
		if ev.Kind == events.KindBuild {
			f.builds = append(f.builds, ev.Build)
		}
		return false
	}))
	return f
}

// aim points the mouse at the screen position of p.
func (f *fixture) aim(t *testing.T, p math.Vec3) {
	t.Helper()
	s, ok := f.world.Camera.Project(p)
	if !ok {
		t.Fatalf("%v does not project", p)
	}
	f.pointer = s
}

func TestDesignSelectGridPoint(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)

	f.aim(t, math.Vec3{X: 40, Y: 60, Z: 0})
	d.Select()

	sel := d.Selection()
	if len(sel) != 1 {
		t.Fatalf("selection = %d, want 1", len(sel))
	}
	if sel[0].Pos != (math.Vec3{X: 40, Y: 60, Z: 0}) || sel[0].W != wireframe.Free {
		t.Errorf("selected %v", sel[0])
	}
	if len(f.world.Screen.Extras()) != 1 {
		t.Error("selection not shown")
	}
	if f.sound.last() != audio.EffectSelect {
		t.Errorf("played %v, want select", f.sound.last())
	}
	if len(f.world.Design().Nodes) != 0 {
		t.Error("selecting must not build")
	}

	d.Select()
	if len(d.Selection()) != 1 {
		t.Errorf("same point selected twice: %d", len(d.Selection()))
	}
}

func TestDesignSelectLimit(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)

	for _, p := range []math.Vec3{{X: 40, Y: 60}, {X: 60, Y: 60}, {X: 60, Y: 40}, {X: 40, Y: 40}} {
		f.aim(t, p)
		d.Select()
	}
	if len(d.Selection()) != MaxSelection {
		t.Errorf("selection = %d, want %d", len(d.Selection()), MaxSelection)
	}
	if f.sound.last() != audio.EffectError {
		t.Errorf("played %v, want error", f.sound.last())
	}
}

func TestDesignBuild(t *testing.T) {
	a := math.Vec3{X: 40, Y: 60}
	b := math.Vec3{X: 60, Y: 60}
	c := math.Vec3{X: 60, Y: 40}

	tests := []struct {
		name                string
		points              []math.Vec3
		nodes, edges, faces int
		kind                events.BuildKind
	}{
		{"node", []math.Vec3{a}, 1, 0, 0, events.BuildNode},
		{"edge", []math.Vec3{a, b}, 2, 1, 0, events.BuildEdge},
		{"face", []math.Vec3{a, b, c}, 3, 3, 1, events.BuildFace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
					d := NewDesignState(f.ctx)
			for _, p := range tt.points {
				f.aim(t, p)
				d.Select()
			}
			d.Build()

			wf := f.world.Design()
			if len(wf.Nodes) != tt.nodes || len(wf.Edges) != tt.edges || len(wf.Faces) != tt.faces {
				t.Errorf("built %d/%d/%d, want %d/%d/%d",
					len(wf.Nodes), len(wf.Edges), len(wf.Faces), tt.nodes, tt.edges, tt.faces)
			}
			if len(f.builds) != 1 || f.builds[0] != tt.kind {
				t.Errorf("build events = %v, want [%v]", f.builds, tt.kind)
			}
			if len(d.Selection()) != 0 || len(f.world.Screen.Extras()) != 0 {
				t.Error("selection not cleared after build")
			}
			if tt.faces > 0 && wf.Faces[0].Color != DefaultControls().FaceColor {
				t.Errorf("face colour = %v", wf.Faces[0].Color)
			}
		})
	}
}

func TestDesignBuildNothing(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)
	d.Build()

	if f.sound.last() != audio.EffectError {
		t.Errorf("played %v, want error", f.sound.last())
	}
	if len(f.builds) != 0 {
		t.Error("nothing should be built")
	}
}

func TestDesignReusesExistingNode(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)

	existing := wireframe.NewNode(math.Vec3{X: 40, Y: 60, Z: 0}, wireframe.Pinned)
	f.world.Design().AddNodes(existing)

	f.aim(t, existing.Pos)
	d.Select()
	f.aim(t, math.Vec3{X: 60, Y: 60, Z: 0})
	d.Select()

	if d.Selection()[0] != existing {
		t.Fatal("existing node not picked")
	}
	d.Build()

	wf := f.world.Design()
	if len(wf.Nodes) != 2 || len(wf.Edges) != 1 {
		t.Fatalf("nodes=%d edges=%d", len(wf.Nodes), len(wf.Edges))
	}
	if wf.Edges[0].First != existing {
		t.Error("edge not attached to the existing node")
	}
}

func TestDesignTogglePin(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)

	n := wireframe.NewNode(math.Vec3{X: 20, Y: 20, Z: 20}, wireframe.Free)
	f.world.Design().AddNodes(n)
	f.aim(t, n.Pos)

	d.HandleEvent(events.MouseEvent(events.ButtonRight, events.Release, 0, 0))
	if !n.IsPinned() {
		t.Error("node not pinned")
	}
	d.HandleEvent(events.MouseEvent(events.ButtonRight, events.Release, 0, 0))
	if n.IsPinned() {
		t.Error("node not freed")
	}
}

func TestDesignKeys(t *testing.T) {
	f := newFixture(t)
	d := NewDesignState(f.ctx)
	f.world.Design().AddNodes(wireframe.NewNode(math.Vec3{X: 20, Y: 20, Z: 20}, wireframe.Free))

	f.aim(t, math.Vec3{X: 40, Y: 60})
	d.HandleEvent(events.MouseEvent(events.ButtonLeft, events.Release, 0, 0))
	if !d.HandleEvent(events.KeyEvent("BACKSPACE", events.Press)) || len(d.Selection()) != 0 {
		t.Error("backspace did not deselect")
	}
	if !d.HandleEvent(events.KeyEvent("DELETE", events.Press)) || !f.world.Design().Empty() {
		t.Error("delete did not clear")
	}
	if f.sound.last() != audio.EffectClear {
		t.Errorf("played %v, want clear", f.sound.last())
	}
	if d.HandleEvent(events.KeyEvent("X", events.Press)) {
		t.Error("unknown key consumed")
	}
	if d.HandleEvent(events.MouseEvent(events.ButtonLeft, events.Press, 0, 0)) {
		t.Error("press consumed; selection happens on release")
	}
}

func TestCameraRig(t *testing.T) {
	f := newFixture(t)
	cam := f.world.Camera
	rig := NewCameraRig(1, 0.05)

	if rig.HandleKey("X", events.Press) {
		t.Error("unknown key handled")
	}

	rig.HandleKey("W", events.Press)
	rig.HandleKey("Q", events.Press)
	rig.Apply(cam)
	if cam.Pos != (math.Vec3{X: 50, Y: 49, Z: -79}) {
		t.Errorf("camera at %v, want (50, 49, -79)", cam.Pos)
	}

	rig.HandleKey("W", events.Release)
	rig.HandleKey("Q", events.Release)
	rig.HandleKey("RIGHT", events.Press)
	rig.Apply(cam)
	rig.Apply(cam)
	if gomath.Abs(cam.Theta.Y-0.1) > 1e-12 {
		t.Errorf("yaw = %v, want 0.1", cam.Theta.Y)
	}

	rig.Reset()
	before := *cam
	rig.Apply(cam)
	if cam.Pos != before.Pos || cam.Theta != before.Theta {
		t.Error("camera moved after reset")
	}
}

func TestControllerToggle(t *testing.T) {
	f := newFixture(t)
	c := NewController(f.ctx, filepath.Join(t.TempDir(), "design.yaml"))
	f.bus.Register(c)

	f.world.Design().AddNodes(wireframe.NewNode(math.Vec3{X: 50, Y: 10, Z: 50}, wireframe.Free))

	f.bus.Publish(events.Tick())
	if c.Current() != State(c.Design()) {
		t.Fatal("not in design mode after first tick")
	}

	f.bus.Publish(events.KeyEvent("SPACE", events.Press))
	f.bus.Publish(events.Tick())
	if c.Current() != State(c.Simulate()) || !f.world.Simulating() {
		t.Fatal("not simulating after toggle")
	}
	sim := f.world.Engine.Items()[0]
	if sim.Nodes[0].Pos.Y <= 10 {
		t.Error("simulation did not step on tick")
	}
	for _, d := range c.RenderOrder() {
		if d.Grid {
			t.Fatal("grid drawn while simulating")
		}
	}

	f.bus.Publish(events.KeyEvent("SPACE", events.Press))
	f.bus.Publish(events.Tick())
	if c.Current() != State(c.Design()) || f.world.Simulating() {
		t.Fatal("not back in design mode")
	}
	if f.world.Design().Nodes[0].Pos.Y != 10 {
		t.Error("design changed by the simulation")
	}

	grid := 0
	for _, d := range c.RenderOrder() {
		if d.Grid {
			grid++
		}
	}
	if grid != 216 {
		t.Errorf("grid drawables = %d, want 216", grid)
	}
}

func TestControllerCameraKeys(t *testing.T) {
	f := newFixture(t)
	c := NewController(f.ctx, "")
	f.bus.Register(c)

	if !f.bus.Publish(events.KeyEvent("E", events.Press)) {
		t.Error("camera key not consumed")
	}
	f.bus.Publish(events.Tick())
	f.bus.Publish(events.Tick())
	if f.world.Camera.Pos.Y != 52 {
		t.Errorf("camera y = %v, want 52", f.world.Camera.Pos.Y)
	}
}

func TestSimulateHold(t *testing.T) {
	f := newFixture(t)
	c := NewController(f.ctx, "")
	f.bus.Register(c)

	f.world.Design().AddNodes(wireframe.NewNode(math.Vec3{X: 50, Y: 10, Z: 50}, wireframe.Free))
	f.bus.Publish(events.Tick())
	f.bus.Publish(events.KeyEvent("SPACE", events.Press))
	f.bus.Publish(events.Tick())

	node := f.world.Engine.Items()[0].Nodes[0]
	f.aim(t, node.Pos)
	f.bus.Publish(events.MouseEvent(events.ButtonLeft, events.Press, 0, 0))

	s := c.Simulate()
	if s.Held() != node {
		t.Fatal("node not held")
	}
	if node.W != wireframe.Pinned {
		t.Error("held node should not be moved by the physics")
	}

	f.aim(t, math.Vec3{X: 51, Y: 10, Z: 50})
	f.bus.Publish(events.Tick())
	if node.Pos != (math.Vec3{X: 51, Y: 10, Z: 50}) {
		t.Errorf("held node at %v, want (51, 10, 50)", node.Pos)
	}

	f.bus.Publish(events.MouseEvent(events.ButtonLeft, events.Release, 0, 0))
	if s.Held() != nil || node.W != wireframe.Free {
		t.Error("node not released")
	}
}

func TestControllerSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "design.yaml")

	f := newFixture(t)
	c := NewController(f.ctx, path)
	f.bus.Register(c)
	f.bus.Publish(events.Tick())

	f.world.Design().AddNodes(wireframe.NewNode(math.Vec3{X: 20, Y: 20, Z: 20}, wireframe.Pinned))
	f.bus.Publish(events.KeyEvent("F5", events.Press))

	f.world.Design().Clear()
	f.bus.Publish(events.KeyEvent("F9", events.Press))
	if len(f.world.Design().Nodes) != 1 {
		t.Fatalf("loaded %d nodes, want 1", len(f.world.Design().Nodes))
	}

	missing := newFixture(t)
	mc := NewController(missing.ctx, filepath.Join(t.TempDir(), "none.yaml"))
	missing.bus.Register(mc)
	missing.bus.Publish(events.Tick())
	missing.bus.Publish(events.KeyEvent("F9", events.Press))
	if missing.sound.last() != audio.EffectError {
		t.Errorf("played %v, want error", missing.sound.last())
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	if m.Update() != nil || m.HandleEvent(events.Tick()) {
		t.Error("empty manager should do nothing")
	}

	f := newFixture(t)
	d := NewDesignState(f.ctx)
	m.Change(d)
	if m.Current() != nil {
		t.Error("change applied before update")
	}
	if err := m.Update(); err != nil {
		t.Fatal(err)
	}
	if m.Current() != State(d) {
		t.Error("change not applied")
	}
}
