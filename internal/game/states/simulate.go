package states

import (
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/wireframe"
)

// SimulateState runs the physics on a copy of the design. Holding the left
// button drags the node under the pointer.
type SimulateState struct {
	ctx *Context

	held  *wireframe.Node
	heldW float64
}

// NewSimulateState creates the simulate mode.
func NewSimulateState(ctx *Context) *SimulateState {
	return &SimulateState{ctx: ctx}
}

// Enter implements State.
func (s *SimulateState) Enter() error {
	s.held = nil
	s.ctx.World.StartSimulation()
	return nil
}

// Exit implements State.
func (s *SimulateState) Exit() error {
	s.Release()
	s.ctx.World.StopSimulation()
	return nil
}

// ShowGrid implements State.
func (s *SimulateState) ShowGrid() bool { return false }

// Held returns the node being dragged, or nil.
func (s *SimulateState) Held() *wireframe.Node {
	return s.held
}

// Update implements State. The held node follows the pointer, searching
// only the grid points around its current position.
func (s *SimulateState) Update() error {
	w := s.ctx.World
	if s.held == nil {
		w.Engine.Simulate(nil, nil)
		return nil
	}

	target, ok := w.Screen.NearestGridPoint(s.ctx.pointer(), &s.held.Pos)
	if !ok {
		w.Engine.Simulate(s.held, nil)
		return nil
	}
	w.Engine.Simulate(s.held, &target)
	return nil
}

// HandleEvent implements State.
func (s *SimulateState) HandleEvent(ev events.Event) bool {
	if ev.Kind != events.KindMouse || ev.Button != events.ButtonLeft {
		return false
	}
	switch ev.Action {
	case events.Press:
		s.Hold()
	case events.Release:
		s.Release()
	}
	return true
}

// Hold grabs the simulated node under the pointer. It stays put until
// released.
func (s *SimulateState) Hold() {
	if s.held != nil {
		return
	}
	node := s.ctx.World.Screen.NearestNode(s.ctx.pointer(), s.ctx.Controls.PickRadius)
	if node == nil {
		return
	}
	s.held = node
	s.heldW = node.W
	node.W = wireframe.Pinned
}

// Release lets go of the held node and restores its weight.
func (s *SimulateState) Release() {
	if s.held == nil {
		return
	}
	s.held.W = s.heldW
	s.held = nil
}
