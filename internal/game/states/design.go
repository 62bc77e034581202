package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/audio"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// MaxSelection is the most nodes that can be selected at once; three
// selected nodes build a face.
const MaxSelection = 3

// DesignState edits the design wireframe. Left clicks select nodes or
// grid points, right clicks toggle pinning and Return builds from the
// selection.
type DesignState struct {
	ctx       *Context
	selection []*wireframe.Node
}

// NewDesignState creates the design mode.
func NewDesignState(ctx *Context) *DesignState {
	return &DesignState{ctx: ctx}
}

// Enter implements State.
func (s *DesignState) Enter() error {
	s.Deselect()
	return nil
}

// Exit implements State.
func (s *DesignState) Exit() error {
	s.Deselect()
	return nil
}

// Update implements State.
func (s *DesignState) Update() error { return nil }

// ShowGrid implements State.
func (s *DesignState) ShowGrid() bool { return true }

// Selection returns the selected nodes in selection order.
func (s *DesignState) Selection() []*wireframe.Node {
	return s.selection
}

// HandleEvent implements State.
func (s *DesignState) HandleEvent(ev events.Event) bool {
	switch ev.Kind {
	case events.KindMouse:
		if ev.Action != events.Release {
			return false
		}
		switch ev.Button {
		case events.ButtonLeft:
			s.Select()
		case events.ButtonRight:
			s.TogglePin()
		}
		return true

	case events.KindKey:
		if ev.Action != events.Press {
			return false
		}
		switch ev.Key {
		case "RETURN":
			s.Build()
		case "BACKSPACE":
			s.Deselect()
			s.ctx.play(audio.EffectDeselect, 1)
		case "DELETE":
			s.Clear()
		default:
			return false
		}
		return true
	}
	return false
}

// Select adds the design node under the pointer to the selection, or a
// new free node at the nearest grid point when there is none. A position
// already selected is not added twice.
func (s *DesignState) Select() {
	if len(s.selection) >= MaxSelection {
		s.ctx.play(audio.EffectError, 1)
		return
	}

	screen := s.ctx.World.Screen
	pointer := s.ctx.pointer()

	node := screen.NearestNode(pointer, s.ctx.Controls.PickRadius)
	if node == nil {
		pos, ok := screen.NearestGridPoint(pointer, nil)
		if !ok {
			s.ctx.play(audio.EffectError, 1)
			return
		}
		node = wireframe.NewNode(pos, wireframe.Free)
	}

	if !s.selected(node) {
		s.selection = append(s.selection, node)
		screen.SetExtras(s.selection)
	}
	s.ctx.play(audio.EffectSelect, 1)
}

func (s *DesignState) selected(n *wireframe.Node) bool {
	for _, sel := range s.selection {
		if sel == n || sel.Pos == n.Pos {
			return true
		}
	}
	return false
}

// TogglePin flips the design node under the pointer between pinned and
// free.
func (s *DesignState) TogglePin() {
	node := s.ctx.World.Screen.NearestNode(s.ctx.pointer(), s.ctx.Controls.PickRadius)
	if node == nil {
		return
	}
	node.W = 1 - node.W
}

// Build turns the selection into a node, an edge or a triangle with its
// three edges, then clears the selection.
func (s *DesignState) Build() {
	sel := s.selection
	wf := s.ctx.World.Design()
	bus := s.ctx.World.Bus

	var kind events.BuildKind
	switch len(sel) {
	case 1:
		kind = events.BuildNode
		wf.AddNodes(sel...)
	case 2:
		kind = events.BuildEdge
		wf.AddNodes(sel...)
		wf.AddEdgesAt([2]math.Vec3{sel[0].Pos, sel[1].Pos})
	case 3:
		kind = events.BuildFace
		wf.AddNodes(sel...)
		wf.AddEdgesAt(
			[2]math.Vec3{sel[0].Pos, sel[1].Pos},
			[2]math.Vec3{sel[1].Pos, sel[2].Pos},
			[2]math.Vec3{sel[2].Pos, sel[0].Pos},
		)
		color := s.ctx.Controls.FaceColor
		wf.AddFacesAt(&color, [3]math.Vec3{sel[0].Pos, sel[1].Pos, sel[2].Pos})
	default:
		s.ctx.play(audio.EffectError, 1)
		return
	}

	// The build chime is played by the bus's sound subscriber.
	if bus != nil {
		bus.Publish(events.Built(kind))
	}
	s.ctx.log().Debug("built", zap.Stringer("kind", kind), zap.Int("nodes", len(wf.Nodes)))
	s.Deselect()
}

// Deselect empties the selection.
func (s *DesignState) Deselect() {
	s.selection = nil
	s.ctx.World.Screen.SetExtras(nil)
}

// Clear removes everything from the design.
func (s *DesignState) Clear() {
	s.Deselect()
	s.ctx.World.Design().Clear()
	s.ctx.play(audio.EffectClear, 1)
	s.ctx.log().Info("design cleared")
}
