// Package states implements the design and simulate modes and the
// controller that switches between them.
package states

import (
	"github.com/Faultbox/wirebox/internal/engine/scene"
	"github.com/Faultbox/wirebox/internal/events"
)

// State is one mode of play.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every tick.
	Update() error

	// HandleEvent processes key and mouse events. Returning true consumes
	// the event.
	HandleEvent(ev events.Event) bool

	// ShowGrid reports whether the selection grid is drawn.
	ShowGrid() bool
}

// Manager manages state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change, applied on the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes a pending change and updates the current state.
func (m *Manager) Update() error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update()
	}
	return nil
}

// HandleEvent passes an event to the current state.
func (m *Manager) HandleEvent(ev events.Event) bool {
	if m.current != nil {
		return m.current.HandleEvent(ev)
	}
	return false
}

// RenderOrder returns what the current state draws, back to front.
func (m *Manager) RenderOrder(screen *scene.Screen) []scene.Drawable {
	showGrid := m.current != nil && m.current.ShowGrid()
	return screen.RenderOrder(showGrid)
}
