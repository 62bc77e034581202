// Package events implements the ordered publish/subscribe channel that drives
// every frame: Tick and Render notifications, input, and the physics reports.
package events

import "fmt"

// Kind identifies what an Event carries.
type Kind int

const (
	// KindTick advances simulation state by one frame.
	KindTick Kind = iota

	// KindRender draws one frame. Delivered in reverse layer order so the
	// handlers that react first are drawn last (on top).
	KindRender

	// KindBegin is published once before the first frame.
	KindBegin

	// KindBuild reports a node, edge or face built by the player.
	// Payload: Build
	KindBuild

	// KindCollision reports a node clamped back into the box.
	// Payload: Speed (magnitude of the reflected velocity)
	KindCollision

	// KindNodeMoved reports a node integrated by the physics move pass.
	// Payload: Speed (magnitude of the damped velocity)
	KindNodeMoved

	// KindKey reports a key press or release.
	// Payload: Key, Action
	KindKey

	// KindMouse reports a mouse button press or release.
	// Payload: Button, Action, X, Y
	KindMouse
)

var kindNames = [...]string{
	KindTick:      "tick",
	KindRender:    "render",
	KindBegin:     "begin",
	KindBuild:     "build",
	KindCollision: "collision",
	KindNodeMoved: "node_moved",
	KindKey:       "key",
	KindMouse:     "mouse",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// BuildKind says what a KindBuild event built.
type BuildKind int

const (
	BuildNode BuildKind = iota
	BuildEdge
	BuildFace
)

func (b BuildKind) String() string {
	switch b {
	case BuildNode:
		return "node"
	case BuildEdge:
		return "edge"
	case BuildFace:
		return "face"
	}
	return fmt.Sprintf("build(%d)", int(b))
}

// Action distinguishes press from release for key and mouse events.
type Action int

const (
	Press Action = iota
	Release
)

// Button is a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Event is a tagged notification. Only the fields documented for its Kind
// are meaningful.
type Event struct {
	Kind Kind

	Speed  float64
	Build  BuildKind
	Key    string
	Button Button
	Action Action
	X, Y   int
}

// Tick returns a frame tick notification.
func Tick() Event { return Event{Kind: KindTick} }

// Render returns a frame render notification.
func Render() Event { return Event{Kind: KindRender} }

// Begin returns the start-of-run notification.
func Begin() Event { return Event{Kind: KindBegin} }

// Collision returns a collision report with the rebound speed.
func Collision(speed float64) Event { return Event{Kind: KindCollision, Speed: speed} }

// NodeMoved returns a move report with the integrated speed.
func NodeMoved(speed float64) Event { return Event{Kind: KindNodeMoved, Speed: speed} }

// Built returns a build report.
func Built(kind BuildKind) Event { return Event{Kind: KindBuild, Build: kind} }

// KeyEvent returns a key notification. key is an upper-case key name such as "W" or "UP".
func KeyEvent(key string, action Action) Event {
	return Event{Kind: KindKey, Key: key, Action: action}
}

// MouseEvent returns a mouse button notification at screen position (x, y).
func MouseEvent(button Button, action Action, x, y int) Event {
	return Event{Kind: KindMouse, Button: button, Action: action, X: x, Y: y}
}
