// Package input polls SDL2 events and republishes them on the event bus.
package input

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/logger"
)

// Layer is the bus layer input runs on. It is below every other handler so
// key and mouse events are published before the rest of the frame reacts
// to the tick.
const Layer = -2

// Input translates SDL events into bus events once per tick.
type Input struct {
	bus *events.Bus
	log *zap.Logger

	mouseX, mouseY int
	quit           bool
	resized        bool
	width, height  int
}

// New creates an input handler publishing on bus.
func New(bus *events.Bus) *Input {
	return &Input{bus: bus, log: logger.Named("input")}
}

// Layer implements events.Handler.
func (i *Input) Layer() float64 { return Layer }

// Notify implements events.Handler. On Tick it drains the SDL queue.
func (i *Input) Notify(ev events.Event) bool {
	if ev.Kind == events.KindTick {
		i.Update()
	}
	return false
}

// Update polls SDL events and publishes the ones the game understands.
func (i *Input) Update() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			action := events.Press
			if e.Type == sdl.KEYUP {
				action = events.Release
			}
			if name, ok := KeyName(e.Keysym.Scancode); ok {
				i.bus.Publish(events.KeyEvent(name, action))
			}

		case *sdl.MouseMotionEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)

		case *sdl.MouseButtonEvent:
			i.mouseX, i.mouseY = int(e.X), int(e.Y)
			button, ok := mouseButton(e.Button)
			if !ok {
				continue
			}
			action := events.Press
			if e.Type == sdl.MOUSEBUTTONUP {
				action = events.Release
			}
			i.bus.Publish(events.MouseEvent(button, action, i.mouseX, i.mouseY))
		}
	}
}

// Mouse returns the last known pointer position.
func (i *Input) Mouse() (x, y int) {
	return i.mouseX, i.mouseY
}

// QuitRequested reports whether the window was asked to close.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// RequestQuit marks the loop for shutdown.
func (i *Input) RequestQuit() {
	i.quit = true
}

// Resized returns the new window size once after a resize.
func (i *Input) Resized() (width, height int, ok bool) {
	if !i.resized {
		return 0, 0, false
	}
	i.resized = false
	return i.width, i.height, true
}

// KeyName returns the upper-case name of a key, such as "W", "UP" or "F5".
func KeyName(sc sdl.Scancode) (string, bool) {
	name := sdl.GetScancodeName(sc)
	if name == "" {
		return "", false
	}
	return strings.ToUpper(name), true
}

func mouseButton(b uint8) (events.Button, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return events.ButtonLeft, true
	case sdl.BUTTON_RIGHT:
		return events.ButtonRight, true
	}
	return 0, false
}
