package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/audio"
	"github.com/Faultbox/wirebox/internal/engine/scene"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/logger"
)

// Layer is the controller's bus layer. It runs after input (-2).
const Layer = 0

// Controller routes bus events to the camera rig and the current state.
// Space toggles between design and simulate, F5 saves and F9 loads.
type Controller struct {
	ctx      *Context
	rig      *CameraRig
	manager  *Manager
	design   *DesignState
	simulate *SimulateState
	savePath string
	log      *zap.Logger
}

// NewController creates a controller starting in design mode. The mode
// takes effect on the first tick.
func NewController(ctx *Context, savePath string) *Controller {
	if ctx.Log == nil {
		ctx.Log = logger.Named("states")
	}
	c := &Controller{
		ctx:      ctx,
		rig:      NewCameraRig(ctx.Controls.MoveSpeed, ctx.Controls.LookSpeed),
		manager:  NewManager(),
		design:   NewDesignState(ctx),
		simulate: NewSimulateState(ctx),
		savePath: savePath,
		log:      ctx.Log,
	}
	c.manager.Change(c.design)
	return c
}

// Layer implements events.Handler.
func (c *Controller) Layer() float64 { return Layer }

// Design returns the design mode.
func (c *Controller) Design() *DesignState { return c.design }

// Simulate returns the simulate mode.
func (c *Controller) Simulate() *SimulateState { return c.simulate }

// Current returns the active mode, or nil before the first tick.
func (c *Controller) Current() State { return c.manager.Current() }

// Rig returns the camera rig.
func (c *Controller) Rig() *CameraRig { return c.rig }

// Notify implements events.Handler.
func (c *Controller) Notify(ev events.Event) bool {
	switch ev.Kind {
	case events.KindTick:
		c.rig.Apply(c.ctx.World.Camera)
		if err := c.manager.Update(); err != nil {
			c.log.Error("state update failed", zap.Error(err))
		}
		return false

	case events.KindKey:
		if c.rig.HandleKey(ev.Key, ev.Action) {
			return true
		}
		if ev.Action == events.Press {
			switch ev.Key {
			case "SPACE":
				c.Toggle()
				return true
			case "F5":
				c.Save()
				return true
			case "F9":
				c.Load()
				return true
			}
		}
		return c.manager.HandleEvent(ev)

	case events.KindMouse:
		return c.manager.HandleEvent(ev)
	}
	return false
}

// Toggle switches between design and simulate on the next tick.
func (c *Controller) Toggle() {
	if c.manager.Current() == State(c.simulate) {
		c.manager.Change(c.design)
	} else {
		c.manager.Change(c.simulate)
	}
}

// Save writes the design to the save path.
func (c *Controller) Save() {
	if err := c.ctx.World.Save(c.savePath); err != nil {
		c.log.Error("save failed", zap.String("path", c.savePath), zap.Error(err))
		c.ctx.play(audio.EffectError, 1)
		return
	}
	c.ctx.play(audio.EffectBuild, 1)
}

// Load replaces the design with the one at the save path. Loading is only
// allowed in design mode.
func (c *Controller) Load() {
	if c.manager.Current() != State(c.design) {
		c.ctx.play(audio.EffectError, 1)
		return
	}
	if err := c.ctx.World.Load(c.savePath); err != nil {
		c.log.Error("load failed", zap.String("path", c.savePath), zap.Error(err))
		c.ctx.play(audio.EffectError, 1)
		return
	}
	c.design.Deselect()
	c.log.Info("design loaded", zap.String("path", c.savePath))
	c.ctx.play(audio.EffectSelect, 1)
}

// RenderOrder returns what to draw this frame, back to front.
func (c *Controller) RenderOrder() []scene.Drawable {
	return c.manager.RenderOrder(c.ctx.World.Screen)
}
