package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/audio"
	"github.com/Faultbox/wirebox/internal/game/world"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Controls holds the tunable input settings.
type Controls struct {
	LookSpeed  float64
	MoveSpeed  float64
	PickRadius float64
	FaceColor  wireframe.RGB
}

// DefaultControls returns the standard input settings.
func DefaultControls() Controls {
	return Controls{
		LookSpeed:  0.05,
		MoveSpeed:  1,
		PickRadius: 10,
		FaceColor:  wireframe.RGB{R: 255, G: 255, B: 255},
	}
}

// Context is shared by every state.
type Context struct {
	World    *world.World
	Sound    audio.Player     // may be nil
	Pointer  func() math.Vec2 // current mouse position
	Controls Controls
	Log      *zap.Logger
}

func (c *Context) play(effect audio.Effect, volume float64) {
	if c.Sound == nil {
		return
	}
	if err := c.Sound.Play(effect, volume); err != nil {
		c.log().Debug("sound not played", zap.Stringer("effect", effect), zap.Error(err))
	}
}

func (c *Context) pointer() math.Vec2 {
	if c.Pointer == nil {
		return math.Vec2{}
	}
	return c.Pointer()
}

func (c *Context) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
