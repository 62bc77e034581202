package states

import (
	"github.com/Faultbox/wirebox/internal/engine/camera"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/pkg/math"
)

// CameraRig turns held keys into camera motion applied once per tick.
// A press sets the axis, its release zeroes it.
type CameraRig struct {
	moveSpeed float64
	lookSpeed float64

	move math.Vec3 // forward, strafe, lift
	look math.Vec2 // pitch, yaw
}

// NewCameraRig creates a rig with the given speeds.
func NewCameraRig(moveSpeed, lookSpeed float64) *CameraRig {
	return &CameraRig{moveSpeed: moveSpeed, lookSpeed: lookSpeed}
}

// HandleKey updates the rig for a key event. It reports whether the key
// is one the rig uses.
func (r *CameraRig) HandleKey(key string, action events.Action) bool {
	on := func(v float64) float64 {
		if action == events.Release {
			return 0
		}
		return v
	}

	switch key {
	case "W":
		r.move.X = on(r.moveSpeed)
	case "S":
		r.move.X = on(-r.moveSpeed)
	case "A":
		r.move.Y = on(-r.moveSpeed)
	case "D":
		r.move.Y = on(r.moveSpeed)
	case "Q":
		r.move.Z = on(-r.moveSpeed)
	case "E":
		r.move.Z = on(r.moveSpeed)
	case "UP":
		r.look.X = on(r.lookSpeed)
	case "DOWN":
		r.look.X = on(-r.lookSpeed)
	case "LEFT":
		r.look.Y = on(-r.lookSpeed)
	case "RIGHT":
		r.look.Y = on(r.lookSpeed)
	default:
		return false
	}
	return true
}

// Apply moves and turns the camera by one tick's worth.
func (r *CameraRig) Apply(cam *camera.Camera) {
	cam.Move(r.move.X, r.move.Y)
	cam.Lift(r.move.Z)
	cam.Look(r.look.X, r.look.Y, 0)
}

// Reset stops all motion.
func (r *CameraRig) Reset() {
	r.move = math.Vec3{}
	r.look = math.Vec2{}
}
