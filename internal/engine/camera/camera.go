// Package camera provides the perspective camera used to view and pick the scene.
package camera

import (
	gomath "math"

	"github.com/Faultbox/wirebox/pkg/math"
)

// Angle limits. Pitch stops short of flipping over the top; yaw wraps so
// the camera can turn indefinitely.
const (
	MinPitch = -gomath.Pi / 2
	MaxPitch = gomath.Pi
)

// WorldUp points against gravity. Gravity pulls towards +Y in this world,
// so up is -Y.
var WorldUp = math.Vec3{X: 0, Y: -1, Z: 0}

// Camera is a free-flying perspective camera.
type Camera struct {
	// Pos is the eye position in world space.
	Pos math.Vec3

	// Theta holds the Euler angles in radians: X is pitch, Y is yaw, Z is roll.
	Theta math.Vec3

	// focal is the distance from the eye to the projection plane, 1/tan(fov/2).
	focal float64

	halfWidth  float64
	halfHeight float64
}

// New creates a camera at pos looking down +Z. fov is the field of view in
// radians; width and height are the viewport size in pixels.
func New(fov float64, pos math.Vec3, width, height int) *Camera {
	c := &Camera{Pos: pos}
	c.SetFOV(fov)
	c.Resize(width, height)
	return c
}

// FOV returns the field of view in radians.
func (c *Camera) FOV() float64 {
	return 2 * gomath.Atan(1/c.focal)
}

// SetFOV sets the field of view in radians.
func (c *Camera) SetFOV(fov float64) {
	c.focal = 1 / gomath.Tan(fov/2)
}

// Focal returns the focal distance derived from the field of view.
func (c *Camera) Focal() float64 {
	return c.focal
}

// Resize updates the viewport size used for projection.
func (c *Camera) Resize(width, height int) {
	c.halfWidth = float64(width) / 2
	c.halfHeight = float64(height) / 2
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (width, height float64) {
	return c.halfWidth * 2, c.halfHeight * 2
}

// Rotation returns the world-to-camera rotation: roll is applied first,
// then yaw, then pitch.
func (c *Camera) Rotation() math.Mat3 {
	return math.RotateX(c.Theta.X).
		Mul(math.RotateY(c.Theta.Y)).
		Mul(math.RotateZ(c.Theta.Z))
}

// ToCamera returns p in camera space. Z is the depth along the view direction.
func (c *Camera) ToCamera(p math.Vec3) math.Vec3 {
	return c.Rotation().Transform(p.Sub(c.Pos))
}

// Project returns the screen position of p. ok is false when p is behind
// the camera or on its plane, in which case the point cannot be drawn.
func (c *Camera) Project(p math.Vec3) (screen math.Vec2, ok bool) {
	r := c.ToCamera(p)
	if r.Z <= 0 {
		return math.Vec2{}, false
	}
	scale := c.focal / r.Z
	return math.Vec2{
		X: scale*r.X*c.halfWidth + c.halfWidth,
		Y: scale*r.Y*c.halfHeight + c.halfHeight,
	}, true
}

// Forward returns the horizontal unit direction the camera moves in.
func (c *Camera) Forward() math.Vec3 {
	cp := gomath.Cos(c.Theta.X)
	return math.Vec3{
		X: gomath.Sin(c.Theta.Y) * cp,
		Y: 0,
		Z: gomath.Cos(c.Theta.Y) * cp,
	}.Normalize()
}

// Right returns the horizontal unit direction used for strafing.
func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(WorldUp)
}

// Move advances the camera. Positive forward moves along the view
// direction, positive strafe moves to the right.
func (c *Camera) Move(forward, strafe float64) {
	c.Pos = c.Pos.Add(c.Forward().Scale(forward))
	c.Pos = c.Pos.Add(c.Right().Scale(strafe))
}

// Lift moves the camera along the world Y axis.
func (c *Camera) Lift(dy float64) {
	c.Pos.Y += dy
}

// Look turns the camera by the given pitch, yaw and roll deltas.
func (c *Camera) Look(pitch, yaw, roll float64) {
	c.Theta.X += pitch
	c.Theta.Y += yaw
	c.Theta.Z += roll

	if c.Theta.X < MinPitch {
		c.Theta.X = MinPitch
	}
	if c.Theta.X > MaxPitch {
		c.Theta.X = MaxPitch
	}

	if c.Theta.Y < -gomath.Pi {
		c.Theta.Y = gomath.Pi
	}
	if c.Theta.Y > gomath.Pi {
		c.Theta.Y = -gomath.Pi
	}
}
