package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying first person camera driven by yaw and pitch.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3

	Yaw, Pitch float64
}

func NewCamera(position mgl32.Vec3) *Camera {
	c := &Camera{
		Position: position,
		Yaw:      -90,
	}
	c.refresh()
	return c
}

// Turn applies a mouse delta in degrees. Pitch is clamped short of the
// poles so the view never flips.
func (c *Camera) Turn(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	c.refresh()
}

func (c *Camera) refresh() {
	yaw := float64(mgl32.DegToRad(float32(c.Yaw)))
	pitch := float64(mgl32.DegToRad(float32(c.Pitch)))
	c.Front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.Right = c.Front.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// FlatFront returns the front vector projected to the XZ plane, for
// movement that ignores pitch.
func (c *Camera) FlatFront() mgl32.Vec3 {
	f := mgl32.Vec3{c.Front.X(), 0, c.Front.Z()}
	if f.Len() == 0 {
		return f
	}
	return f.Normalize()
}

// View returns the camera's view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}
