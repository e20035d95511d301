package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point at a fixed distance.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Yaw      float32 // radians about +Y, 0 looks from +Z
	Pitch    float32 // radians above the ground plane
	Distance float32
}

// Pitch limits keep the camera above the field and off the pole.
const (
	minPitch = 0.05
	maxPitch = math.Pi/2 - 0.05
)

func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Yaw:         math.Pi / 4,
		Pitch:       math.Pi / 5,
		Distance:    20,
	}
}

// Frame moves the target to the centre of the box and backs off far enough
// to see all of it.
func (c *Camera) Frame(lo, hi mgl32.Vec3) {
	c.Target = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	half := mgl32.DegToRad(c.FOV) / 2
	c.Distance = max(radius/float32(math.Sin(float64(half))), c.NearPlane*2)
}

// Orbit turns the camera by dyaw and dpitch radians.
func (c *Camera) Orbit(dyaw, dpitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dyaw), 2*math.Pi))
	c.Pitch = mgl32.Clamp(c.Pitch+dpitch, minPitch, maxPitch)
}

// Zoom scales the orbit distance.
func (c *Camera) Zoom(factor float32) {
	c.Distance = mgl32.Clamp(c.Distance*factor, c.NearPlane*2, c.FarPlane/2)
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}
