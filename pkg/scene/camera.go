package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

const (
	// maxPitch keeps the camera off the poles where the basis degenerates.
	maxPitch = math.Pi/2 - 0.01

	DefaultDistance    = 25.0
	DefaultMinDistance = 2.0
	DefaultMaxDistance = 400.0
)

// Camera orbits a target point. Yaw and distance changes are eased toward
// their goals with critically damped springs; pitch applies immediately.
//
// At yaw 0 the camera looks along +Z with +X to its right.
type Camera struct {
	Target   math3d.Vec3
	Yaw      float64 // Rotation around Y axis
	Pitch    float64 // Positive looks down from above
	Distance float64

	MinDistance, MaxDistance float64

	// Bias is subtracted from view depth so the projector's z + Bias is
	// the true distance along the view axis.
	Bias float64

	yawGoal, yawVel   float64
	distGoal, distVel float64
	spring            harmonica.Spring

	// Cached basis (recomputed when the pose changes)
	pose               [7]float64
	eye                math3d.Vec3
	right, up, forward math3d.Vec3
	view               math3d.Mat4
	valid              bool
}

// NewCamera returns a camera DefaultDistance away from the origin, slightly
// above the orbital plane, with springs stepped at fps frames per second.
func NewCamera(fps int) *Camera {
	fps = max(fps, 1)
	c := &Camera{
		Pitch:       math.Asin(5.0 / DefaultDistance),
		Distance:    DefaultDistance,
		MinDistance: DefaultMinDistance,
		MaxDistance: DefaultMaxDistance,
		Bias:        render.DefaultBias,
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	c.yawGoal = c.Yaw
	c.distGoal = c.Distance
	return c
}

// Frame points the camera at target from far enough away to see a sphere
// of the given radius with a 90° field of view.
func (c *Camera) Frame(target math3d.Vec3, radius float64) {
	c.Target = target
	d := c.clampDistance(radius * 1.6)
	c.Distance, c.distGoal, c.distVel = d, d, 0
}

// Orbit turns the camera around the target. Yaw eases toward its new goal;
// pitch is clamped and applied at once.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	c.yawGoal += deltaYaw
	c.Pitch = clampPitch(c.Pitch + deltaPitch)
}

// Zoom multiplies the goal distance by factor (below 1 moves closer).
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	c.distGoal = c.clampDistance(c.distGoal * factor)
}

// Update steps the springs by one frame.
func (c *Camera) Update() {
	c.Yaw, c.yawVel = c.spring.Update(c.Yaw, c.yawVel, c.yawGoal)
	c.Distance, c.distVel = c.spring.Update(c.Distance, c.distVel, c.distGoal)
	c.Pitch = clampPitch(c.Pitch)
}

// Settle jumps straight to the current goals and stops all motion.
func (c *Camera) Settle() {
	c.Yaw, c.yawVel = c.yawGoal, 0
	c.Distance, c.distVel = c.distGoal, 0
}

// Settled reports whether the springs have come to rest.
func (c *Camera) Settled() bool {
	const eps = 1e-4
	return math.Abs(c.Yaw-c.yawGoal) < eps && math.Abs(c.yawVel) < eps &&
		math.Abs(c.Distance-c.distGoal) < eps && math.Abs(c.distVel) < eps
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() math3d.Vec3 {
	c.refresh()
	return c.eye
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	c.refresh()
	return c.forward
}

// Right returns the unit right direction.
func (c *Camera) Right() math3d.Vec3 {
	c.refresh()
	return c.right
}

// Up returns the unit up direction.
func (c *Camera) Up() math3d.Vec3 {
	c.refresh()
	return c.up
}

// ViewMatrix returns the world-to-view transform. View space has +X right,
// +Y up and +Z away from the viewer, offset by Bias.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	c.refresh()
	return c.view
}

// ToView maps a world point into view space.
func (c *Camera) ToView(p math3d.Vec3) math3d.Vec3 {
	return c.ViewMatrix().MulVec3(p)
}

// DirToView rotates a world direction into view space without translation
// or bias. Used for objects at infinity.
func (c *Camera) DirToView(d math3d.Vec3) math3d.Vec3 {
	return c.ViewMatrix().MulVec3Dir(d)
}

func (c *Camera) refresh() {
	pose := [7]float64{c.Target.X, c.Target.Y, c.Target.Z, c.Yaw, c.Pitch, c.Distance, c.Bias}
	if c.valid && pose == c.pose {
		return
	}
	c.pose, c.valid = pose, true

	pitch := clampPitch(c.Pitch)
	sy, cy := math.Sincos(c.Yaw)
	sp, cp := math.Sincos(pitch)

	f := math3d.V3(sy*cp, -sp, cy*cp)
	r := math3d.Up().Cross(f).Normalize()
	u := f.Cross(r)

	c.forward, c.right, c.up = f, r, u
	c.eye = c.Target.Sub(f.Scale(c.Distance))

	c.view = math3d.Mat4{
		r.X, u.X, f.X, 0,
		r.Y, u.Y, f.Y, 0,
		r.Z, u.Z, f.Z, 0,
		-r.Dot(c.eye), -u.Dot(c.eye), -f.Dot(c.eye) - c.Bias, 1,
	}
}

func (c *Camera) clampDistance(d float64) float64 {
	d = max(d, c.MinDistance)
	if c.MaxDistance > 0 {
		d = min(d, c.MaxDistance)
	}
	return d
}

func clampPitch(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return max(-maxPitch, min(maxPitch, p))
}
