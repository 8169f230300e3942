package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// DefaultBias is the distance from the viewer to the z=0 plane.
const DefaultBias = 3.0

// Projector maps view-space points to pixel coordinates with a simple
// perspective divide by (z + Bias). It holds no camera state.
type Projector struct {
	Width, Height float64
	Scale         float64
	Bias          float64
}

// NewProjector returns a projector for a w×h viewport with unit scale.
func NewProjector(w, h int) Projector {
	return Projector{
		Width:  float64(w),
		Height: float64(h),
		Scale:  1,
		Bias:   DefaultBias,
	}
}

// ScaleForFOV returns the projector scale that gives the requested full
// field of view in radians. 90° yields 1.
func ScaleForFOV(fov float64) float64 {
	return 1 / math.Tan(fov/2)
}

// Project returns the pixel position of p and its depth. X grows right and
// Y grows down. The depth is p.Z unchanged; smaller is nearer.
// Points at or behind z = -Bias produce non-finite or mirrored coordinates
// and should be rejected by the caller.
func (p Projector) Project(v math3d.Vec3) (x, y, depth float64) {
	f := 1 / (v.Z + p.Bias)
	x = p.Width/2 + v.X*p.Scale*f*p.Width/2
	y = p.Height/2 - v.Y*p.Scale*f*p.Height/2
	return x, y, v.Z
}

// ProjectVec2 returns the pixel position of v.
func (p Projector) ProjectVec2(v math3d.Vec3) math3d.Vec2 {
	x, y, _ := p.Project(v)
	return math3d.V2(x, y)
}

// InFront reports whether v lies strictly in front of the viewer.
func (p Projector) InFront(v math3d.Vec3) bool {
	return v.Z+p.Bias > 0
}
