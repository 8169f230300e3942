package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// OrbitSegments is the number of line segments used to draw an orbit.
const OrbitSegments = 64

// nearPlane is the smallest distance along the view axis at which overlay
// points are still projected.
const nearPlane = 0.05

// Overlay draws unshaded lines in world space on top of a frame.
// Lines are not depth tested.
type Overlay struct {
	camera *Camera
	fb     *render.Framebuffer
	proj   render.Projector
}

// NewOverlay creates an overlay drawing into fb from the camera's view.
func NewOverlay(camera *Camera, fb *render.Framebuffer) *Overlay {
	proj := render.NewProjector(fb.Width, fb.Height)
	proj.Bias = camera.Bias
	return &Overlay{
		camera: camera,
		fb:     fb,
		proj:   proj,
	}
}

// SetProjector replaces the projector, for example after a FOV change.
func (o *Overlay) SetProjector(p render.Projector) {
	o.proj = p
}

func (o *Overlay) visible(v math3d.Vec3) bool {
	return v.Z+o.proj.Bias >= nearPlane
}

// DrawLine3D draws a line between two world points. A segment crossing
// behind the camera is cut at the near plane; one fully behind is skipped.
func (o *Overlay) DrawLine3D(p1, p2 math3d.Vec3, color render.Color) {
	a, b := o.camera.ToView(p1), o.camera.ToView(p2)
	visA, visB := o.visible(a), o.visible(b)
	if !visA && !visB {
		return
	}
	if !visA || !visB {
		// Cut at the near plane.
		za, zb := a.Z+o.proj.Bias, b.Z+o.proj.Bias
		t := (nearPlane - za) / (zb - za)
		cut := a.Lerp(b, t)
		if visA {
			b = cut
		} else {
			a = cut
		}
	}

	prev := o.fb.CurrentColor()
	o.fb.SetCurrentColor(color)
	render.Line(o.fb, o.proj.ProjectVec2(a), o.proj.ProjectVec2(b))
	o.fb.SetCurrentColor(prev)
}

// DrawOrbit draws a horizontal circle of the given radius around center.
func (o *Overlay) DrawOrbit(center math3d.Vec3, radius float64, color render.Color) {
	if !(radius > 0) {
		return
	}
	pts := make([]math3d.Vec2, 0, OrbitSegments)
	world := make([]math3d.Vec3, OrbitSegments)
	allVisible := true
	for i := range OrbitSegments {
		sin, cos := math.Sincos(float64(i) * 2 * math.Pi / OrbitSegments)
		world[i] = center.Add(math3d.V3(radius*cos, 0, radius*sin))
		v := o.camera.ToView(world[i])
		if !o.visible(v) {
			allVisible = false
			continue
		}
		pts = append(pts, o.proj.ProjectVec2(v))
	}

	if allVisible {
		prev := o.fb.CurrentColor()
		o.fb.SetCurrentColor(color)
		render.Polygon(o.fb, pts)
		o.fb.SetCurrentColor(prev)
		return
	}
	// Part of the ring is behind the camera; clip edge by edge.
	for i := range world {
		o.DrawLine3D(world[i], world[(i+1)%len(world)], color)
	}
}

// DrawOrbits draws the orbit of every body that has one.
func (o *Overlay) DrawOrbits(sys *System, color render.Color) {
	for _, b := range sys.Bodies {
		o.DrawOrbit(b.OrbitCenter(), b.OrbitRadius, color)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (o *Overlay) DrawAxes(length float64) {
	origin := math3d.Zero3()
	o.DrawLine3D(origin, math3d.V3(length, 0, 0), render.ColorRed)   // X axis
	o.DrawLine3D(origin, math3d.V3(0, length, 0), render.ColorGreen) // Y axis
	o.DrawLine3D(origin, math3d.V3(0, 0, length), render.ColorBlue)  // Z axis
}

// DrawPoint draws a point as a small cross.
func (o *Overlay) DrawPoint(pos math3d.Vec3, size float64, color render.Color) {
	h := size / 2
	o.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), color)
	o.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), color)
	o.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), color)
}
