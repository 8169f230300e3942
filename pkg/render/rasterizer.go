package render

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shader"
)

const (
	// DefaultCoverageEpsilon lets pixels just outside an edge count as
	// covered so adjacent triangles leave no seams.
	DefaultCoverageEpsilon = -0.0001
	// DefaultDenomEpsilon rejects triangles whose barycentric denominator
	// is too small to divide by.
	DefaultDenomEpsilon = 1e-6
)

// Rasterizer fills shaded triangles into a framebuffer.
// It is not safe for concurrent use.
type Rasterizer struct {
	fb *Framebuffer

	Projector       Projector
	CoverageEpsilon float64
	DenomEpsilon    float64
	Stats           RasterStats // Statistics for debugging/benchmarking
}

// RasterStats counts what happened to submitted triangles.
type RasterStats struct {
	Submitted  int // Triangles passed to FillTriangle*
	Culled     int // Back-facing or zero-area triangles
	Degenerate int // Rejected by the denominator epsilon
	Offscreen  int // Empty bounding box, non-finite, or behind the viewer
	Pixels     int // Pixels written
}

// NewRasterizer creates a rasterizer drawing into fb with a projector sized
// to match.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		fb:              fb,
		Projector:       NewProjector(fb.Width, fb.Height),
		CoverageEpsilon: DefaultCoverageEpsilon,
		DenomEpsilon:    DefaultDenomEpsilon,
	}
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// ResetStats resets the statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = RasterStats{}
}

// FillTriangle rasterizes the view-space triangle (v0, v1, v2) with the
// built-in shader for m at time t. It returns the number of pixels written.
func (r *Rasterizer) FillTriangle(v0, v1, v2 math3d.Vec3, m shader.Material, t float64) int {
	return r.FillTriangleFunc(v0, v1, v2, m.Func(), t)
}

// FillTriangleFunc rasterizes the view-space triangle (v0, v1, v2) with an
// arbitrary shader. Triangles whose projected winding is clockwise on screen
// (counter-clockwise as seen by the viewer with Y up) are front-facing;
// the rest are culled. Degenerate and off-screen triangles are skipped.
func (r *Rasterizer) FillTriangleFunc(v0, v1, v2 math3d.Vec3, fn shader.Func, t float64) int {
	return r.fill(v0, v1, v2, v0, v1, v2, fn, t)
}

// FillTriangleSurface is FillTriangleFunc with separate shading positions:
// s0, s1 and s2 are interpolated and passed to the shader in place of the
// view-space positions, so surface patterns stay attached to a moving body.
// The normal is still taken from the view-space triangle.
func (r *Rasterizer) FillTriangleSurface(v0, v1, v2, s0, s1, s2 math3d.Vec3, fn shader.Func, t float64) int {
	return r.fill(v0, v1, v2, s0, s1, s2, fn, t)
}

func (r *Rasterizer) fill(v0, v1, v2, s0, s1, s2 math3d.Vec3, fn shader.Func, t float64) int {
	r.Stats.Submitted++

	proj := r.Projector
	if !proj.InFront(v0) || !proj.InFront(v1) || !proj.InFront(v2) {
		r.Stats.Offscreen++
		return 0
	}

	x0, y0, _ := proj.Project(v0)
	x1, y1, _ := proj.Project(v1)
	x2, y2, _ := proj.Project(v2)

	normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

	// Backface culling (using screen-space winding)
	cross := (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
	if !(cross > 0) {
		if math.IsNaN(cross) {
			r.Stats.Offscreen++
		} else {
			r.Stats.Culled++
		}
		return 0
	}

	// Find bounding box, clamped in float space so huge or infinite
	// coordinates never reach an int conversion.
	fMinX := math.Max(0, math.Floor(min(x0, x1, x2)))
	fMaxX := math.Min(float64(r.fb.Width-1), math.Ceil(max(x0, x1, x2)))
	fMinY := math.Max(0, math.Floor(min(y0, y1, y2)))
	fMaxY := math.Min(float64(r.fb.Height-1), math.Ceil(max(y0, y1, y2)))
	if !(fMinX <= fMaxX && fMinY <= fMaxY) {
		r.Stats.Offscreen++
		return 0
	}
	minX, maxX := int(fMinX), int(fMaxX)
	minY, maxY := int(fMinY), int(fMaxY)

	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if !(math.Abs(denom) >= r.DenomEpsilon) {
		r.Stats.Degenerate++
		return 0
	}
	inv := 1 / denom
	eps := r.CoverageEpsilon

	written := 0
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		row := y * r.fb.Width
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) * inv
			w1 := ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) * inv
			w2 := 1 - w0 - w1
			if !(w0 >= eps && w1 >= eps && w2 >= eps) {
				continue
			}

			depth := w0*v0.Z + w1*v1.Z + w2*v2.Z
			// Early depth reject avoids shading pixels that would lose.
			if !(depth < r.fb.Depth[row+x]) {
				continue
			}

			pos := math3d.Barycentric(s0, s1, s2, w0, w1, w2)
			if r.fb.SetPixelDepthColor(x, y, depth, fn(pos, normal, t)) {
				written++
			}
		}
	}

	r.Stats.Pixels += written
	return written
}

// FillMesh rasterizes every face of an indexed triangle list. The transform
// maps mesh vertices into view space; the shader sees the untransformed
// mesh positions. Faces with out-of-range indices are skipped.
func (r *Rasterizer) FillMesh(vertices []math3d.Vec3, faces [][3]int, transform math3d.Mat4, m shader.Material, t float64) int {
	fn := m.Func()
	n := len(vertices)
	written := 0
	for _, f := range faces {
		if f[0] < 0 || f[0] >= n || f[1] < 0 || f[1] >= n || f[2] < 0 || f[2] >= n {
			continue
		}
		a, b, c := vertices[f[0]], vertices[f[1]], vertices[f[2]]
		written += r.fill(
			transform.MulVec3(a), transform.MulVec3(b), transform.MulVec3(c),
			a, b, c,
			fn, t,
		)
	}
	return written
}
