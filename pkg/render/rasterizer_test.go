package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shader"
)

// frontTri is front-facing: bottom-left, top, bottom-right as seen by the
// viewer with Y up.
func frontTri(z, s float64) (math3d.Vec3, math3d.Vec3, math3d.Vec3) {
	return math3d.V3(-s, -s, z), math3d.V3(0, s, z), math3d.V3(s, -s, z)
}

func flat(c Color) shader.Func {
	return func(_, _ math3d.Vec3, _ float64) color.RGBA { return c }
}

// countColor returns how many pixels in fb equal c.
func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestSingleTriangleFootprint(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	r := NewRasterizer(fb)

	v0, v1, v2 := frontTri(0, 1)
	encode := func(pos, _ math3d.Vec3, _ float64) color.RGBA {
		return color.RGBA{uint8(pos.X*100 + 120), uint8(pos.Y*100 + 120), 7, 255}
	}
	written := r.FillTriangleFunc(v0, v1, v2, encode, 0)
	if written == 0 {
		t.Fatal("front-facing triangle wrote no pixels")
	}

	x0, y0, _ := r.Projector.Project(v0)
	x1, y1, _ := r.Projector.Project(v1)
	x2, y2, _ := r.Projector.Project(v2)
	denom := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)

	var inside int
	for y := range fb.Height {
		for x := range fb.Width {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0 := ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) / denom
			w1 := ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) / denom
			w2 := 1 - w0 - w1

			got := fb.GetPixel(x, y)
			depth := fb.DepthAt(x, y)

			// Skip the thin band where rounding could go either way.
			const band = 1e-3
			switch {
			case w0 > band && w1 > band && w2 > band:
				inside++
				if depth != 0 {
					t.Fatalf("(%d,%d) depth = %v, want 0", x, y, depth)
				}
				pos := math3d.Barycentric(v0, v1, v2, w0, w1, w2)
				want := encode(pos, math3d.Vec3{}, 0)
				if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || got.B != 7 {
					t.Fatalf("(%d,%d) color = %v, want about %v", x, y, got, want)
				}
			case w0 < -band || w1 < -band || w2 < -band:
				if got != ColorSpace || !math.IsInf(depth, 1) {
					t.Fatalf("(%d,%d) outside footprint was written", x, y)
				}
			}
		}
	}

	if inside == 0 || written < inside {
		t.Errorf("written = %d, strictly inside = %d", written, inside)
	}
	if r.Stats.Pixels != written || r.Stats.Submitted != 1 {
		t.Errorf("stats = %+v", r.Stats)
	}
}

func TestDepthOrderIndependent(t *testing.T) {
	// B is A scaled by two at z=5, so both project to the same footprint.
	a0, a1, a2 := frontTri(1, 0.5)
	b0, b1, b2 := frontTri(5, 1)

	tests := []struct {
		name      string
		nearFirst bool
	}{
		{"near first", true},
		{"far first", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(100, 100)
			r := NewRasterizer(fb)

			var nearPixels int
			if tc.nearFirst {
				nearPixels = r.FillTriangleFunc(a0, a1, a2, flat(ColorRed), 0)
				if n := r.FillTriangleFunc(b0, b1, b2, flat(ColorBlue), 0); n != 0 {
					t.Errorf("far triangle overwrote %d pixels", n)
				}
			} else {
				r.FillTriangleFunc(b0, b1, b2, flat(ColorBlue), 0)
				nearPixels = r.FillTriangleFunc(a0, a1, a2, flat(ColorRed), 0)
			}

			if nearPixels == 0 {
				t.Fatal("near triangle wrote nothing")
			}
			if n := countColor(fb, ColorBlue); n != 0 {
				t.Errorf("%d pixels still show the far triangle", n)
			}
			if n := countColor(fb, ColorRed); n != nearPixels {
				t.Errorf("red pixels = %d, want %d", n, nearPixels)
			}
		})
	}
}

func TestFillTriangleWithMaterial(t *testing.T) {
	fb := NewFramebuffer(40, 40)
	r := NewRasterizer(fb)
	v0, v1, v2 := frontTri(0, 1)
	if r.FillTriangle(v0, v1, v2, shader.Lava, 2) == 0 {
		t.Fatal("no pixels written")
	}

	// The center pixel lies well inside the triangle.
	x, y := 20, 23
	if math.IsInf(fb.DepthAt(x, y), 1) {
		t.Fatalf("center pixel (%d,%d) not covered", x, y)
	}
	if got := fb.GetPixel(x, y); got.A != 255 {
		t.Errorf("shaded pixel alpha = %d", got.A)
	}
}

func TestBackfaceComplementary(t *testing.T) {
	tris := [][3]math3d.Vec3{
		{math3d.V3(-1, -1, 0), math3d.V3(0, 1, 0), math3d.V3(1, -1, 0)},
		{math3d.V3(-0.3, 0.2, 1), math3d.V3(0.7, 0.9, 2), math3d.V3(0.1, -0.8, 0.5)},
		{math3d.V3(0, 0, 0), math3d.V3(0.01, 0.5, 0), math3d.V3(0.5, 0.02, 0)},
		{math3d.V3(-2, 1, 4), math3d.V3(2, 1.5, 3), math3d.V3(0, -2, 6)},
		{math3d.V3(5, 5, 0), math3d.V3(6, 5, 0), math3d.V3(5, 6, 0)},
	}

	for i, tri := range tris {
		fb := NewFramebuffer(80, 60)
		r := NewRasterizer(fb)
		r.FillTriangleFunc(tri[0], tri[1], tri[2], flat(ColorRed), 0)
		r.FillTriangleFunc(tri[0], tri[2], tri[1], flat(ColorRed), 0)

		if r.Stats.Culled != 1 {
			t.Errorf("triangle %d: culled %d of the two windings, want exactly 1", i, r.Stats.Culled)
		}
	}
}

func TestZeroAreaTriangleCulled(t *testing.T) {
	fb := NewFramebuffer(50, 50)
	r := NewRasterizer(fb)
	n := r.FillTriangleFunc(math3d.V3(0, -1, 0), math3d.V3(0, 0, 0), math3d.V3(0, 1, 2), flat(ColorRed), 0)
	if n != 0 || r.Stats.Culled != 1 {
		t.Errorf("collinear triangle: wrote %d, stats %+v", n, r.Stats)
	}
}

func TestDenominatorEpsilonRejects(t *testing.T) {
	fb := NewFramebuffer(50, 50)
	r := NewRasterizer(fb)
	r.DenomEpsilon = 1e12
	v0, v1, v2 := frontTri(0, 1)
	if n := r.FillTriangleFunc(v0, v1, v2, flat(ColorRed), 0); n != 0 {
		t.Errorf("wrote %d pixels, want 0", n)
	}
	if r.Stats.Degenerate != 1 {
		t.Errorf("Degenerate = %d, want 1", r.Stats.Degenerate)
	}
}

func TestOffscreenTriangleLeavesBufferUnchanged(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]math3d.Vec3
	}{
		{"right of viewport", [3]math3d.Vec3{math3d.V3(10, -1, 0), math3d.V3(11, 1, 0), math3d.V3(12, -1, 0)}},
		{"above viewport", [3]math3d.Vec3{math3d.V3(-1, 10, 0), math3d.V3(0, 12, 0), math3d.V3(1, 10, 0)}},
		{"behind viewer", [3]math3d.Vec3{math3d.V3(-1, -1, -4), math3d.V3(0, 1, -4), math3d.V3(1, -1, -4)}},
		{"straddles viewer plane", [3]math3d.Vec3{math3d.V3(-1, -1, -3), math3d.V3(0, 1, 1), math3d.V3(1, -1, 1)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(100, 100)
			r := NewRasterizer(fb)
			n := r.FillTriangleFunc(tc.tri[0], tc.tri[1], tc.tri[2], flat(ColorRed), 0)
			if n != 0 {
				t.Errorf("wrote %d pixels", n)
			}
			if countColor(fb, ColorSpace) != len(fb.Pixels) {
				t.Error("framebuffer changed")
			}
			for _, d := range fb.Depth {
				if !math.IsInf(d, 1) {
					t.Fatal("depth buffer changed")
				}
			}
			if r.Stats.Offscreen != 1 {
				t.Errorf("Offscreen = %d, want 1", r.Stats.Offscreen)
			}
		})
	}
}

func TestNonFiniteInputDoesNotPanic(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	bad := []math3d.Vec3{
		math3d.V3(nan, 0, 0),
		math3d.V3(0, inf, 0),
		math3d.V3(0, 0, inf),
		math3d.V3(1e300, -1e300, 0),
		math3d.V3(0, 0, -3+1e-12),
	}
	fb := NewFramebuffer(30, 30)
	r := NewRasterizer(fb)
	v0, v1, v2 := frontTri(0, 1)
	for _, b := range bad {
		for _, m := range shader.Materials() {
			r.FillTriangle(b, v1, v2, m, 0)
			r.FillTriangle(v0, b, v2, m, nan)
			r.FillTriangle(v0, v1, b, m, inf)
		}
	}
}

func TestSharedEdgeHasNoSeam(t *testing.T) {
	fb := NewFramebuffer(100, 100)
	r := NewRasterizer(fb)

	bl, tl := math3d.V3(-1, -1, 0), math3d.V3(-1, 1, 0)
	tr, br := math3d.V3(1, 1, 0), math3d.V3(1, -1, 0)
	r.FillTriangleFunc(bl, tl, tr, flat(ColorRed), 0)
	r.FillTriangleFunc(bl, tr, br, flat(ColorRed), 0)

	minP := r.Projector.ProjectVec2(tl)
	maxP := r.Projector.ProjectVec2(br)
	for y := range fb.Height {
		for x := range fb.Width {
			px, py := float64(x)+0.5, float64(y)+0.5
			if px > minP.X+0.01 && px < maxP.X-0.01 && py > minP.Y+0.01 && py < maxP.Y-0.01 {
				if fb.GetPixel(x, y) != ColorRed {
					t.Fatalf("gap at (%d,%d)", x, y)
				}
			}
		}
	}
}

func TestFillMeshShadesUntransformedPositions(t *testing.T) {
	verts := []math3d.Vec3{
		math3d.V3(-1, -1, 0), math3d.V3(0, 1, 0), math3d.V3(1, -1, 0),
	}
	faces := [][3]int{{0, 1, 2}, {0, 1, 9}, {-1, 0, 1}}
	transform := math3d.Translate(math3d.V3(0, 0, 1))

	fbMesh := NewFramebuffer(60, 60)
	rMesh := NewRasterizer(fbMesh)
	n := rMesh.FillMesh(verts, faces, transform, shader.Rocky, 1)
	if n == 0 {
		t.Fatal("FillMesh wrote nothing")
	}
	if rMesh.Stats.Submitted != 1 {
		t.Errorf("Submitted = %d, want 1 (bad faces skipped)", rMesh.Stats.Submitted)
	}

	fbTri := NewFramebuffer(60, 60)
	rTri := NewRasterizer(fbTri)
	rTri.FillTriangleSurface(
		transform.MulVec3(verts[0]), transform.MulVec3(verts[1]), transform.MulVec3(verts[2]),
		verts[0], verts[1], verts[2],
		shader.Rocky.Func(), 1,
	)
	for i := range fbMesh.Pixels {
		if fbMesh.Pixels[i] != fbTri.Pixels[i] {
			t.Fatalf("pixel %d differs: %v vs %v", i, fbMesh.Pixels[i], fbTri.Pixels[i])
		}
	}

	rMesh.ResetStats()
	if rMesh.Stats != (RasterStats{}) {
		t.Errorf("ResetStats left %+v", rMesh.Stats)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(200, 200)
	r := NewRasterizer(fb)
	v0, v1, v2 := frontTri(0, 1)

	for _, m := range shader.Materials() {
		b.Run(m.String(), func(b *testing.B) {
			for b.Loop() {
				fb.Clear()
				r.FillTriangle(v0, v1, v2, m, 0.5)
			}
		})
	}
}
