package render

import (
	"math"
	"testing"

	"github.com/taigrr/orrery/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Plane at Z=0, normal pointing +Z
	plane := Plane{Normal: math3d.V3(0, 0, 1), D: 0}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"origin", math3d.V3(0, 0, 0), 0},
		{"in front", math3d.V3(0, 0, 5), 5},
		{"behind", math3d.V3(0, 0, -3), -3},
		{"offset XY", math3d.V3(10, -5, 2), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 || math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}

	zero := Plane{D: 7}
	zero.Normalize()
	if zero.D != 7 {
		t.Errorf("zero normal changed D to %v", zero.D)
	}
}

func TestAABBBasics(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -2, -3), math3d.V3(1, 2, 3))

	if c := box.Center(); c != math3d.Zero3() {
		t.Errorf("center = %v, want (0, 0, 0)", c)
	}
	if s := box.Size(); s != math3d.V3(2, 4, 6) {
		t.Errorf("size = %v, want (2, 4, 6)", s)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(0, 0, 0), math3d.V3(10, 10, 10))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(5, 5, 5), true},
		{"corner min", math3d.V3(0, 0, 0), true},
		{"corner max", math3d.V3(10, 10, 10), true},
		{"edge", math3d.V3(5, 0, 5), true},
		{"outside X", math3d.V3(11, 5, 5), false},
		{"outside Y", math3d.V3(5, -1, 5), false},
		{"outside Z", math3d.V3(5, 5, 15), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		got := box.Transform(math3d.Translate(math3d.V3(10, 20, 30)))
		if got.Min != math3d.V3(9, 19, 29) || got.Max != math3d.V3(11, 21, 31) {
			t.Errorf("translated = %v, want (9,19,29)-(11,21,31)", got)
		}
	})

	t.Run("scale", func(t *testing.T) {
		got := box.Transform(math3d.ScaleUniform(2.0))
		if got.Min != math3d.V3(-2, -2, -2) || got.Max != math3d.V3(2, 2, 2) {
			t.Errorf("scaled = %v, want (-2,-2,-2)-(2,2,2)", got)
		}
	})

	t.Run("rotation grows the box", func(t *testing.T) {
		got := box.Transform(math3d.RotateY(math.Pi / 4))
		want := math.Sqrt2
		if math.Abs(got.Max.X-want) > 1e-9 || math.Abs(got.Max.Z-want) > 1e-9 {
			t.Errorf("rotated max = %v, want x and z = √2", got.Max)
		}
		if math.Abs(got.Max.Y-1) > 1e-9 {
			t.Errorf("rotated max Y = %v, want 1", got.Max.Y)
		}
	})
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := NewProjector(80, 40).Frustum(0.05)
	for i, plane := range f.Planes {
		if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-9 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	narrow := NewProjector(80, 40)
	narrow.Scale = 2

	tests := []struct {
		name     string
		proj     Projector
		point    math3d.Vec3
		expected bool
	}{
		{"origin", NewProjector(80, 40), math3d.V3(0, 0, 0), true},
		{"far ahead", NewProjector(80, 40), math3d.V3(0, 0, 1000), true},
		{"at the viewer", NewProjector(80, 40), math3d.V3(0, 0, -3), false},
		{"behind the viewer", NewProjector(80, 40), math3d.V3(0, 0, -10), false},
		{"inside right edge", NewProjector(80, 40), math3d.V3(3.9, 0, 1), true},
		{"past right edge", NewProjector(80, 40), math3d.V3(10, 0, 1), false},
		{"past left edge", NewProjector(80, 40), math3d.V3(-4.1, 0, 1), false},
		{"below bottom edge", NewProjector(80, 40), math3d.V3(0, -5, 1), false},
		{"above top edge", NewProjector(80, 40), math3d.V3(0, 5, 1), false},
		{"narrow fov clips", narrow, math3d.V3(3.9, 0, 1), false},
		{"narrow fov keeps centre", narrow, math3d.V3(1.9, 0, 1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.proj.Frustum(0.05)
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

// Points inside the frustum must project inside the viewport and vice versa.
func TestFrustumMatchesProjection(t *testing.T) {
	p := NewProjector(64, 48)
	p.Scale = ScaleForFOV(math.Pi / 3)
	f := p.Frustum(0.05)

	for x := -6.0; x <= 6; x += 0.7 {
		for y := -6.0; y <= 6; y += 0.7 {
			for z := -1.0; z <= 8; z += 0.9 {
				v := math3d.V3(x, y, z)
				px, py, _ := p.Project(v)
				onScreen := p.InFront(v) && px >= 0 && px <= p.Width && py >= 0 && py <= p.Height
				if got := f.ContainsPoint(v); got != onScreen {
					t.Fatalf("ContainsPoint(%v) = %v, projected (%.3f, %.3f) onScreen %v", v, got, px, py, onScreen)
				}
			}
		}
	}
}

func TestFrustumIntersectAABB(t *testing.T) {
	f := NewProjector(80, 40).Frustum(0.05)

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"fully inside", NewAABB(math3d.V3(-1, -1, 2), math3d.V3(1, 1, 4)), true},
		{"straddles the viewer", NewAABB(math3d.V3(-1, -1, -5), math3d.V3(1, 1, 5)), true},
		{"behind the viewer", NewAABB(math3d.V3(-1, -1, -10), math3d.V3(1, 1, -4)), false},
		{"far to the right", NewAABB(math3d.V3(20, -1, 0), math3d.V3(22, 1, 1)), false},
		{"far below", NewAABB(math3d.V3(-1, -30, 0), math3d.V3(1, -20, 1)), false},
		{"huge box", NewAABB(math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := NewProjector(80, 40).Frustum(0.05)

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"inside", math3d.V3(0, 0, 10), 1, true},
		{"around the viewer", math3d.V3(0, 0, -3), 1, true},
		{"behind", math3d.V3(0, 0, -10), 1, false},
		// Right plane distance is (-10+1+3)/√2 ≈ -4.24.
		{"grazing the right edge", math3d.V3(10, 0, 1), 5, true},
		{"off the right edge", math3d.V3(10, 0, 1), 4, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	f := NewProjector(160, 90).Frustum(0.05)
	box := NewAABB(math3d.V3(-1, -1, 5), math3d.V3(1, 1, 10))

	for b.Loop() {
		_ = f.IntersectAABB(box)
	}
}

func BenchmarkFrustumIntersectsSphere(b *testing.B) {
	f := NewProjector(160, 90).Frustum(0.05)
	center := math3d.V3(0, 0, 10)

	for b.Loop() {
		_ = f.IntersectsSphere(center, 2)
	}
}

func BenchmarkAABBTransform(b *testing.B) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))
	trans := math3d.Translate(math3d.V3(10, 0, 0)).Mul(math3d.RotateY(0.5))

	for b.Loop() {
		_ = box.Transform(trans)
	}
}
