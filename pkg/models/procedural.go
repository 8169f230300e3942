package models

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
)

// GenerateSphere builds a latitude/longitude sphere with the given number of
// segments around and from pole to pole (minimum 3). The seam and pole
// vertices are duplicated; the poles carry degenerate slivers, which the
// rasterizer rejects.
func GenerateSphere(radius float64, segments int) *Mesh {
	segments = max(segments, 3)
	mesh := NewMesh("sphere")
	mesh.Vertices = make([]math3d.Vec3, 0, (segments+1)*(segments+1))
	mesh.Faces = make([][3]int, 0, 2*segments*segments)

	for lat := 0; lat <= segments; lat++ {
		theta := float64(lat) * math.Pi / float64(segments)
		sinT, cosT := math.Sincos(theta)
		for lon := 0; lon <= segments; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(segments)
			sinP, cosP := math.Sincos(phi)
			mesh.Vertices = append(mesh.Vertices, math3d.V3(
				radius*sinT*cosP,
				radius*cosT,
				radius*sinT*sinP,
			))
		}
	}

	stride := segments + 1
	for lat := range segments {
		for lon := range segments {
			cur := lat*stride + lon
			next := cur + stride
			mesh.Faces = append(mesh.Faces,
				[3]int{cur, cur + 1, next},
				[3]int{cur + 1, next + 1, next},
			)
		}
	}

	mesh.CalculateBounds()
	return mesh
}

// GenerateRings builds a flat annulus in the XZ plane between the inner and
// outer radius. Every quad is emitted with both windings so the ring is
// visible from above and below.
func GenerateRings(inner, outer float64, segments int) *Mesh {
	segments = max(segments, 3)
	mesh := NewMesh("rings")
	mesh.Vertices = make([]math3d.Vec3, 0, 2*(segments+1))
	mesh.Faces = make([][3]int, 0, 4*segments)

	for _, r := range [2]float64{inner, outer} {
		for i := 0; i <= segments; i++ {
			sin, cos := math.Sincos(float64(i) * 2 * math.Pi / float64(segments))
			mesh.Vertices = append(mesh.Vertices, math3d.V3(r*cos, 0, r*sin))
		}
	}

	stride := segments + 1
	for i := range segments {
		in, inNext := i, i+1
		out, outNext := i+stride, i+1+stride
		mesh.Faces = append(mesh.Faces,
			[3]int{in, out, inNext},
			[3]int{inNext, out, outNext},
			[3]int{in, inNext, out},
			[3]int{inNext, outNext, out},
		)
	}

	mesh.CalculateBounds()
	return mesh
}
