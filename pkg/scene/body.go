// Package scene holds the orbiting bodies, camera and per-frame drawing that
// sit on top of the rasterizer.
package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/shader"
)

// Kind classifies a body.
type Kind uint8

const (
	KindStar Kind = iota
	KindPlanet
	KindDwarf
	KindGasGiant
	KindIceGiant
	KindMoon
)

var kindNames = [...]string{
	KindStar:     "star",
	KindPlanet:   "planet",
	KindDwarf:    "dwarf planet",
	KindGasGiant: "gas giant",
	KindIceGiant: "ice giant",
	KindMoon:     "moon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Ring is a flat annulus drawn around a body.
type Ring struct {
	Inner, Outer float64 // radii in body units
	Segments     int
	Tilt         float64 // radians about X
	SpinFactor   float64 // fraction of the body's spin applied to the ring
	Material     shader.Material
}

// Body is one object in a System. Positions are in world units; a body
// with a Parent orbits the parent's position instead of the origin.
type Body struct {
	Name     string
	Kind     Kind
	Material shader.Material
	// Mesh is the model cache key; empty draws the built-in sphere.
	Mesh  string
	Scale float64
	Tilt  float64

	OrbitRadius float64
	OrbitSpeed  float64 // radians per second
	OrbitHeight float64 // Y offset above the parent
	SpinSpeed   float64 // radians per second

	OrbitAngle float64
	Spin       float64
	Position   math3d.Vec3

	Parent *Body
	Rings  *Ring
}

// Update advances the body by dt seconds.
func (b *Body) Update(dt float64) {
	b.OrbitAngle += b.OrbitSpeed * dt
	b.Spin += b.SpinSpeed * dt

	var center math3d.Vec3
	if b.Parent != nil {
		center = b.Parent.Position
	}
	sin, cos := math.Sincos(b.OrbitAngle)
	b.Position = center.Add(math3d.V3(b.OrbitRadius*cos, b.OrbitHeight, b.OrbitRadius*sin))
}

// Model returns the object-to-world transform of the body.
func (b *Body) Model() math3d.Mat4 {
	return math3d.TRS(b.Position, b.Spin, b.Tilt, b.Scale)
}

// RingModel returns the object-to-world transform of the body's rings.
// It is the identity when the body has none.
func (b *Body) RingModel() math3d.Mat4 {
	if b.Rings == nil {
		return math3d.Identity()
	}
	return math3d.TRS(b.Position, b.Spin*b.Rings.SpinFactor, b.Rings.Tilt, b.Scale)
}

// OrbitCenter returns the point the body orbits around.
func (b *Body) OrbitCenter() math3d.Vec3 {
	c := math3d.V3(0, b.OrbitHeight, 0)
	if b.Parent != nil {
		c = c.Add(b.Parent.Position)
	}
	return c
}
