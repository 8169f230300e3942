package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/shader"
)

// System is a set of bodies advanced together. Parents must appear before
// their children in Bodies.
type System struct {
	Bodies []*Body
	Time   float64
	// Paused stops orbits and spin; Time keeps running so shaders animate.
	Paused bool
}

// NewSystem returns a system of the given bodies with positions computed for
// their initial angles.
func NewSystem(bodies ...*Body) *System {
	s := &System{Bodies: bodies}
	for _, b := range bodies {
		b.Update(0)
	}
	return s
}

// NewSolarSystem builds the ten-body system: a lava star, five rocky or
// molten inner worlds, two ringed gas giants and two ice giants.
func NewSolarSystem() *System {
	ring := func() *Ring {
		return &Ring{Inner: 1.3, Outer: 2.2, Segments: 32, Tilt: 0.4, SpinFactor: 0.5, Material: shader.Crystal}
	}
	planet := func(name string, kind Kind, m shader.Material, scale, radius, speed, spin, angle float64) *Body {
		return &Body{
			Name:        name,
			Kind:        kind,
			Material:    m,
			Scale:       scale,
			OrbitRadius: radius,
			OrbitSpeed:  speed,
			SpinSpeed:   spin,
			OrbitAngle:  angle * math.Pi,
		}
	}

	jupiter := planet("Jupiter Magnus", KindGasGiant, shader.Gas, 1.8, 32, 0.25, 0.04, 1.5)
	jupiter.Rings = ring()
	saturn := planet("Saturnus", KindGasGiant, shader.Gas, 1.5, 40, 0.2, 0.035, 1.8)
	saturn.Rings = ring()

	return NewSystem(
		planet("Sol Nebularis", KindStar, shader.Lava, 3, 0, 0, 0.02, 0),
		planet("Mercurio Primus", KindPlanet, shader.Rocky, 0.4, 8, 0.8, 0.04, 0),
		planet("Venusia", KindPlanet, shader.Lava, 0.7, 12, 0.6, 0.02, 0.3),
		planet("Terra Nova", KindPlanet, shader.Rocky, 0.8, 16, 0.5, 0.03, 0.6),
		planet("Marte Secundus", KindPlanet, shader.Rocky, 0.6, 20, 0.4, 0.035, 0.9),
		planet("Ceres Minor", KindDwarf, shader.Rocky, 0.2, 25, 0.3, 0.05, 1.2),
		jupiter,
		saturn,
		planet("Urania", KindIceGiant, shader.Ice, 1.2, 48, 0.15, 0.025, 2.1),
		planet("Neptunus", KindIceGiant, shader.Ice, 1.2, 56, 0.12, 0.03, 2.4),
	)
}

// ShowcaseNames are the display names of the showcase planets, indexed by
// material.
var ShowcaseNames = [...]string{
	shader.Rocky:   "Steinbruch",
	shader.Gas:     "Ätherblase",
	shader.Crystal: "Kristallschloss",
	shader.Lava:    "Feuerglut",
	shader.Ice:     "Eispalast",
}

// NewShowcase builds a single planet at the origin shaded with m. A rocky
// planet gets an ice-shaded moon and a gas planet gets crystal rings.
func NewShowcase(m shader.Material) *System {
	name := "planet"
	if int(m) < len(ShowcaseNames) {
		name = ShowcaseNames[m]
	}
	planet := &Body{
		Name:      name,
		Kind:      KindPlanet,
		Material:  m,
		Scale:     1.5,
		SpinSpeed: 0.6,
	}
	bodies := []*Body{planet}

	switch m {
	case shader.Rocky:
		bodies = append(bodies, &Body{
			Name:        "moon",
			Kind:        KindMoon,
			Material:    shader.Ice,
			Scale:       0.36,
			OrbitRadius: 3.75,
			OrbitHeight: 0.75,
			OrbitSpeed:  1.2,
			SpinSpeed:   0.3,
			Parent:      planet,
		})
	case shader.Gas:
		planet.Kind = KindGasGiant
		planet.Rings = &Ring{Inner: 1.3, Outer: 2.0, Segments: 64, Tilt: 0.4, SpinFactor: 0.3, Material: shader.Crystal}
	}
	return NewSystem(bodies...)
}

// Update advances the system by dt seconds. Non-positive or non-finite
// steps are ignored.
func (s *System) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 1) {
		return
	}
	s.Time += dt
	if s.Paused {
		return
	}
	for _, b := range s.Bodies {
		b.Update(dt)
	}
}

// ScaleBy multiplies every body's size and orbit by f, keeping the layout.
func (s *System) ScaleBy(f float64) {
	if !(f > 0) || math.IsInf(f, 1) {
		return
	}
	for _, b := range s.Bodies {
		b.Scale *= f
		b.OrbitRadius *= f
		b.OrbitHeight *= f
		b.Update(0)
	}
}

// Find returns the body with the given name, or nil.
func (s *System) Find(name string) *Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Extent returns the radius of a sphere around the origin that contains
// every orbit and body.
func (s *System) Extent() float64 {
	var r float64
	for _, b := range s.Bodies {
		reach := b.Scale
		if b.Rings != nil {
			reach *= b.Rings.Outer
		}
		reach += b.OrbitRadius + math.Abs(b.OrbitHeight)
		if b.Parent != nil {
			reach += b.Parent.OrbitRadius
		}
		r = max(r, reach)
	}
	return r
}
