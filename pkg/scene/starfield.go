package scene

import (
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/render"
)

// DefaultStars is the number of stars in a default starfield.
const DefaultStars = 500

// goldenAngle in radians (137.5°).
const goldenAngle = 137.5 * math.Pi / 180

// Star is a fixed point on the sky.
type Star struct {
	Dir          math3d.Vec3 // unit direction from the viewer
	Distance     float64
	Brightness   float64
	FlickerSpeed float64
	Size         float64
}

// Starfield is a sky of flickering stars at infinity. Stars move with the
// camera's rotation but not its position.
type Starfield struct {
	Stars []Star
}

// NewStarfield spreads n stars evenly over the sphere on a golden-angle
// spiral. Brightness, flicker speed and size cycle with the star index.
func NewStarfield(n int) *Starfield {
	n = max(n, 0)
	stars := make([]Star, n)
	for i := range stars {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(max(0, 1-y*y))
		sin, cos := math.Sincos(float64(i) * goldenAngle)
		stars[i] = Star{
			Dir:          math3d.V3(r*cos, y, r*sin),
			Distance:     100 + float64(i%50),
			Brightness:   0.3 + float64(i%7)*0.1,
			FlickerSpeed: 0.5 + float64(i%5)*0.2,
			Size:         0.5 + float64(i%3)*0.3,
		}
	}
	return &Starfield{Stars: stars}
}

// Flicker returns the brightness of s at time t.
func (s Star) Flicker(t float64) float64 {
	return s.Brightness * (math.Sin(t*s.FlickerSpeed)*0.3 + 0.7)
}

// starColor tints a star by brightness: bright stars are white, dimmer
// ones shift to blue. The tint is scaled by brightness and kept opaque.
func starColor(b float64) render.Color {
	var base render.Color
	switch {
	case b > 0.8:
		base = render.RGB(255, 255, 255)
	case b > 0.6:
		base = render.RGB(200, 220, 255)
	default:
		base = render.RGB(150, 180, 220)
	}
	k := max(0, min(1, b))
	return render.RGB(
		uint8(float64(base.R)*k),
		uint8(float64(base.G)*k),
		uint8(float64(base.B)*k),
	)
}

// Draw plots every visible star at time t. Stars write color only and
// leave the depth buffer untouched.
func (sf *Starfield) Draw(fb *render.Framebuffer, cam *Camera, proj render.Projector, t float64) {
	for _, s := range sf.Stars {
		v := cam.DirToView(s.Dir.Scale(s.Distance))
		if v.Z <= 0 {
			continue
		}
		x, y, _ := proj.Project(v)
		if !(x >= 0 && x < float64(fb.Width) && y >= 0 && y < float64(fb.Height)) {
			continue
		}

		b := s.Flicker(t)
		c := starColor(b)
		cx, cy := int(x), int(y)
		radius := int(s.Size * b)
		if radius <= 0 {
			fb.SetPixelColor(cx, cy, c)
			continue
		}
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy <= radius*radius {
					fb.SetPixelColor(cx+dx, cy+dy, c)
				}
			}
		}
	}
}
