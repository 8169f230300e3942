package shader

import (
	"image/color"
	"math"

	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/noise"
)

var (
	sunLight  = math3d.V3(0.5, 0.8, 0.3).Normalize()
	gasLight  = math3d.V3(0.5, 0.3, 0.8).Normalize()
	viewerDir = math3d.V3(0, 0, 1)
)

var (
	deepOcean    = color.RGBA{10, 50, 120, 255}
	shallowOcean = color.RGBA{40, 100, 180, 255}
	forest       = color.RGBA{34, 139, 34, 255}
	soil         = color.RGBA{139, 90, 43, 255}

	gasDark = color.RGBA{20, 40, 100, 255}
	gasLite = color.RGBA{100, 150, 220, 255}
	gasBand = color.RGBA{150, 180, 230, 255}

	crystalBase = color.RGBA{138, 43, 226, 255}
	crystalDeep = color.RGBA{75, 0, 130, 255}

	lavaRock   = color.RGBA{40, 20, 10, 255}
	lavaHot    = color.RGBA{255, 100, 0, 255}
	lavaBright = color.RGBA{255, 200, 50, 255}

	iceSurface = color.RGBA{200, 230, 255, 255}
	iceDeep    = color.RGBA{150, 180, 220, 255}
)

// RockyShader draws an earth-like world: oceans below a wavy waterline,
// noise-placed forest and soil above it, and drifting cloud cover.
func RockyShader(pos, normal math3d.Vec3, t float64) color.RGBA {
	waterline := -0.2 + math.Sin(pos.X*5)*0.1
	land := noise.Fractal(pos.X*3, pos.Z*3, 4)

	var base color.RGBA
	switch {
	case pos.Y < waterline:
		base = Lerp(deepOcean, shallowOcean, (pos.Y+1)/2)
	case land > 0.5:
		base = forest
	default:
		base = soil
	}

	var cloud float64
	if noise.Fractal(pos.X*8+t*0.1, pos.Z*8, 3) > 0.65 {
		cloud = 0.3
	}

	lit := Brighten(base, diffuse(normal, sunLight, 0)*0.7+0.3)
	return Blend(lit, white, cloud)
}

// GasShader draws a banded gas giant with a radial gradient and turbulence.
func GasShader(pos, normal math3d.Vec3, t float64) color.RGBA {
	radial := 1 - math.Min(pos.Len(), 1)
	bands := math.Sin((pos.Y+t*0.05)*10)*0.5 + 0.5
	turbulence := noise.Fractal(pos.X*5+t*0.02, pos.Y*8, 5)

	c := Lerp(gasDark, gasLite, radial)
	c = Lerp(c, gasBand, bands*0.4)
	c = Brighten(c, 1+turbulence*0.3)
	return Brighten(c, diffuse(normal, gasLight, 0.1)*0.8+0.2)
}

// CrystalShader draws faceted purple crystal lit by a light circling the
// Y axis, with sharp specular highlights.
func CrystalShader(pos, normal math3d.Vec3, t float64) color.RGBA {
	pattern := noise.CellPattern(pos.X*6, pos.Y*6, pos.Z*6)
	light := math3d.V3(math.Cos(t*0.3), 0.5, math.Sin(t*0.3)).Normalize()

	c := Lerp(crystalDeep, crystalBase, pattern)
	c = Brighten(c, diffuse(normal, light, 0)*0.6+0.4)
	return Blend(c, white, specular(normal, light, viewerDir, 32)*0.8)
}

// LavaShader draws flowing lava with glowing cracks and a heat pulse.
func LavaShader(pos, normal math3d.Vec3, t float64) color.RGBA {
	flow := noise.Fractal(pos.X*4+t*0.2, pos.Z*4+t*0.15, 4)
	crack := math.Abs(math.Sin(pos.X*20)*math.Cos(pos.Z*20)) < 0.1
	pulse := (math.Sin(t*2)*0.5 + 0.5) * 0.3

	var c color.RGBA
	switch {
	case crack:
		c = lavaBright
	case flow > 0.4:
		c = Lerp(lavaHot, lavaBright, (flow-0.4)/0.6)
	default:
		c = Lerp(lavaRock, lavaHot, flow/0.4)
	}

	c = Brighten(c, 1+pulse)
	return Brighten(c, diffuse(normal, sunLight, 0.3))
}

// IceShader draws pale ice graded by height with darker crack lines and
// a specular glint.
func IceShader(pos, normal math3d.Vec3, _ float64) color.RGBA {
	c := Lerp(iceDeep, iceSurface, (pos.Y+1)/2)
	if noise.Fractal(pos.X*12, pos.Z*12, 3) > 0.7 {
		c = Brighten(c, 0.7)
	}
	c = Blend(c, white, specular(normal, sunLight, viewerDir, 16)*0.6)
	return Brighten(c, diffuse(normal, sunLight, 0.2))
}
