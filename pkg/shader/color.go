package shader

import (
	"image/color"
	"math"
)

var (
	white   = color.RGBA{255, 255, 255, 255}
	magenta = color.RGBA{255, 0, 255, 255}
)

// channel converts a float channel value to a byte, truncating toward zero.
// NaN maps to 0 and values are clamped to [0, 255].
func channel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// unit clamps t to [0, 1], mapping NaN to 0.
func unit(t float64) float64 {
	switch {
	case !(t > 0):
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Lerp interpolates from a to b by t clamped to [0, 1]. The result is opaque.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = unit(t)
	return color.RGBA{
		R: channel(float64(a.R)*(1-t) + float64(b.R)*t),
		G: channel(float64(a.G)*(1-t) + float64(b.G)*t),
		B: channel(float64(a.B)*(1-t) + float64(b.B)*t),
		A: 255,
	}
}

// Brighten scales the RGB channels of c by k, saturating at 255.
// Alpha is preserved.
func Brighten(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: channel(float64(c.R) * k),
		G: channel(float64(c.G) * k),
		B: channel(float64(c.B) * k),
		A: c.A,
	}
}

// Blend composites top over base with the given alpha clamped to [0, 1].
// The result is opaque.
func Blend(base, top color.RGBA, alpha float64) color.RGBA {
	return Lerp(base, top, alpha)
}

// diffuse is the Lambert term n·l, never below floor.
func diffuse(n, l vec, floor float64) float64 {
	d := n.Dot(l)
	if !(d > floor) {
		return floor
	}
	return d
}

// specular is the Phong term max(0, view·reflect(-l, n))^exp.
func specular(n, l, view vec, exp float64) float64 {
	r := l.Negate().Reflect(n)
	s := view.Dot(r)
	if !(s > 0) {
		return 0
	}
	return math.Pow(s, exp)
}
