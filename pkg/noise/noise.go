// Package noise provides stateless lattice noise for procedural surfaces.
//
// Every function is a pure function of its inputs: there is no seed and no
// shared table, so concurrent callers see identical values.
package noise

import "math"

const (
	primeX int32 = 374761393
	primeY int32 = 668265263
	primeZ int32 = 1274126177
)

const invTwo32 = 1.0 / 4294967296.0

// cell floors v into a lattice coordinate. Values outside the int32 range
// saturate so that huge or non-finite inputs still hash deterministically.
func cell(v float64) int32 {
	f := math.Floor(v)
	switch {
	case f != f:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// finalize mixes the bits of h so neighboring lattice cells decorrelate.
func finalize(h int32) float64 {
	u := uint32(h)
	u ^= u >> 13
	u *= uint32(primeZ)
	u ^= u >> 16
	return float64(u) * invTwo32
}

// Hash2D maps the lattice cell containing (x, y) to a value in [0, 1).
func Hash2D(x, y float64) float64 {
	return finalize(cell(x)*primeX + cell(y)*primeY)
}

// Hash3D maps the lattice cell containing (x, y, z) to a value in [0, 1).
func Hash3D(x, y, z float64) float64 {
	return finalize(cell(x)*primeX + cell(y)*primeY + cell(z)*primeZ)
}

// ValueNoise2D returns the nearest-cell hash remapped to [-1, 1).
// The result is constant over each unit cell.
func ValueNoise2D(x, y float64) float64 {
	return Hash2D(x, y)*2 - 1
}

// SmoothNoise2D interpolates the four surrounding cell values with a
// smoothstep fade, giving continuous value noise in [-1, 1].
func SmoothNoise2D(x, y float64) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	u := fade(x - x0)
	v := fade(y - y0)

	a := ValueNoise2D(x0, y0)
	b := ValueNoise2D(x0+1, y0)
	c := ValueNoise2D(x0, y0+1)
	d := ValueNoise2D(x0+1, y0+1)

	return lerp(lerp(a, b, u), lerp(c, d, u), v)
}

func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
