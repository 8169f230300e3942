package noise

import "math"

// CellPattern returns the distance from (x, y, z) to the nearest feature
// point, clamped to [0, 1]. Each lattice cell holds one feature point
// jittered inside it; the 3x3x3 block of cells around the sample is searched.
func CellPattern(x, y, z float64) float64 {
	cx, cy, cz := math.Floor(x), math.Floor(y), math.Floor(z)

	best := 1.0
	for dz := -1.0; dz <= 1; dz++ {
		for dy := -1.0; dy <= 1; dy++ {
			for dx := -1.0; dx <= 1; dx++ {
				nx, ny, nz := cx+dx, cy+dy, cz+dz

				// Rotating the arguments gives three independent jitters
				// from the one hash.
				px := nx + Hash3D(nx, ny, nz)
				py := ny + Hash3D(ny, nz, nx)
				pz := nz + Hash3D(nz, nx, ny)

				ddx, ddy, ddz := x-px, y-py, z-pz
				d := math.Sqrt(ddx*ddx + ddy*ddy + ddz*ddz)
				if d < best {
					best = d
				}
			}
		}
	}

	return best
}
