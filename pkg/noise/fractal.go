package noise

// Fractal sums octaves of ValueNoise2D, doubling the frequency and halving
// the amplitude each step, and normalizes the result into [0, 1].
// A non-positive octave count yields the midpoint 0.5.
func Fractal(x, y float64, octaves int) float64 {
	if octaves < 1 {
		return 0.5
	}

	var value, total float64
	amplitude, frequency := 1.0, 1.0
	for range octaves {
		value += ValueNoise2D(x*frequency, y*frequency) * amplitude
		total += amplitude
		amplitude *= 0.5
		frequency *= 2
	}

	return (value/total + 1) / 2
}
