package systems

import (
	"github.com/ojrac/opensimplex-go"
)

// NoiseSampler returns coherent noise in [-1, 1] for 2D coordinates.
type NoiseSampler interface {
	Noise2D(x, y float64) float64
}

// FractalNoise sums octaves of OpenSimplex noise (fBm).
// With a single octave it is plain simplex noise.
type FractalNoise struct {
	base       opensimplex.Noise
	octaves    int
	lacunarity float64
	gain       float64
	norm       float64 // 1 / sum of octave amplitudes
}

// NewFractalNoise creates a seeded fractal noise generator.
func NewFractalNoise(seed int64, octaves int, lacunarity, gain float64) *FractalNoise {
	if octaves < 1 {
		octaves = 1
	}
	if lacunarity <= 0 {
		lacunarity = 2
	}
	if gain <= 0 {
		gain = 0.5
	}

	var ampSum float64
	amp := 1.0
	for i := 0; i < octaves; i++ {
		ampSum += amp
		amp *= gain
	}

	return &FractalNoise{
		base:       opensimplex.New(seed),
		octaves:    octaves,
		lacunarity: lacunarity,
		gain:       gain,
		norm:       1 / ampSum,
	}
}

// Noise2D returns a noise value for 2D coordinates.
func (n *FractalNoise) Noise2D(x, y float64) float64 {
	var sum float64
	amp, freq := 1.0, 1.0
	for i := 0; i < n.octaves; i++ {
		sum += amp * n.base.Eval2(x*freq, y*freq)
		amp *= n.gain
		freq *= n.lacunarity
	}
	v := sum * n.norm
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
