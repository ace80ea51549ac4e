// Terrain height field built from layered simplex noise.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// HeightMap is a deterministic terrain surface derived from a seed. It
// implements Terrain.
type HeightMap struct {
	noise     opensimplex.Noise
	MaxHeight float64 // vertical scale of the surface
	Frequency float64 // horizontal noise frequency
}

// NewHeightMap creates a terrain surface for the given seed.
func NewHeightMap(seed int64) *HeightMap {
	return &HeightMap{
		noise:     opensimplex.NewNormalized(seed),
		MaxHeight: 12.0,
		Frequency: 0.015,
	}
}

// GroundHeightAt samples the surface height at (x, z).
// Multi-octave noise for natural-looking terrain.
func (h *HeightMap) GroundHeightAt(x, z float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := h.Frequency
	maxValue := 0.0

	for octave := 0; octave < 3; octave++ {
		total += h.noise.Eval2(x*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}

	return total / maxValue * h.MaxHeight
}

// SurfacePoint returns pos with its Y snapped to the terrain surface.
func (h *HeightMap) SurfacePoint(x, z float64) Vec3 {
	return Vec3{X: x, Y: h.GroundHeightAt(x, z), Z: z}
}
