package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightMapDeterministic(t *testing.T) {
	a := NewHeightMap(1234)
	b := NewHeightMap(1234)

	for _, p := range [][2]float64{{0, 0}, {55.5, -12.25}, {-190, 190}} {
		assert.Equal(t, a.GroundHeightAt(p[0], p[1]), b.GroundHeightAt(p[0], p[1]))
	}
}

func TestHeightMapWithinScale(t *testing.T) {
	h := NewHeightMap(99)
	for x := -200.0; x <= 200.0; x += 25.0 {
		for z := -200.0; z <= 200.0; z += 25.0 {
			y := h.GroundHeightAt(x, z)
			assert.GreaterOrEqual(t, y, 0.0)
			assert.LessOrEqual(t, y, h.MaxHeight)
		}
	}
}

func TestSurfacePoint(t *testing.T) {
	h := NewHeightMap(99)
	p := h.SurfacePoint(40, -30)

	assert.Equal(t, 40.0, p.X)
	assert.Equal(t, -30.0, p.Z)
	assert.Equal(t, h.GroundHeightAt(40, -30), p.Y)
}
