package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSourceIsDeterministic(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float(), b.Float())
	}
}

func TestZeroSeedDrawsRandom(t *testing.T) {
	s := NewSource(0)
	assert.NotZero(t, s.Seed)
}

func TestRangeBounds(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		v := s.Range(-3.0, 5.0)
		assert.GreaterOrEqual(t, v, -3.0)
		assert.Less(t, v, 5.0)
	}
	assert.Equal(t, 2.0, s.Range(2.0, 2.0))
	assert.Equal(t, 2.0, s.Range(2.0, 1.0))
}

func TestIntnGuards(t *testing.T) {
	s := NewSource(7)
	assert.Zero(t, s.Intn(0))
	assert.Zero(t, s.Intn(-5))
	for i := 0; i < 100; i++ {
		v := s.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
}

func TestOffsetWithinRadius(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 100; i++ {
		x, z := s.Offset(10.0)
		assert.GreaterOrEqual(t, x, -10.0)
		assert.Less(t, x, 10.0)
		assert.GreaterOrEqual(t, z, -10.0)
		assert.Less(t, z, 10.0)
	}
}

func TestForkIndependence(t *testing.T) {
	parent := NewSource(42)
	childA := parent.Fork(1)
	childB := parent.Fork(2)

	assert.NotEqual(t, childA.Seed, childB.Seed)

	// A fork with the same salt replays the same stream.
	replay := NewSource(42).Fork(1)
	for i := 0; i < 20; i++ {
		assert.Equal(t, childA.Float(), replay.Float())
	}
}
