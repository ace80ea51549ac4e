// Package entropy provides the injectable randomness source behind every
// stochastic AI decision. Matches are reproducible when seeded; an unseeded
// source draws its seed from crypto/rand.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
)

// Source is a seeded random stream. All decision-engine randomness goes
// through one Source so a match replays deterministically from its seed.
type Source struct {
	Seed int64
	rng  *mathrand.Rand
}

// NewSource creates a source from a seed. Seed 0 draws a random seed from
// crypto/rand.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{Seed: seed, rng: mathrand.New(mathrand.NewSource(seed))}
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 { return s.rng.Float64() }

// Range returns a random float64 in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// Intn returns a random int in [0, n). n <= 0 returns 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Offset returns a random (x, z) displacement with each component in
// [-radius, radius). Used for build-site and patrol scatter.
func (s *Source) Offset(radius float64) (x, z float64) {
	return s.Range(-radius, radius), s.Range(-radius, radius)
}

// Angle returns a random heading in [0, 2π).
func (s *Source) Angle() float64 { return s.rng.Float64() * 2 * math.Pi }

// Fork derives an independent stream for a subsystem so that one consumer's
// draw count does not perturb another's sequence.
func (s *Source) Fork(salt int64) *Source {
	return NewSource(s.Seed ^ int64(uint64(salt)*0x9e3779b97f4a7c15))
}

// cryptoSeed generates a seed from crypto/rand.
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; a fixed seed is a safe default.
		return 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
