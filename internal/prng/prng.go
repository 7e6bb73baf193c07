// Package prng provides a small seeded xorshift64* source used for procedural
// generation. It is a deterministic scatter function, not a cryptographic
// generator: identical seeds must yield identical streams across builds, which
// math/rand does not guarantee between Go versions.
package prng

const seedMix = 0x9E3779B97F4A7C15

// Source is a seeded xorshift64* stream.
type Source struct {
	state uint64
}

// NewSource returns a source for the given seed. A zero seed is remapped,
// xorshift has no zero state.
func NewSource(seed int64) *Source {
	s := uint64(seed)
	if s == 0 {
		s = seedMix
	}
	// one mixing round so nearby seeds diverge immediately
	s ^= s >> 30
	s *= 0xBF58476D1CE4E5B9
	s ^= s >> 27
	return &Source{state: s}
}

// Uint64 advances the stream.
func (s *Source) Uint64() uint64 {
	x := s.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	s.state = x
	return x * 0x2545F4914F6CDD1D
}

// Float64 returns a value in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint64()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Uint64() % uint64(n))
}

// IntBetween returns a value in [lo, hi] inclusive.
func (s *Source) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.Intn(hi-lo+1)
}

// FloatBetween returns a value in [lo, hi).
func (s *Source) FloatBetween(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Float64()*(hi-lo)
}
