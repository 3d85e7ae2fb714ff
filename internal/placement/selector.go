package placement

import (
	"math/rand/v2"
	"slices"
)

// Rand is the random source used for picks, yaw and scale draws and scatter
// offsets. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float32() float32
}

// NewRand returns a reproducible PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SpawnSelector picks the next palette index to place, never returning the
// same index twice in a row while more than one is eligible.
type SpawnSelector struct {
	rng  Rand
	last int
}

func NewSpawnSelector(rng Rand) *SpawnSelector {
	return &SpawnSelector{rng: rng, last: -1}
}

// Current is the index the next placement uses, or -1.
func (s *SpawnSelector) Current() int {
	return s.last
}

// Reselect draws a new current index from eligible.
func (s *SpawnSelector) Reselect(eligible []int) int {
	switch len(eligible) {
	case 0:
		s.last = -1
		return s.last
	case 1:
		s.last = eligible[0]
		return s.last
	}

	maxDraws := 4*len(eligible) + 8
	for range maxDraws {
		pick := eligible[s.rng.IntN(len(eligible))]
		if pick != s.last {
			s.last = pick
			return pick
		}
	}

	// The source kept repeating itself; step to the neighbour instead.
	next := slices.Index(eligible, s.last) + 1
	s.last = eligible[next%len(eligible)]
	return s.last
}
