package util

import "math/rand"

// New returns a generator for the given seed. Seed 0 is remapped so a
// zero-valued flag still produces a fixed, replayable stream.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	src := rand.NewSource(seed)
	return rand.New(src)
}
