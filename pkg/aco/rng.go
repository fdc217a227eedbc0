package aco

import "math/rand/v2"

// maxDrawnSeed keeps drawn seeds exactly representable as JSON numbers.
const maxDrawnSeed = 1<<53 - 1

// newRNG returns the random stream for one run together with the seed that
// produced it. seed==0 draws a fresh seed in [1, 2^53) so unseeded runs
// differ; the drawn value is returned so the run can be replayed.
//
// *rand.Rand is not goroutine-safe; a run uses its stream from a single
// goroutine.
func newRNG(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = rand.Uint64N(maxDrawnSeed) + 1
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef)), seed
}
