package solver

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand builds a deterministic PRNG of the kind the solver owns. A zero
// seed means "draw one from entropy"; the effective seed is returned so a
// run can be replayed.
func NewRand(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = entropySeed()
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}

func entropySeed() uint64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic("cannot read entropy: " + err.Error())
	}
	seed := binary.LittleEndian.Uint64(buf[:])
	if seed == 0 {
		seed = 1
	}
	return seed
}
