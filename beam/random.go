package beam

import (
	"math/rand/v2"
)

// Source supplies uniform values in [0, 1)
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG source
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
