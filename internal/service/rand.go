package service

import (
	"math/rand/v2"
	"time"
)

// Intner draws a uniform integer in [0, n).
type Intner interface {
	IntN(n int) int
}

// RandSource hands out the randomness used by one question selection.
type RandSource func() Intner

// NewRandSource returns a time-seeded source, or a fixed-seed one when seed is non-zero.
func NewRandSource(seed int64) RandSource {
	if seed != 0 {
		return func() Intner {
			return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
	return func() Intner {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1))
	}
}
