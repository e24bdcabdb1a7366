// Package randutil builds the explicit random sources handed to decks and
// workers. Nothing in this module shuffles with a process-wide generator.
package randutil

import (
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The same seed always yields the same sequence.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed when set, otherwise a seed derived from the clock.
func Seed(seed *int64, clock quartz.Clock) int64 {
	if seed != nil {
		return *seed
	}
	return clock.Now().UnixNano()
}

// Derive returns the n-th child seed of parent. Workers use it to get
// independent, reproducible streams without sharing a generator.
func Derive(parent int64, n int) int64 {
	return int64(mix(uint64(parent) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
