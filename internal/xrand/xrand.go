// Package xrand is the toolkit's random integer source, used by xselect to
// pick a uniformly random permutation for its nonblocking sweep (so that
// repeated selects over continuously-ready channels do not starve any one
// channel). No third-party RNG appears anywhere in the reference corpus this
// module was built from; math/rand/v2 is the ecosystem-standard choice for
// this kind of non-cryptographic shuffling.
package xrand

import "math/rand/v2"

// Permutation returns a uniformly random permutation of [0, n).
func Permutation(n int) []int {
	return rand.Perm(n)
}

// Intn returns a uniform random integer in [0, n). n must be positive.
func Intn(n int) int {
	return rand.IntN(n)
}
