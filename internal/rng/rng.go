// internal/rng/rng.go
//
// Deterministic pseudo-random values for daily puzzle selection.
// Same seed in, same permutation out, on every platform and every run;
// this is what makes the daily triple identical across devices. Nothing
// here may fall back to math/rand's seeded-by-time source.

package rng

import "math"

// Seeded returns a deterministic value in [0,1) derived purely from seed.
// The construction (fractional part of sin(seed)*10000) matches the web
// client, so both sides agree on the daily shuffle.
func Seeded(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}

// Shuffle returns a Fisher–Yates-shuffled copy of items. The draw at step i
// is seeded with seed+i, so the whole permutation is a pure function of
// (items, seed). The input slice is not modified.
func Shuffle[T any](items []T, seed float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(Seeded(seed+float64(i)) * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
