package layout

import "math/rand/v2"

// NumBuckets is the number of quantization levels used for both heights and
// cut angles.
const NumBuckets = 4

// Source is the randomness consumed by Generate. *rand.Rand satisfies it.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
}

// NewSource returns a seeded PCG source so that a layout can be reproduced.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// BucketValue maps bucket k of r to r.Min + k/NumBuckets * span.
func BucketValue(r Range, k int) float64 {
	return r.Min + float64(k)/NumBuckets*r.Span()
}

// sampleBucket draws a bucket uniformly and resolves it against r.
func sampleBucket(src Source, r Range) (int, float64) {
	k := src.IntN(NumBuckets)
	return k, BucketValue(r, k)
}
