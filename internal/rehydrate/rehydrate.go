// Package rehydrate implements the seeded, indexed sub-stream draw
// provider described in spec.md §4.1. Every draw is a pure function of
// (root seed, index): two calls with the same index, from the same root
// seed, always return the same value, regardless of what other indices
// have been drawn in between. This lets disjoint generator branches pull
// independent randomness without having to agree on draw order — the
// property spec.md §9 calls out as load-bearing for cross-seed
// reproducibility.
package rehydrate

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rehydrator is a deterministic sub-stream provider seeded by a single
// 32-bit root seed.
type Rehydrator struct {
	root uint32
}

// New returns a Rehydrator for the given root seed.
func New(root uint32) *Rehydrator {
	return &Rehydrator{root: root}
}

// RootSeed returns the root seed this Rehydrator was constructed with.
func (r *Rehydrator) RootSeed() uint32 { return r.root }

// streamSeed combines the root seed and draw index into a single 64-bit
// seed for a fresh per-call PRNG. Uses the splitmix64 finalizer (a
// well-known integer hash) so nearby indices don't produce correlated
// streams.
func streamSeed(root uint32, index int) int64 {
	x := uint64(root)<<32 ^ uint64(uint32(index))*0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return int64(x)
}

// rngAt returns a freshly seeded PRNG for the given draw index. Callers
// that need more than one random value for a single logical draw (e.g. a
// Box-Muller pair) should call this once and consume from the returned
// source, rather than calling NextU32 etc. repeatedly at the same index.
func (r *Rehydrator) rngAt(index int) *rand.Rand {
	return rand.New(rand.NewSource(streamSeed(r.root, index)))
}

// NextU32 returns a deterministic uint32 for the given index.
func (r *Rehydrator) NextU32(index int) uint32 {
	return uint32(r.rngAt(index).Uint64())
}

// NextDouble returns a deterministic float64 in [lo, hi) for the given
// index.
func (r *Rehydrator) NextDouble(index int, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.rngAt(index).Float64()*(hi-lo)
}

// NextNumber is an alias for NextDouble kept to mirror spec.md's
// vocabulary (next_number); some callers read more naturally with a
// domain-specific name even though the implementation is identical.
func (r *Rehydrator) NextNumber(index int, lo, hi float64) float64 {
	return r.NextDouble(index, lo, hi)
}

// NextBool returns a deterministic coin flip for the given index.
func (r *Rehydrator) NextBool(index int) bool {
	return r.rngAt(index).Float64() < 0.5
}

// NextDecimal returns a deterministic float64 in [lo, hi], defaulting to
// [0, 1] when both bounds are zero — the "next_decimal(i, lo=0, hi=1)"
// signature from spec.md §4.1. Proportion bookkeeping (constituent sums)
// renormalizes explicitly after combining several decimal draws; see
// material.Layer.Normalize. No arbitrary-precision decimal type is used here —
// see DESIGN.md for why float64 + explicit renormalization was chosen
// over a third-party decimal library.
func (r *Rehydrator) NextDecimal(index int, lo, hi float64) float64 {
	if lo == 0 && hi == 0 {
		hi = 1
	}
	return r.NextDouble(index, lo, hi)
}

// NormalSample draws from Normal(mu, sigma) at the given index, optionally
// floored at min (when min is non-nil, the sampled value is clamped so it
// never falls below it — used for physical quantities like density that
// cannot be negative or unrealistically small).
func (r *Rehydrator) NormalSample(index int, mu, sigma float64, min *float64) float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: r.rngAt(index)}
	v := dist.Rand()
	if min != nil && v < *min {
		v = *min
	}
	return v
}

// PositiveNormal draws from Normal(mu, sigma) and reflects the result
// about zero if negative, guaranteeing a positive value while preserving
// the distribution's magnitude — used for mass/density jitter where a
// negative draw would be physically meaningless.
func (r *Rehydrator) PositiveNormal(index int, mu, sigma float64) float64 {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: r.rngAt(index)}
	v := dist.Rand()
	if v < 0 {
		v = math.Abs(v)
	}
	return v
}
