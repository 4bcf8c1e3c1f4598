// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rng supplies the integrator's uniform random samples. Rather
// than one process-wide generator shared across pixels, every (pixel,
// sample index) pair gets its own PCG stream, derived deterministically
// from a caller-supplied seed and its coordinates. Because the stream a
// sample draws from depends only on its own identity, not on how many
// other samples happened to run before it in a given call, two renders
// are bit-for-bit identical whenever they cover the same (pixel, sample
// index) pairs, regardless of tile shape, call boundaries, or goroutine
// interleaving. This is what makes both the tile-independence and
// progressive-accumulation invariants hold: accumulating 2N samples in
// one call and accumulating N samples in each of two calls draw from the
// same 2N distinct streams either way.
package rng

import "math/rand/v2"

// Sampler draws the uniform [0,1) values the integrator and BSDFs consume.
type Sampler struct {
	r *rand.Rand
}

// NewSampler builds a sampler from an explicit 128-bit PCG seed (seed,
// stream). The core never seeds from wall-clock time on its own.
func NewSampler(seed, stream uint64) *Sampler {
	return &Sampler{r: rand.New(rand.NewPCG(seed, stream))}
}

// splitmix64 mixes an input into a well-distributed 64-bit value, used to
// fold a pixel coordinate and sample index into a single PCG stream
// identifier. Reference: Vigna's splitmix64 finalizer.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// PixelSampler derives the sampler that draws every random number consumed
// while tracing the sampleIndex-th path through pixel (px, py). seed is
// the scene-wide base seed (Options.Seed); sampleIndex is the running
// count of samples already accumulated into that pixel before this one,
// so progressive rendering (many small calls) and a single large call
// draw from exactly the same per-sample streams.
func PixelSampler(seed uint64, px, py, sampleIndex int) *Sampler {
	key := splitmix64(uint64(uint32(px)))
	key = splitmix64(key ^ uint64(uint32(py)))
	key = splitmix64(key ^ uint64(uint32(sampleIndex)))
	return NewSampler(seed, key)
}

// Float64 returns a uniform sample in [0, 1).
func (s *Sampler) Float64() float64 { return s.r.Float64() }

// Next2 draws two independent uniform samples, the common case for
// hemisphere and disk sampling.
func (s *Sampler) Next2() (float64, float64) {
	return s.r.Float64(), s.r.Float64()
}

// Next3 draws three independent uniform samples, the BSDF.Sample shape.
func (s *Sampler) Next3() (float64, float64, float64) {
	return s.r.Float64(), s.r.Float64(), s.r.Float64()
}
