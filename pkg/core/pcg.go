package core

import "math/rand"

// PCG32 is a 32-bit output permuted congruential generator (O'Neill, PCG
// family, XSH-RR variant). It implements rand.Source64 so it can be plugged
// directly into math/rand.New, giving every caller the familiar *rand.Rand
// API (Float64, Intn, ...) while keeping the actual bit-stream PCG-driven.
type PCG32 struct {
	state uint64
	inc   uint64 // must always be odd
}

const pcgMultiplier = 6364136223846793005

// NewPCG32 creates a generator seeded deterministically from seed and a
// stream selector. Two generators with the same seed and seq produce
// identical sequences; different seq values decorrelate parallel streams
// (e.g. one per render tile) sharing the same seed.
func NewPCG32(seed, seq uint64) *PCG32 {
	p := &PCG32{state: 0, inc: (seq << 1) | 1}
	p.step()
	p.state += seed
	p.step()
	return p
}

func (p *PCG32) step() {
	p.state = p.state*pcgMultiplier + p.inc
}

// Uint32 returns the next pseudo-random 32-bit output.
func (p *PCG32) Uint32() uint32 {
	oldState := p.state
	p.step()
	xorshifted := uint32(((oldState >> 18) ^ oldState) >> 27)
	rot := uint32(oldState >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint64 satisfies rand.Source64 by packing two 32-bit draws.
func (p *PCG32) Uint64() uint64 {
	hi := uint64(p.Uint32())
	lo := uint64(p.Uint32())
	return hi<<32 | lo
}

// Int63 satisfies rand.Source.
func (p *PCG32) Int63() int64 {
	return int64(p.Uint64() >> 1)
}

// Seed reseeds the generator, keeping its current stream selector.
func (p *PCG32) Seed(seed int64) {
	p.state = 0
	p.step()
	p.state += uint64(seed)
	p.step()
}

// NewRand builds a *rand.Rand backed by a PCG32 stream, seeded from a
// 64-bit seed and a stream id (typically derived from tile coordinates so
// that every worker owns a reproducible, decorrelated stream).
func NewRand(seed uint64, streamID int) *rand.Rand {
	return rand.New(NewPCG32(seed, uint64(streamID)))
}
