// Package noise provides pseudorandom signal sources.
package noise

import (
	"math/rand/v2"
)

// White generates uniform white noise. Each instance owns its random state,
// so it needs no locking but must only be used from one goroutine.
type White struct {
	rand *rand.Rand
}

// NewWhite creates a generator seeded from the runtime random source.
func NewWhite() *White {
	return NewWhiteSeeded(rand.Uint64(), rand.Uint64())
}

// NewWhiteSeeded creates a generator with a fixed seed for reproducible noise.
func NewWhiteSeeded(seed1, seed2 uint64) *White {
	return &White{rand: rand.New(rand.NewPCG(seed1, seed2))}
}

// Uniform returns a sample in [0, 1).
func (w *White) Uniform() float32 {
	return w.rand.Float32()
}

// Next returns a sample in [-1, 1).
func (w *White) Next() float32 {
	return (w.rand.Float32() - 0.5) * 2
}

// Fill overwrites buffer with noise scaled by gain. Each sample is drawn
// independently. Gain is applied as given, values above 1 are not clipped.
func (w *White) Fill(buffer []float32, gain float32) {
	for i := range buffer {
		buffer[i] = (w.rand.Float32() - 0.5) * 2 * gain
	}
}
