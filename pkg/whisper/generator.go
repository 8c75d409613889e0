package whisper

import (
	"github.com/justyntemme/whisper/pkg/dsp/noise"
)

// Generator renders gated white noise.
type Generator struct {
	noise *noise.White
}

// NewGenerator creates a generator with its own random source.
func NewGenerator() *Generator {
	return &Generator{noise: noise.NewWhite()}
}

// NewGeneratorSeeded creates a generator with reproducible output.
func NewGeneratorSeeded(seed1, seed2 uint64) *Generator {
	return &Generator{noise: noise.NewWhiteSeeded(seed1, seed2)}
}

// Render overwrites every sample of out. With no held notes the output is
// exact silence. Otherwise each sample is uniform noise in [-volume, volume],
// drawn independently per sample and channel in channel-major order. Volume
// is not clamped here.
func (g *Generator) Render(out [][]float32, held uint32, volume float32) {
	if held == 0 || volume == 0 {
		for ch := range out {
			clear(out[ch])
		}
		return
	}

	for ch := range out {
		g.noise.Fill(out[ch], volume)
	}
}
