package process

// Interleave writes the current block into dst as frame-major samples
// (L R L R ...) and returns the number of samples written. Writing stops at
// the last whole frame that fits in dst.
func (c *Context) Interleave(dst []float32) int {
	channels := len(c.Output)
	if channels == 0 {
		return 0
	}

	frames := c.frames
	if fit := len(dst) / channels; frames > fit {
		frames = fit
	}

	n := 0
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[n] = c.Output[ch][i]
			n++
		}
	}
	return n
}
