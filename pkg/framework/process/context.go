// Package process provides the per-block audio context used by instrument
// drivers.
package process

import (
	"github.com/justyntemme/whisper/pkg/midi"
)

// Context provides a clean API for audio processing with zero allocations
type Context struct {
	Output     [][]float32
	SampleRate float64

	// Pre-allocated channel storage; Output is resliced from it per block
	storage [][]float32
	frames  int

	// Pre-allocated event storage for the current block
	events []midi.Message
}

// NewContext creates a new process context with pre-allocated buffers for
// numChannels outputs of up to maxBlockSize frames and maxEvents events.
func NewContext(numChannels, maxBlockSize, maxEvents int) *Context {
	if numChannels < 0 {
		numChannels = 0
	}
	if maxBlockSize < 0 {
		maxBlockSize = 0
	}
	if maxEvents < 0 {
		maxEvents = 0
	}

	backing := make([]float32, numChannels*maxBlockSize)
	storage := make([][]float32, numChannels)
	for ch := range storage {
		storage[ch] = backing[ch*maxBlockSize : (ch+1)*maxBlockSize : (ch+1)*maxBlockSize]
	}

	c := &Context{
		storage: storage,
		Output:  make([][]float32, numChannels),
		events:  make([]midi.Message, 0, maxEvents),
	}
	c.Frames(maxBlockSize)
	return c
}

// Frames sizes the output view to n frames, capped at the block size the
// context was created with. It returns the resulting frame count.
func (c *Context) Frames(n int) int {
	if n < 0 {
		n = 0
	}
	if n > c.MaxFrames() {
		n = c.MaxFrames()
	}
	for ch := range c.storage {
		c.Output[ch] = c.storage[ch][:n]
	}
	c.frames = n
	return n
}

// MaxFrames returns the largest block the context can hold.
func (c *Context) MaxFrames() int {
	if len(c.storage) == 0 {
		return c.frames
	}
	return cap(c.storage[0])
}

// NumFrames returns the number of frames in the current block
func (c *Context) NumFrames() int {
	return c.frames
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// InputEvents returns the events queued for the current block. The slice is
// only valid until ClearInputEvents.
func (c *Context) InputEvents() []midi.Message {
	return c.events
}

// ClearInputEvents drops all queued events
func (c *Context) ClearInputEvents() {
	c.events = c.events[:0]
}

// EventBuffer exposes the free event storage so a producer can fill it
// directly, then commit with CommitInputEvents.
func (c *Context) EventBuffer() []midi.Message {
	return c.events[len(c.events):cap(c.events)]
}

// CommitInputEvents marks n messages written into EventBuffer as queued.
func (c *Context) CommitInputEvents(n int) {
	if n <= 0 {
		return
	}
	if free := cap(c.events) - len(c.events); n > free {
		n = free
	}
	c.events = c.events[:len(c.events)+n]
}
