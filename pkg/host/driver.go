package host

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/justyntemme/whisper/pkg/framework/debug"
	"github.com/justyntemme/whisper/pkg/framework/plugin"
	"github.com/justyntemme/whisper/pkg/framework/process"
	"github.com/justyntemme/whisper/pkg/midi"
)

// heldCounter is implemented by instruments that expose their held-note
// count to the audio thread.
type heldCounter interface {
	Held() uint32
}

// Driver turns an instrument into a pull source. Each Pull drains the
// event ring into the block's event storage, hands it to the instrument and
// renders one block. Pull is the audio thread; it must not be called
// concurrently with itself.
type Driver struct {
	inst     plugin.Instrument
	events   *midi.Ring
	ctx      *process.Context
	profiler *debug.AudioProcessProfiler
	counter  heldCounter

	held   atomic.Uint32
	blocks atomic.Uint64
}

// NewDriver creates a driver rendering channels outputs in blocks of at
// most blockSize frames.
func NewDriver(inst plugin.Instrument, events *midi.Ring, channels, blockSize int) *Driver {
	d := &Driver{
		inst:   inst,
		events: events,
		ctx:    process.NewContext(channels, blockSize, events.Cap()),
	}
	d.counter, _ = inst.(heldCounter)
	return d
}

// SetProfiler enables cycle timing. Must be called before audio starts.
func (d *Driver) SetProfiler(p *debug.AudioProcessProfiler) {
	d.profiler = p
}

// Pull renders up to frames frames and returns the channel views. The views
// are valid until the next Pull.
func (d *Driver) Pull(frames int) [][]float32 {
	var start time.Time
	if d.profiler != nil {
		start = time.Now()
	}

	d.ctx.Frames(frames)
	d.ctx.CommitInputEvents(d.events.Drain(d.ctx.EventBuffer()))
	d.inst.DeliverEvents(d.ctx.InputEvents())
	d.ctx.ClearInputEvents()
	d.inst.Render(d.ctx.Output)

	if d.counter != nil {
		d.held.Store(d.counter.Held())
	}
	d.blocks.Add(1)
	if d.profiler != nil {
		d.profiler.RecordBlock(time.Since(start))
	}
	return d.ctx.Output
}

// Context returns the block context. Only the audio thread may touch it.
func (d *Driver) Context() *process.Context {
	return d.ctx
}

// Events returns the ring note producers push into.
func (d *Driver) Events() *midi.Ring {
	return d.events
}

// BlockSize returns the largest block a single Pull renders.
func (d *Driver) BlockSize() int {
	return d.ctx.MaxFrames()
}

// Channels returns the number of rendered channels.
func (d *Driver) Channels() int {
	return d.ctx.NumOutputChannels()
}

// Held returns the held-note count published after the last block. Safe
// from any goroutine.
func (d *Driver) Held() uint32 {
	return d.held.Load()
}

// Blocks returns the number of blocks rendered so far.
func (d *Driver) Blocks() uint64 {
	return d.blocks.Load()
}

// Status is a one-line summary for status displays.
func (d *Driver) Status() string {
	held := d.Held()
	if held == 0 {
		return "silent"
	}
	if held == 1 {
		return "1 note held"
	}
	return fmt.Sprintf("%d notes held", held)
}
