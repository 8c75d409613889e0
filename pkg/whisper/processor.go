package whisper

import (
	"github.com/justyntemme/whisper/pkg/framework/bus"
	"github.com/justyntemme/whisper/pkg/framework/param"
	"github.com/justyntemme/whisper/pkg/framework/plugin"
	"github.com/justyntemme/whisper/pkg/midi"
)

// Descriptor values reported to hosts.
const (
	PluginName     = "Whisper"
	PluginVendor   = "whisper"
	PluginUniqueID = 1337
	PluginVersion  = 1000
)

// MaxPendingEvents is the capacity of the per-cycle event batch.
const MaxPendingEvents = 1024

// State is the logical state of an instance between cycles.
type State int

const (
	StateSilent State = iota
	StateNotesHeld
)

func (s State) String() string {
	if s == StateNotesHeld {
		return "notes held"
	}
	return "silent"
}

// Processor runs one processing cycle per audio block: apply the pending
// events, read the held count, render. DeliverEvents and Render must be
// called from the audio thread only; they never allocate, lock or block.
// The parameter store may be used from any goroutine.
type Processor struct {
	params  *param.Registry
	buses   *bus.Configuration
	tracker NoteTracker
	gen     *Generator

	pending    [MaxPendingEvents]midi.Message
	numPending int
}

var _ plugin.Instrument = (*Processor)(nil)

// NewProcessor creates an instance with a fresh parameter store.
func NewProcessor() *Processor {
	return NewProcessorWith(NewParameters(), NewGenerator())
}

// NewProcessorWith creates an instance over an existing parameter store
// and generator.
func NewProcessorWith(params *param.Registry, gen *Generator) *Processor {
	return &Processor{
		params: params,
		buses:  bus.NewGenerator(),
		gen:    gen,
	}
}

// Info returns the plugin descriptor.
func (p *Processor) Info() plugin.Info {
	info := plugin.NewInfo(PluginName, PluginVendor, PluginUniqueID, p.buses)
	info.Version = PluginVersion
	info.Category = plugin.CategorySynth
	info.Parameters = p.params.Count()
	return info
}

// Buses returns the bus layout: stereo out and one event input.
func (p *Processor) Buses() *bus.Configuration {
	return p.buses
}

// CanDo answers host capability queries. Receiving events must be declared
// or hosts withhold them.
func (p *Processor) CanDo(c plugin.CanDo) plugin.Supported {
	switch c {
	case plugin.CanReceiveEvents, plugin.CanReceiveMIDIEvent:
		return plugin.Yes
	}
	return plugin.Maybe
}

// Parameters returns the shared parameter store.
func (p *Processor) Parameters() *param.Registry {
	return p.params
}

// DeliverEvents queues a batch for the next Render. If the pending batch
// would overflow, the queued events are applied to the tracker first so
// order is preserved and nothing is lost.
func (p *Processor) DeliverEvents(batch []midi.Message) {
	for len(batch) > 0 {
		if p.numPending == len(p.pending) {
			p.flush()
		}
		n := copy(p.pending[p.numPending:], batch)
		p.numPending += n
		batch = batch[n:]
	}
}

// Render completes the cycle: pending events are applied, then out is
// filled from the resulting held count and the current volume.
func (p *Processor) Render(out [][]float32) {
	p.flush()
	p.gen.Render(out, p.tracker.Held(), p.params.Value(ParamVolume))
}

// Process delivers batch and renders out in one call.
func (p *Processor) Process(batch []midi.Message, out [][]float32) {
	p.DeliverEvents(batch)
	p.Render(out)
}

// Held returns the held-note count as of the last applied events.
func (p *Processor) Held() uint32 {
	return p.tracker.Held()
}

// State reports whether the last cycle left notes held.
func (p *Processor) State() State {
	if p.tracker.Active() {
		return StateNotesHeld
	}
	return StateSilent
}

// Reset drops pending events and releases every note. Used when the host
// suspends processing; parameters are left untouched.
func (p *Processor) Reset() {
	p.numPending = 0
	p.tracker.Reset()
}

func (p *Processor) flush() {
	p.tracker.Apply(p.pending[:p.numPending])
	p.numPending = 0
}
