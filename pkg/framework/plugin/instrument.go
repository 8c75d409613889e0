package plugin

import (
	"github.com/justyntemme/whisper/pkg/framework/param"
	"github.com/justyntemme/whisper/pkg/midi"
)

// Descriptor reports static metadata and capabilities.
type Descriptor interface {
	Info() Info
	CanDo(c CanDo) Supported
}

// EventReceiver accepts the performance events for the next cycle.
type EventReceiver interface {
	// DeliverEvents is called on the audio thread - no allocations!
	DeliverEvents(batch []midi.Message)
}

// Renderer fills host-owned output buffers.
type Renderer interface {
	// Render is called on the audio thread - no allocations!
	Render(out [][]float32)
}

// ParameterAccess exposes the shared parameter store.
type ParameterAccess interface {
	Parameters() *param.Registry
}

// Instrument is the full capability set a host bridge drives.
type Instrument interface {
	Descriptor
	EventReceiver
	Renderer
	ParameterAccess
}
