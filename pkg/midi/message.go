package midi

// Status bytes for channel voice messages (upper nibble).
const (
	StatusNoteOff         uint8 = 0x80
	StatusNoteOn          uint8 = 0x90
	StatusPolyPressure    uint8 = 0xA0
	StatusControlChange   uint8 = 0xB0
	StatusProgramChange   uint8 = 0xC0
	StatusChannelPressure uint8 = 0xD0
	StatusPitchBend       uint8 = 0xE0
	StatusSystem          uint8 = 0xF0
)

// Message is a raw MIDI message with its frame offset inside the current
// block. It is a plain value so batches of it can be copied and queued on
// the audio thread without allocating.
type Message struct {
	Offset int32
	Status uint8
	Data1  uint8
	Data2  uint8
}

// NewNoteOn builds a note-on message.
func NewNoteOn(channel, note, velocity uint8) Message {
	return Message{Status: StatusNoteOn | channel&0x0F, Data1: note & 0x7F, Data2: velocity & 0x7F}
}

// NewNoteOff builds a note-off message.
func NewNoteOff(channel, note, velocity uint8) Message {
	return Message{Status: StatusNoteOff | channel&0x0F, Data1: note & 0x7F, Data2: velocity & 0x7F}
}

// FromBytes builds a message from raw MIDI bytes as delivered by a host.
// Missing bytes read as zero; an empty slice yields a message of unknown type.
func FromBytes(data []byte, offset int32) Message {
	m := Message{Offset: offset}
	switch {
	case len(data) >= 3:
		m.Data2 = data[2]
		fallthrough
	case len(data) == 2:
		m.Data1 = data[1]
		fallthrough
	case len(data) == 1:
		m.Status = data[0]
	}
	return m
}

// Type classifies the message. A note-on with velocity zero is a note-off.
// Bytes without the status bit set are unknown; running status is not
// reconstructed here.
func (m Message) Type() EventType {
	if m.Status < 0x80 {
		return EventTypeUnknown
	}
	switch m.Status & 0xF0 {
	case StatusNoteOff:
		return EventTypeNoteOff
	case StatusNoteOn:
		if m.Data2 == 0 {
			return EventTypeNoteOff
		}
		return EventTypeNoteOn
	case StatusPolyPressure:
		return EventTypePolyPressure
	case StatusControlChange:
		return EventTypeControlChange
	case StatusProgramChange:
		return EventTypeProgramChange
	case StatusChannelPressure:
		return EventTypeChannelPressure
	case StatusPitchBend:
		return EventTypePitchBend
	}
	switch m.Status {
	case 0xF0:
		return EventTypeSystemExclusive
	case 0xF8:
		return EventTypeClock
	case 0xFA:
		return EventTypeStart
	case 0xFB:
		return EventTypeContinue
	case 0xFC:
		return EventTypeStop
	case 0xFE:
		return EventTypeActiveSensing
	case 0xFF:
		return EventTypeReset
	}
	return EventTypeUnknown
}

// Channel returns the channel of a channel voice message.
func (m Message) Channel() uint8 {
	if m.Status >= StatusSystem {
		return 0
	}
	return m.Status & 0x0F
}

func (m Message) SampleOffset() int32 {
	return m.Offset
}

// Note returns the note number of note and poly pressure messages.
func (m Message) Note() uint8 {
	return m.Data1
}

// Velocity returns the velocity of note messages.
func (m Message) Velocity() uint8 {
	return m.Data2
}

func (m Message) String() string {
	return Decode(m).String()
}

// Decode returns the typed view of m.
func Decode(m Message) Event {
	base := BaseEvent{EventChannel: m.Channel(), Offset: m.Offset}
	switch t := m.Type(); t {
	case EventTypeNoteOn:
		return NoteOnEvent{BaseEvent: base, NoteNumber: m.Data1, Velocity: m.Data2}
	case EventTypeNoteOff:
		return NoteOffEvent{BaseEvent: base, NoteNumber: m.Data1, Velocity: m.Data2}
	case EventTypePolyPressure:
		return PolyPressureEvent{BaseEvent: base, NoteNumber: m.Data1, Pressure: m.Data2}
	case EventTypeControlChange:
		return ControlChangeEvent{BaseEvent: base, Controller: m.Data1, Value: m.Data2}
	case EventTypeProgramChange:
		return ProgramChangeEvent{BaseEvent: base, Program: m.Data1}
	case EventTypeChannelPressure:
		return ChannelPressureEvent{BaseEvent: base, Pressure: m.Data1}
	case EventTypePitchBend:
		raw := int16(m.Data2&0x7F)<<7 | int16(m.Data1&0x7F)
		return PitchBendEvent{BaseEvent: base, Value: raw - 8192}
	default:
		return SystemEvent{BaseEvent: base, Kind: t, Status: m.Status}
	}
}

// Encode converts a typed event back to a Message.
func Encode(e Event) Message {
	ch := e.Channel() & 0x0F
	m := Message{Offset: e.SampleOffset()}
	switch ev := e.(type) {
	case NoteOnEvent:
		m.Status, m.Data1, m.Data2 = StatusNoteOn|ch, ev.NoteNumber, ev.Velocity
	case NoteOffEvent:
		m.Status, m.Data1, m.Data2 = StatusNoteOff|ch, ev.NoteNumber, ev.Velocity
	case PolyPressureEvent:
		m.Status, m.Data1, m.Data2 = StatusPolyPressure|ch, ev.NoteNumber, ev.Pressure
	case ControlChangeEvent:
		m.Status, m.Data1, m.Data2 = StatusControlChange|ch, ev.Controller, ev.Value
	case ProgramChangeEvent:
		m.Status, m.Data1 = StatusProgramChange|ch, ev.Program
	case ChannelPressureEvent:
		m.Status, m.Data1 = StatusChannelPressure|ch, ev.Pressure
	case PitchBendEvent:
		raw := uint16(int32(ev.Value) + 8192)
		m.Status, m.Data1, m.Data2 = StatusPitchBend|ch, uint8(raw&0x7F), uint8(raw>>7&0x7F)
	case SystemEvent:
		m.Status = ev.Status
	case Message:
		return ev
	}
	return m
}
