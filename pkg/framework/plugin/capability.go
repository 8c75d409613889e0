package plugin

// CanDo names a capability a host may query.
type CanDo int

const (
	CanSendEvents CanDo = iota
	CanSendMIDIEvent
	CanReceiveEvents
	CanReceiveMIDIEvent
	CanReceiveTimeInfo
	CanOffline
	CanMIDIProgramNames
	CanBypass
	CanUnknown CanDo = -1
)

var canDoNames = map[CanDo]string{
	CanSendEvents:       "sendVstEvents",
	CanSendMIDIEvent:    "sendVstMidiEvent",
	CanReceiveEvents:    "receiveVstEvents",
	CanReceiveMIDIEvent: "receiveVstMidiEvent",
	CanReceiveTimeInfo:  "receiveVstTimeInfo",
	CanOffline:          "offline",
	CanMIDIProgramNames: "midiProgramNames",
	CanBypass:           "bypass",
}

func (c CanDo) String() string {
	if name, ok := canDoNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCanDo maps a host capability string to a CanDo. Unrecognized strings
// yield CanUnknown.
func ParseCanDo(s string) CanDo {
	for c, name := range canDoNames {
		if name == s {
			return c
		}
	}
	return CanUnknown
}

// Supported is the answer to a capability query.
type Supported int

const (
	No    Supported = -1
	Maybe Supported = 0
	Yes   Supported = 1
)

func (s Supported) String() string {
	switch s {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "maybe"
	}
}
