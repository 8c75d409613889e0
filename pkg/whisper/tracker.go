package whisper

import (
	"math"

	"github.com/justyntemme/whisper/pkg/midi"
)

// NoteTracker counts held notes. It is a balanced counter, not a per-pitch
// gate: pitch and channel are ignored and a note-off never drives the count
// below zero. Owned by the audio path; not safe for concurrent use.
type NoteTracker struct {
	held uint32
}

// Apply updates the count from a batch in delivery order. A note-on with
// velocity 0 is the running-status form of note-off and releases a note, as
// midi.Message.Type reports it. Events other than note-on and note-off are
// ignored.
func (t *NoteTracker) Apply(batch []midi.Message) {
	for i := range batch {
		switch batch[i].Type() {
		case midi.EventTypeNoteOn:
			t.NoteOn()
		case midi.EventTypeNoteOff:
			t.NoteOff()
		}
	}
}

// NoteOn registers one more held note.
func (t *NoteTracker) NoteOn() {
	if t.held < math.MaxUint32 {
		t.held++
	}
}

// NoteOff releases one held note, clamping at zero.
func (t *NoteTracker) NoteOff() {
	if t.held > 0 {
		t.held--
	}
}

// Held returns the current count.
func (t *NoteTracker) Held() uint32 {
	return t.held
}

// Active reports whether any note is held.
func (t *NoteTracker) Active() bool {
	return t.held > 0
}

// Reset releases every note.
func (t *NoteTracker) Reset() {
	t.held = 0
}
