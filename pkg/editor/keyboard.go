package editor

import (
	"unicode"

	"github.com/justyntemme/whisper/pkg/midi"
)

// BaseNote is the note played by the first key of the layout (middle C).
const BaseNote uint8 = 60

// KeyVelocity is the velocity of notes played from the computer keyboard.
const KeyVelocity uint8 = 100

// Two rows of a QWERTY keyboard laid out like a piano octave and a half.
const keyLayout = "awsedftgyhujkolp;'"

// KeyNote maps a computer key to a note number.
func KeyNote(r rune) (uint8, bool) {
	r = unicode.ToLower(r)
	for i, k := range keyLayout {
		if k == r {
			return BaseNote + uint8(i), true
		}
	}
	return 0, false
}

// Keyboard turns key presses into note messages. Auto-repeat presses of a
// held key are dropped so every note-on has exactly one note-off.
type Keyboard struct {
	sink    NoteSink
	channel uint8
	down    [128]bool
}

// NewKeyboard creates a keyboard sending on channel to sink.
func NewKeyboard(sink NoteSink, channel uint8) *Keyboard {
	return &Keyboard{sink: sink, channel: channel & 0x0F}
}

// Press handles a key going down. It reports whether a note was sent.
func (k *Keyboard) Press(r rune) bool {
	note, ok := KeyNote(r)
	if !ok || k.down[note] {
		return false
	}
	if !k.sink.Push(midi.NewNoteOn(k.channel, note, KeyVelocity)) {
		return false
	}
	k.down[note] = true
	return true
}

// Release handles a key going up. It reports whether a note was sent.
func (k *Keyboard) Release(r rune) bool {
	note, ok := KeyNote(r)
	if !ok || !k.down[note] {
		return false
	}
	if !k.sink.Push(midi.NewNoteOff(k.channel, note, 0)) {
		return false
	}
	k.down[note] = false
	return true
}

// Toggle presses a key that is up and releases one that is down. Terminals
// report no key-up events, so they drive the keyboard this way.
func (k *Keyboard) Toggle(r rune) bool {
	note, ok := KeyNote(r)
	if !ok {
		return false
	}
	if k.down[note] {
		return k.Release(r)
	}
	return k.Press(r)
}

// Held returns the number of keys currently down.
func (k *Keyboard) Held() int {
	n := 0
	for _, d := range k.down {
		if d {
			n++
		}
	}
	return n
}

// ReleaseAll sends a note-off for every key that is down.
func (k *Keyboard) ReleaseAll() {
	for note, d := range k.down {
		if d && k.sink.Push(midi.NewNoteOff(k.channel, uint8(note), 0)) {
			k.down[note] = false
		}
	}
}
