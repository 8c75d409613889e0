// Package editor holds the control surface model: a volume slider bound to
// the parameter store and a computer-keyboard note input. It never sees the
// note tracker; everything it changes goes through the parameter store or
// out as note messages.
package editor

import (
	"errors"

	"github.com/justyntemme/whisper/pkg/midi"
)

// ErrAlreadyOpen is returned by Open when the editor is already showing.
var ErrAlreadyOpen = errors.New("editor already open")

// Editor is the lifecycle a host drives for a plugin's control surface.
type Editor interface {
	// Size returns the pixel size of the surface.
	Size() (width, height int)
	// Position returns the top-left corner relative to the parent window.
	Position() (x, y int)
	// Open shows the surface inside the given native parent window. A zero
	// parent means a free-standing window.
	Open(parent uintptr) error
	Close()
	IsOpen() bool
	// Idle is a refresh tick driven by the host.
	Idle()
}

// NoteSink receives note messages produced by the control surface.
// midi.Ring satisfies it.
type NoteSink interface {
	Push(m midi.Message) bool
}
