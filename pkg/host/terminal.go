package host

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/justyntemme/whisper/pkg/editor"
	"github.com/justyntemme/whisper/pkg/framework/debug"
)

// ErrNotTerminal is returned when stdin is not an interactive terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Control bytes read in raw mode.
const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
)

// TerminalKeys plays notes from a raw-mode terminal. Terminals report no
// key releases, so each note key toggles its note; space releases all and
// +/- move the volume.
type TerminalKeys struct {
	keys   *editor.Keyboard
	volume *editor.VolumeControl
	quit   func()

	in       *os.File
	fd       int
	oldState *term.State
	stopOnce sync.Once
	stopCh   chan struct{}

	// mu orders key handling against Stop; no key is applied once stopped.
	mu      sync.Mutex
	stopped bool
}

// NewTerminalKeys creates a reader feeding keys and volume. volume may be nil.
func NewTerminalKeys(keys *editor.Keyboard, volume *editor.VolumeControl) *TerminalKeys {
	return &TerminalKeys{
		keys:   keys,
		volume: volume,
		in:     os.Stdin,
		stopCh: make(chan struct{}),
	}
}

// Start puts stdin in raw mode and reads keys in the background. quit is
// called when the user presses q, Ctrl+C or Ctrl+D, since raw mode
// turns off the terminal's own signal keys.
func (t *TerminalKeys) Start(quit func()) error {
	t.fd = int(t.in.Fd())
	if !term.IsTerminal(t.fd) {
		return ErrNotTerminal
	}
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	t.oldState = oldState
	t.quit = quit

	go t.read()
	return nil
}

// Stop restores the terminal and releases held notes. Keys read after Stop
// are dropped; the reader goroutine exits on its next key.
func (t *TerminalKeys) Stop() {
	t.stopOnce.Do(func() {
		close(t.stopCh)
		if t.oldState != nil {
			if err := term.Restore(t.fd, t.oldState); err != nil {
				debug.Warn("host: restore terminal: %v", err)
			}
		}
		t.mu.Lock()
		t.stopped = true
		t.keys.ReleaseAll()
		t.mu.Unlock()
	})
}

func (t *TerminalKeys) read() {
	buf := make([]byte, 16)
	for {
		n, err := t.in.Read(buf)
		select {
		case <-t.stopCh:
			return
		default:
		}
		if err != nil {
			debug.Debug("host: terminal read: %v", err)
			return
		}
		for _, b := range buf[:n] {
			if t.handleByte(b) {
				if t.quit != nil {
					t.quit()
				}
				return
			}
		}
	}
}

// handleByte applies one key and reports whether it asks to quit.
func (t *TerminalKeys) handleByte(b byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return false
	}

	switch b {
	case keyCtrlC, keyCtrlD, 'q':
		return true
	case ' ':
		t.keys.ReleaseAll()
	case '+', '=':
		if t.volume != nil {
			t.volume.Nudge(5)
		}
	case '-', '_':
		if t.volume != nil {
			t.volume.Nudge(-5)
		}
	default:
		t.keys.Toggle(rune(b))
	}
	return false
}
