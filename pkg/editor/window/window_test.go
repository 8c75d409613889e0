//go:build !headless

package window

import (
	"errors"
	"testing"

	"github.com/justyntemme/whisper/pkg/editor"
	"github.com/justyntemme/whisper/pkg/midi"
	"github.com/justyntemme/whisper/pkg/whisper"
)

func newTestWindow() (*Window, *midi.Ring) {
	ring := midi.NewRing(16)
	return New("Whisper", whisper.NewParameters(), whisper.ParamVolume, ring), ring
}

func TestLayout(t *testing.T) {
	w, _ := newTestWindow()

	if lw, lh := w.Layout(1920, 1080); lw != Width || lh != Height {
		t.Errorf("Layout() = %dx%d, want %dx%d", lw, lh, Width, Height)
	}
	if sw, sh := w.Size(); sw != Width || sh != Height {
		t.Errorf("Size() = %dx%d", sw, sh)
	}
	if x, y := w.Position(); x != 0 || y != 0 {
		t.Errorf("Position() = %d,%d", x, y)
	}
}

func TestOpenEmbedded(t *testing.T) {
	w, _ := newTestWindow()

	if err := w.Open(0xdeadbeef); !errors.Is(err, ErrEmbedUnsupported) {
		t.Errorf("Open(parent) error = %v, want ErrEmbedUnsupported", err)
	}
	if w.IsOpen() {
		t.Error("failed open must leave the window closed")
	}
}

func TestPointerDragsVolume(t *testing.T) {
	w, _ := newTestWindow()
	v := w.volume

	w.pointer(v.X, v.Y+1, true, false)
	if v.Value() != 0 {
		t.Errorf("press at left end: value %v, want 0", v.Value())
	}
	w.pointer(v.X+v.Width-1, 0, false, false)
	if v.Value() != 1 {
		t.Errorf("drag to right end: value %v, want 1", v.Value())
	}
	w.pointer(v.X, 0, false, true)
	w.pointer(v.X, 0, false, false)
	if v.Value() != 1 {
		t.Error("moving after release must not change the value")
	}
}

func TestScroll(t *testing.T) {
	w, _ := newTestWindow()

	w.scroll(-1)
	w.scroll(-1)
	if got := w.volume.Caption(); got != "volume: 0.980 x" {
		t.Errorf("Caption() = %q", got)
	}
	w.scroll(3)
	if w.volume.Value() > 0.99+1e-6 {
		t.Errorf("value %v after one notch up", w.volume.Value())
	}
}

func TestKeysSendNotes(t *testing.T) {
	w, ring := newTestWindow()

	w.keyDown('a')
	w.keyDown('k')
	w.keyUp('a')
	w.Close()

	dst := make([]midi.Message, 8)
	n := ring.Drain(dst)
	if n != 4 {
		t.Fatalf("sent %d messages, want 4", n)
	}
	want := []midi.EventType{midi.EventTypeNoteOn, midi.EventTypeNoteOn, midi.EventTypeNoteOff, midi.EventTypeNoteOff}
	for i, typ := range want {
		if dst[i].Type() != typ {
			t.Errorf("message %d = %v, want %v", i, dst[i], typ)
		}
	}
	if dst[3].Note() != 72 {
		t.Errorf("close released note %d, want 72", dst[3].Note())
	}
}

func TestIdleStatus(t *testing.T) {
	w, _ := newTestWindow()
	w.Idle()

	calls := 0
	w.SetStatus(func() string {
		calls++
		return "notes held: 1"
	})
	w.Idle()
	if calls != 1 || w.statusLine != "notes held: 1" {
		t.Errorf("status = %q after %d calls", w.statusLine, calls)
	}
}

func TestEditorInterface(t *testing.T) {
	var e editor.Editor = &Window{}
	e.Close()
	if e.IsOpen() {
		t.Error("closed window reports open")
	}
}
