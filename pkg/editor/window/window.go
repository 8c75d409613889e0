//go:build !headless

// Package window shows the control surface in a native window using ebiten.
package window

import (
	"errors"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/justyntemme/whisper/pkg/editor"
	"github.com/justyntemme/whisper/pkg/framework/debug"
	"github.com/justyntemme/whisper/pkg/framework/param"
)

// Surface size in pixels.
const (
	Width  = 400
	Height = 200
)

// ErrEmbedUnsupported is returned when a host asks to embed the surface in
// its own window. Ebiten only drives top-level windows.
var ErrEmbedUnsupported = errors.New("window: embedding in a host window is not supported")

var (
	backgroundColor = color.RGBA{0x1c, 0x1f, 0x24, 0xff}
	trackColor      = color.RGBA{0x3a, 0x3f, 0x47, 0xff}
	fillColor       = color.RGBA{0x6c, 0xa0, 0xdc, 0xff}
	handleColor     = color.RGBA{0xee, 0xee, 0xee, 0xff}
	textColor       = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	dimTextColor    = color.RGBA{0x88, 0x8c, 0x94, 0xff}
)

const helpText = "keys a..' play  arrows/wheel adjust  ctrl+c/v copy/paste"

// Keys of the note layout in editor order.
var noteKeys = []struct {
	key ebiten.Key
	r   rune
}{
	{ebiten.KeyA, 'a'}, {ebiten.KeyW, 'w'}, {ebiten.KeyS, 's'}, {ebiten.KeyE, 'e'},
	{ebiten.KeyD, 'd'}, {ebiten.KeyF, 'f'}, {ebiten.KeyT, 't'}, {ebiten.KeyG, 'g'},
	{ebiten.KeyY, 'y'}, {ebiten.KeyH, 'h'}, {ebiten.KeyU, 'u'}, {ebiten.KeyJ, 'j'},
	{ebiten.KeyK, 'k'}, {ebiten.KeyO, 'o'}, {ebiten.KeyL, 'l'}, {ebiten.KeyP, 'p'},
	{ebiten.KeySemicolon, ';'}, {ebiten.KeyQuote, '\''},
}

// Window is an ebiten game rendering the volume slider and feeding the
// computer keyboard into a note sink. It implements editor.Editor.
type Window struct {
	title  string
	volume *editor.VolumeControl
	keys   *editor.Keyboard
	status func() string

	open    atomic.Bool
	closing atomic.Bool

	// mu guards statusLine and keys, which Close touches from other
	// goroutines.
	mu         sync.Mutex
	statusLine string

	clipboardOnce sync.Once
	clipboardOK   bool
}

var _ editor.Editor = (*Window)(nil)

// New creates a window over the parameter at index. Notes played on the
// computer keyboard go to notes; a nil sink disables them.
func New(title string, params *param.Registry, index int32, notes editor.NoteSink) *Window {
	w := &Window{
		title:  title,
		volume: editor.NewVolumeControl(params, index, 20, 80, Width-40, 40),
	}
	if notes != nil {
		w.keys = editor.NewKeyboard(notes, 0)
	}
	return w
}

// SetStatus installs a callback polled on every Idle tick for the bottom
// status line.
func (w *Window) SetStatus(fn func() string) {
	w.status = fn
}

// Size returns the surface size.
func (w *Window) Size() (int, int) {
	return Width, Height
}

// Position returns the surface origin. A free-standing window has none.
func (w *Window) Position() (int, int) {
	return 0, 0
}

// Open prepares the native window. Run must then be called from the main
// goroutine to show it.
func (w *Window) Open(parent uintptr) error {
	if parent != 0 {
		return ErrEmbedUnsupported
	}
	if !w.open.CompareAndSwap(false, true) {
		return editor.ErrAlreadyOpen
	}
	w.closing.Store(false)
	ebiten.SetWindowSize(Width*2, Height*2)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetRunnableOnUnfocused(true)
	return nil
}

// Run shows the window and blocks until it is closed.
func (w *Window) Run() error {
	if !w.open.Load() {
		if err := w.Open(0); err != nil {
			return err
		}
	}
	defer w.open.Store(false)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Close asks the window to shut down on its next tick and releases every
// held note.
func (w *Window) Close() {
	w.closing.Store(true)
	w.open.Store(false)
	w.releaseAll()
}

// IsOpen reports whether the window is showing.
func (w *Window) IsOpen() bool {
	return w.open.Load()
}

// Idle refreshes the status line.
func (w *Window) Idle() {
	if w.status == nil {
		return
	}
	s := w.status()
	w.mu.Lock()
	w.statusLine = s
	w.mu.Unlock()
}

// Update is called by ebiten once per tick.
func (w *Window) Update() error {
	if w.closing.Load() || ebiten.IsWindowBeingClosed() {
		w.releaseAll()
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	w.pointer(x, y,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft))
	if _, dy := ebiten.Wheel(); dy != 0 {
		w.scroll(dy)
	}

	w.handleKeyboardInput()
	w.Idle()
	return nil
}

func (w *Window) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			w.copyValue()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyV) {
			w.pasteValue()
		}
		return
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	step := float32(1)
	if shift {
		step = 10
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		w.volume.Nudge(step)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		w.volume.Nudge(-step)
	}

	for _, nk := range noteKeys {
		if inpututil.IsKeyJustPressed(nk.key) {
			w.keyDown(nk.r)
		}
		if inpututil.IsKeyJustReleased(nk.key) {
			w.keyUp(nk.r)
		}
	}
}

func (w *Window) pointer(x, y int, pressed, released bool) {
	switch {
	case pressed:
		w.volume.Press(x, y)
	case released:
		w.volume.Release()
	default:
		w.volume.Drag(x)
	}
}

func (w *Window) scroll(dy float64) {
	if dy > 0 {
		w.volume.Nudge(1)
	} else {
		w.volume.Nudge(-1)
	}
}

func (w *Window) keyDown(r rune) {
	if w.keys == nil {
		return
	}
	w.mu.Lock()
	sent := w.keys.Press(r)
	w.mu.Unlock()
	if _, ok := editor.KeyNote(r); ok && !sent {
		debug.Debug("window: note for %q not sent", r)
	}
}

func (w *Window) keyUp(r rune) {
	if w.keys == nil {
		return
	}
	w.mu.Lock()
	w.keys.Release(r)
	w.mu.Unlock()
}

func (w *Window) releaseAll() {
	if w.keys == nil {
		return
	}
	w.mu.Lock()
	w.keys.ReleaseAll()
	w.mu.Unlock()
}

func (w *Window) initClipboard() bool {
	w.clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			debug.Warn("window: clipboard unavailable: %v", err)
			return
		}
		w.clipboardOK = true
	})
	return w.clipboardOK
}

func (w *Window) copyValue() {
	if !w.initClipboard() {
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(w.volume.Copy()))
}

func (w *Window) pasteValue() {
	if !w.initClipboard() {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 || len(data) > 64 {
		return
	}
	if err := w.volume.Paste(string(data)); err != nil {
		debug.Info("window: ignored paste: %v", err)
	}
}

// Draw renders the surface.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	face := basicfont.Face7x13
	title := w.title
	text.Draw(screen, title, face, (Width-text.BoundString(face, title).Dx())/2, 30, textColor)

	v := w.volume
	text.Draw(screen, v.Caption(), face, v.X, v.Y-12, textColor)

	ebitenutil.DrawRect(screen, float64(v.X), float64(v.Y), float64(v.Width), float64(v.Height), trackColor)
	filled := v.HandleX() - v.X
	if filled > 0 {
		ebitenutil.DrawRect(screen, float64(v.X), float64(v.Y), float64(filled), float64(v.Height), fillColor)
	}
	ebitenutil.DrawRect(screen, float64(v.HandleX()-2), float64(v.Y-4), 5, float64(v.Height+8), handleColor)

	w.mu.Lock()
	status := w.statusLine
	w.mu.Unlock()
	if status != "" {
		text.Draw(screen, status, face, v.X, v.Y+v.Height+28, textColor)
	}
	text.Draw(screen, helpText, face, 8, Height-10, dimTextColor)
}

// Layout fixes the logical screen at the surface size; ebiten scales it to
// the window.
func (w *Window) Layout(_, _ int) (int, int) {
	return Width, Height
}
