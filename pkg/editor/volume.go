package editor

import (
	"fmt"

	"github.com/justyntemme/whisper/pkg/framework/param"
)

// DefaultStep is the value change of one arrow key press or wheel notch.
const DefaultStep float32 = 0.01

// VolumeControl is a horizontal slider over one parameter. Geometry is in
// surface pixels; the track spans [X, X+Width).
type VolumeControl struct {
	X, Y, Width, Height int
	Step                float32

	params   *param.Registry
	index    int32
	dragging bool
}

// NewVolumeControl binds a slider to the parameter at index.
func NewVolumeControl(params *param.Registry, index int32, x, y, width, height int) *VolumeControl {
	return &VolumeControl{
		X:      x,
		Y:      y,
		Width:  max(width, 1),
		Height: max(height, 1),
		Step:   DefaultStep,
		params: params,
		index:  index,
	}
}

func (c *VolumeControl) parameter() *param.Parameter {
	return c.params.At(c.index)
}

// Value returns the current plain value.
func (c *VolumeControl) Value() float32 {
	return c.params.Value(c.index)
}

// Fraction returns the slider position in [0, 1].
func (c *VolumeControl) Fraction() float32 {
	if p := c.parameter(); p != nil {
		return p.Normalized()
	}
	return 0
}

// Caption is the text drawn with the slider, e.g. "volume: 0.750 x".
func (c *VolumeControl) Caption() string {
	p := c.parameter()
	if p == nil {
		return ""
	}
	caption := fmt.Sprintf("%s: %s", p.Name, p.DisplayText())
	if p.Unit != "" {
		caption += " " + p.Unit
	}
	return caption
}

// HandleX returns the pixel column of the slider handle.
func (c *VolumeControl) HandleX() int {
	return c.X + int(c.Fraction()*float32(c.Width-1)+0.5)
}

// Contains reports whether a point lies on the slider.
func (c *VolumeControl) Contains(px, py int) bool {
	return px >= c.X && px < c.X+c.Width && py >= c.Y && py < c.Y+c.Height
}

// Press starts a drag when the point is on the slider and jumps the value
// there. It reports whether the press was taken.
func (c *VolumeControl) Press(px, py int) bool {
	if !c.Contains(px, py) {
		return false
	}
	c.dragging = true
	c.setFromX(px)
	return true
}

// Drag follows the pointer while a drag is in progress. Positions outside
// the track pin the value to the nearest end.
func (c *VolumeControl) Drag(px int) {
	if c.dragging {
		c.setFromX(px)
	}
}

// Release ends a drag.
func (c *VolumeControl) Release() {
	c.dragging = false
}

// Dragging reports whether a drag is in progress.
func (c *VolumeControl) Dragging() bool {
	return c.dragging
}

// Nudge moves the value by steps times Step.
func (c *VolumeControl) Nudge(steps float32) {
	p := c.parameter()
	if p == nil {
		return
	}
	p.SetNormalized(p.Normalized() + steps*c.Step)
}

// Copy returns the display text for the clipboard.
func (c *VolumeControl) Copy() string {
	return c.params.DisplayText(c.index)
}

// Paste sets the value from typed or pasted text.
func (c *VolumeControl) Paste(text string) error {
	return c.params.Parse(c.index, text)
}

func (c *VolumeControl) setFromX(px int) {
	p := c.parameter()
	if p == nil {
		return
	}
	frac := float32(px-c.X) / float32(max(c.Width-1, 1))
	p.SetNormalized(min(max(frac, 0), 1))
}
