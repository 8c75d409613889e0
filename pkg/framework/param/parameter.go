// Package param provides lock-free plugin parameters shared between the
// audio thread, the host bridge and the control surface.
package param

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// ErrUnknownParameter is returned when an index does not name a parameter.
var ErrUnknownParameter = errors.New("unknown parameter")

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float32
	Max          float32
	DefaultValue float32
	StepCount    int32

	// Plain value stored as float32 bits for lock-free access in audio thread
	value atomic.Uint32

	formatFunc func(float32) string
	parseFunc  func(string) (float32, error)
}

// Value returns the current plain value.
func (p *Parameter) Value() float32 {
	return math.Float32frombits(p.value.Load())
}

// SetValue stores a plain value, clamped to [Min, Max]. NaN is ignored so the
// stored value always stays inside the declared range.
func (p *Parameter) SetValue(value float32) {
	if value != value {
		return
	}
	if value < p.Min {
		value = p.Min
	} else if value > p.Max {
		value = p.Max
	}
	p.value.Store(math.Float32bits(value))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// Normalized returns the current value mapped to 0-1
func (p *Parameter) Normalized() float32 {
	return p.Normalize(p.Value())
}

// SetNormalized sets the value from a 0-1 host value
func (p *Parameter) SetNormalized(normalized float32) {
	p.SetValue(p.Denormalize(normalized))
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float32) float32 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float32) float32 {
	return p.Min + normalized*(p.Max-p.Min)
}

// Label returns the unit label shown next to the value.
func (p *Parameter) Label() string {
	return p.Unit
}

// DisplayText formats the current value.
func (p *Parameter) DisplayText() string {
	return p.Format(p.Value())
}

// Format returns the display text for a plain value.
func (p *Parameter) Format(plain float32) string {
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// Parse converts display text back to a plain value. A trailing unit label
// is accepted.
func (p *Parameter) Parse(text string) (float32, error) {
	text = strings.TrimSpace(text)
	if p.Unit != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, p.Unit))
	}
	if p.parseFunc != nil {
		return p.parseFunc(text)
	}
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", p.Name, err)
	}
	return float32(v), nil
}
