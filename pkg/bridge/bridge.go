// Package bridge maps the parameter registry onto the flat, normalized
// parameter list a plugin host sees.
package bridge

import (
	"github.com/justyntemme/whisper/pkg/framework/param"
)

// ValueLabel returns the display function for a host parameter slot. Hosts
// pass normalized values; the result matches what the control surface shows.
func ValueLabel(p *param.Parameter) func(float32) string {
	return func(normalized float32) string {
		return p.Format(p.Denormalize(clampUnit(normalized)))
	}
}

// Mirror keeps host-visible normalized values and the registry in step.
// Host automation wins when both sides changed since the last Sync. Not safe
// for concurrent use; call it from the host's processing thread.
type Mirror struct {
	params *param.Registry
	last   []float32
}

// NewMirror creates a mirror over every parameter in params.
func NewMirror(params *param.Registry) *Mirror {
	m := &Mirror{
		params: params,
		last:   make([]float32, params.Count()),
	}
	for i := range m.last {
		m.last[i] = params.At(int32(i)).Normalized()
	}
	return m
}

// Initial returns the normalized value the host slot at index starts with.
func (m *Mirror) Initial(index int) float32 {
	if index < 0 || index >= len(m.last) {
		return 0
	}
	return m.last[index]
}

// Sync reconciles the host value at index with the registry and returns the
// value the host slot should hold afterwards.
func (m *Mirror) Sync(index int, host float32) float32 {
	p := m.params.At(int32(index))
	if p == nil || index >= len(m.last) {
		return host
	}
	if host != host {
		host = m.last[index]
	}
	host = clampUnit(host)

	switch current := p.Normalized(); {
	case host != m.last[index]:
		p.SetNormalized(host)
	case current != m.last[index]:
		host = current
	}
	m.last[index] = host
	return host
}

func clampUnit(v float32) float32 {
	switch {
	case v != v, v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
