package param

import "fmt"

// Registry is the fixed set of plugin parameters, addressed by the index the
// host uses for automation. The layout never changes after NewRegistry, so no
// method takes a lock; every cell is atomic. Unknown indices yield neutral
// values instead of failing because hosts query indices speculatively.
type Registry struct {
	params []*Parameter
}

// NewRegistry creates a registry holding params in index order.
func NewRegistry(params ...*Parameter) *Registry {
	r := &Registry{params: make([]*Parameter, 0, len(params))}
	for _, p := range params {
		if p != nil {
			r.params = append(r.params, p)
		}
	}
	return r
}

// Count returns the number of parameters
func (r *Registry) Count() int32 {
	if r == nil {
		return 0
	}
	return int32(len(r.params))
}

// At retrieves a parameter by index, or nil.
func (r *Registry) At(index int32) *Parameter {
	if r == nil || index < 0 || index >= int32(len(r.params)) {
		return nil
	}
	return r.params[index]
}

// Get retrieves a parameter by ID, or nil.
func (r *Registry) Get(id uint32) *Parameter {
	if r == nil {
		return nil
	}
	for _, p := range r.params {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Value returns the plain value at index, or 0.
func (r *Registry) Value(index int32) float32 {
	if p := r.At(index); p != nil {
		return p.Value()
	}
	return 0
}

// SetValue sets the plain value at index. Unknown indices are ignored.
func (r *Registry) SetValue(index int32, value float32) {
	if p := r.At(index); p != nil {
		p.SetValue(value)
	}
}

// Label returns the unit label at index, or "".
func (r *Registry) Label(index int32) string {
	if p := r.At(index); p != nil {
		return p.Label()
	}
	return ""
}

// DisplayText returns the formatted value at index, or "".
func (r *Registry) DisplayText(index int32) string {
	if p := r.At(index); p != nil {
		return p.DisplayText()
	}
	return ""
}

// Name returns the parameter name at index, or "".
func (r *Registry) Name(index int32) string {
	if p := r.At(index); p != nil {
		return p.Name
	}
	return ""
}

// Parse sets the value at index from display text.
func (r *Registry) Parse(index int32, text string) error {
	p := r.At(index)
	if p == nil {
		return fmt.Errorf("index %d: %w", index, ErrUnknownParameter)
	}
	v, err := p.Parse(text)
	if err != nil {
		return err
	}
	p.SetValue(v)
	return nil
}

// Reset restores every parameter to its default.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	for _, p := range r.params {
		p.Reset()
	}
}

// All returns all parameters in order
func (r *Registry) All() []*Parameter {
	if r == nil {
		return nil
	}
	result := make([]*Parameter, len(r.params))
	copy(result, r.params)
	return result
}
