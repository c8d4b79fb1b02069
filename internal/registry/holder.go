package registry

import "sync/atomic"

// Holder shares one Registry across concurrent readers and supports
// reload by building a complete replacement and swapping the reference.
// Readers always observe either the old or the new registry, never a
// partially rebuilt one.
type Holder struct {
	current atomic.Pointer[Registry]
}

// NewHolder creates a Holder seeded with reg. A nil reg seeds the
// fallback registry.
func NewHolder(reg *Registry) *Holder {
	h := &Holder{}
	if reg == nil {
		reg = Fallback()
	}
	h.current.Store(reg)
	return h
}

// Get returns the current registry.
func (h *Holder) Get() *Registry {
	return h.current.Load()
}

// Swap replaces the current registry. Nil is ignored.
func (h *Holder) Swap(reg *Registry) {
	if reg == nil {
		return
	}
	h.current.Store(reg)
}

// ReloadFile rebuilds the registry from the source at path and swaps it
// in. Load failures degrade to the fallback vocabulary, so the holder is
// never left empty.
func (h *Holder) ReloadFile(path string) *Registry {
	reg := LoadFile(path)
	h.current.Store(reg)
	return reg
}
