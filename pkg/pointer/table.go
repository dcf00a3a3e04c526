package pointer

import (
	"sort"

	"github.com/teslashibe/go-xr/pkg/input"
)

// Factory builds the pointer for a newly connected device.
type Factory func(dev input.Device) *Pointer

// Table holds one pointer per connected device.
type Table struct {
	pointers map[int]*Pointer
	factory  Factory
}

// NewTable creates a table using factory for new devices.
func NewTable(factory Factory) *Table {
	return &Table{pointers: make(map[int]*Pointer), factory: factory}
}

// Attach creates the pointer for dev, replacing any previous one.
func (t *Table) Attach(dev input.Device) *Pointer {
	p := t.factory(dev)
	t.pointers[dev.ID] = p
	return p
}

// Detach drops the pointer for id along with its press state.
func (t *Table) Detach(id int) bool {
	if _, ok := t.pointers[id]; !ok {
		return false
	}
	delete(t.pointers, id)
	return true
}

// Get returns the pointer for id.
func (t *Table) Get(id int) (*Pointer, bool) {
	p, ok := t.pointers[id]
	return p, ok
}

// Len returns the number of pointers.
func (t *Table) Len() int {
	return len(t.pointers)
}

// Each visits pointers in device id order.
func (t *Table) Each(fn func(*Pointer)) {
	ids := make([]int, 0, len(t.pointers))
	for id := range t.pointers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fn(t.pointers[id])
	}
}
