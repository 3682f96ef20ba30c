package memory

import (
	"github.com/thelolagemann/gbcore/internal/errors"
)

// Component is a window over a Memory that can be plugged into the
// bus. Start and End are the inclusive bounds of the window on the
// bus; both are zero while the component is unplugged.
type Component struct {
	Start uint16
	End   uint16

	mem  *Memory
	view bool
}

// NewComponent creates a component owning size bytes of memory. A
// size of zero creates a placeholder component without memory.
func NewComponent(size int) (*Component, error) {
	if size < 0 {
		return nil, errors.New(errors.BadParameter, "component size must not be negative, got %d", size)
	}
	c := &Component{}
	if size == 0 {
		return c, nil
	}

	mem, err := NewMemory(size)
	if err != nil {
		return nil, err
	}
	c.mem = mem
	return c, nil
}

// NewView creates a component sharing the memory of source, without
// allocating. The view must be freed before source.
func NewView(source *Component) (*Component, error) {
	if source == nil || source.mem == nil {
		return nil, errors.New(errors.NullReference, "cannot share a component without memory")
	}
	source.mem.views++
	return &Component{mem: source.mem, view: true}, nil
}

// Memory returns the memory backing the component, which is nil for
// placeholders and freed components.
func (c *Component) Memory() *Memory {
	return c.mem
}

// Size returns the size of the backing memory.
func (c *Component) Size() int {
	return c.mem.Size()
}

// IsView reports whether the component shares memory owned by another
// component.
func (c *Component) IsView() bool {
	return c.view
}

// Bytes returns the backing storage of the component.
func (c *Component) Bytes() []byte {
	return c.mem.Bytes()
}

// Load copies data into the component, which must be exactly the size
// of its memory.
func (c *Component) Load(data []byte) error {
	if c.mem == nil {
		return errors.New(errors.NullReference, "component has no memory")
	}
	if len(data) != c.mem.Size() {
		return errors.New(errors.BadParameter, "expected %d bytes, got %d", c.mem.Size(), len(data))
	}
	copy(c.mem.data, data)
	return nil
}

// Free releases the component. An owning component releases its
// memory, which fails while views are alive. A view only drops its
// reference. In both cases the window is reset.
func (c *Component) Free() error {
	if c == nil {
		return errors.New(errors.NullReference, "free of nil component")
	}
	if c.mem != nil {
		if c.view {
			c.mem.views--
		} else if err := c.mem.Free(); err != nil {
			return err
		}
	}
	c.mem = nil
	c.Start, c.End = 0, 0
	return nil
}
