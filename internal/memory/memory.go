// Package memory provides the byte storage backing every component
// mapped onto the bus.
//
// A Memory is owned by exactly one Component. Further Components may
// be created as views over the same Memory (echo RAM being the usual
// example); the owner cannot release the Memory while any view is
// still alive.
package memory

import (
	"github.com/thelolagemann/gbcore/internal/errors"
)

// Memory is a fixed size, zero initialised block of bytes.
type Memory struct {
	data  []byte
	views int
}

// NewMemory allocates size bytes of zeroed memory.
func NewMemory(size int) (*Memory, error) {
	if size <= 0 {
		return nil, errors.New(errors.BadParameter, "memory size must be positive, got %d", size)
	}
	return &Memory{data: make([]byte, size)}, nil
}

// Size returns the number of bytes held, or 0 once released.
func (m *Memory) Size() int {
	if m == nil {
		return 0
	}
	return len(m.data)
}

// Bytes returns the underlying storage.
func (m *Memory) Bytes() []byte {
	if m == nil {
		return nil
	}
	return m.data
}

// Views returns the number of live views sharing the memory.
func (m *Memory) Views() int {
	return m.views
}

// Free releases the storage. Releasing memory that is still shared
// fails; releasing it twice is a no-op.
func (m *Memory) Free() error {
	if m == nil {
		return errors.New(errors.NullReference, "free of nil memory")
	}
	if m.views > 0 {
		return errors.New(errors.BadParameter, "memory is still shared by %d view(s)", m.views)
	}
	m.data = nil
	return nil
}
