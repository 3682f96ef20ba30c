// Package mmu provides the memory bus of the Game Boy. The bus is
// unaware of what the components plugged into it are; it only routes
// each of the 65536 addresses to a byte of some component's memory.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/memory"
)

const (
	// AddressSpace is the number of addresses on the bus.
	AddressSpace = 0x10000
	// OpenBus is the value read from an address nothing is plugged into.
	OpenBus uint8 = 0xFF
)

// binding routes an address to a byte of a component. A zero handle
// marks an unbound address.
type binding struct {
	handle uint16
	offset uint32
}

// Listener is notified of the address of every write performed by the
// CPU, once the cycle that performed it has completed.
type Listener func(addr uint16) error

// Bus maps the address space onto component memory. Components are
// referenced through small integer handles rather than pointers into
// their storage, so remapping or freeing a component never leaves the
// table pointing at stale bytes.
type Bus struct {
	table [AddressSpace]binding

	// components[h-1] is the component with handle h
	components []*memory.Component
	handles    map[*memory.Component]uint16

	listeners []Listener
}

// NewBus returns an empty bus; every address reads as OpenBus.
func NewBus() *Bus {
	return &Bus{
		handles: make(map[*memory.Component]uint16),
	}
}

// checkWindow validates mapping [start, end] of c at the given offset.
func checkWindow(c *memory.Component, start, end uint16, offset uint32) error {
	if c == nil {
		return errors.New(errors.NullReference, "nil component")
	}
	if start > end {
		return errors.New(errors.Address, "start %#04x is after end %#04x", start, end)
	}
	if c.Memory() == nil || c.Size() == 0 {
		return errors.New(errors.NullReference, "component has no memory")
	}
	if size := int(end) - int(start) + 1; int(offset)+size > c.Size() {
		return errors.New(errors.Address, "window of %d bytes at offset %#x exceeds component memory of %d bytes", size, offset, c.Size())
	}
	return nil
}

// Plug maps c onto [start, end], from the first byte of its memory.
// Plugging fails, without binding anything, when any address in the
// range is already occupied.
func (b *Bus) Plug(c *memory.Component, start, end uint16) error {
	if err := checkWindow(c, start, end, 0); err != nil {
		return err
	}
	for addr := int(start); addr <= int(end); addr++ {
		if b.table[addr].handle != 0 {
			return errors.New(errors.Address, "address %#04x is already occupied", addr)
		}
	}

	b.bind(c, start, end, 0)
	return nil
}

// ForcedPlug maps c onto [start, end] from the given offset into its
// memory, replacing whatever was bound there.
func (b *Bus) ForcedPlug(c *memory.Component, start, end uint16, offset uint32) error {
	if err := checkWindow(c, start, end, offset); err != nil {
		return err
	}

	b.bind(c, start, end, offset)
	return nil
}

// Remap rebinds the addresses c currently owns to a new offset into its
// memory, keeping its window. This is how bank switching is performed.
func (b *Bus) Remap(c *memory.Component, offset uint32) error {
	if c == nil {
		return errors.New(errors.NullReference, "nil component")
	}
	h, ok := b.handles[c]
	if !ok {
		return errors.New(errors.Address, "component is not plugged")
	}
	if err := checkWindow(c, c.Start, c.End, offset); err != nil {
		return err
	}

	for addr := int(c.Start); addr <= int(c.End); addr++ {
		if b.table[addr].handle == h {
			b.table[addr].offset = offset + uint32(addr-int(c.Start))
		}
	}
	return nil
}

// Unplug removes the bindings of c and resets its window. Addresses
// in its window that were taken over by another component are left to
// that component.
func (b *Bus) Unplug(c *memory.Component) error {
	if c == nil {
		return errors.New(errors.NullReference, "nil component")
	}
	if h, ok := b.handles[c]; ok {
		b.clear(c, h)
		b.components[h-1] = nil
		delete(b.handles, c)
	}
	c.Start, c.End = 0, 0
	return nil
}

// bind assigns a handle to c, if needed, and binds [start, end].
func (b *Bus) bind(c *memory.Component, start, end uint16, offset uint32) {
	h, ok := b.handles[c]
	if ok {
		// drop the previous window before taking the new one
		b.clear(c, h)
	} else {
		h = b.allocate(c)
	}

	for addr := int(start); addr <= int(end); addr++ {
		b.table[addr] = binding{handle: h, offset: offset + uint32(addr-int(start))}
	}
	c.Start, c.End = start, end
}

// clear unbinds the addresses of c's window still owned by handle h.
func (b *Bus) clear(c *memory.Component, h uint16) {
	for addr := int(c.Start); addr <= int(c.End); addr++ {
		if b.table[addr].handle == h {
			b.table[addr] = binding{}
		}
	}
}

// allocate returns a free handle for c.
func (b *Bus) allocate(c *memory.Component) uint16 {
	for i, slot := range b.components {
		if slot == nil {
			b.components[i] = c
			b.handles[c] = uint16(i + 1)
			return uint16(i + 1)
		}
	}
	b.components = append(b.components, c)
	h := uint16(len(b.components))
	b.handles[c] = h
	return h
}

// resolve returns the storage and offset bound to addr.
func (b *Bus) resolve(addr uint16) ([]byte, uint32, bool) {
	bd := b.table[addr]
	if bd.handle == 0 {
		return nil, 0, false
	}
	data := b.components[bd.handle-1].Bytes()
	if int(bd.offset) >= len(data) {
		return nil, 0, false
	}
	return data, bd.offset, true
}

// Owner returns the component bound to addr, or nil.
func (b *Bus) Owner(addr uint16) *memory.Component {
	if h := b.table[addr].handle; h != 0 {
		return b.components[h-1]
	}
	return nil
}

// Read returns the byte bound to addr, or OpenBus when nothing is.
func (b *Bus) Read(addr uint16) uint8 {
	data, off, ok := b.resolve(addr)
	if !ok {
		return OpenBus
	}
	return data[off]
}

// Write stores value at addr.
func (b *Bus) Write(addr uint16, value uint8) error {
	data, off, ok := b.resolve(addr)
	if !ok {
		return errors.New(errors.Address, "write to unbound address %#04x", addr)
	}
	data[off] = value
	return nil
}

// Read16 reads a little endian 16-bit value from addr and addr+1.
func (b *Bus) Read16(addr uint16) (uint16, error) {
	if addr == AddressSpace-1 {
		return 0, errors.New(errors.Address, "16-bit read at %#04x crosses the top of the address space", addr)
	}
	lo, loOff, ok := b.resolve(addr)
	if !ok {
		return 0, errors.New(errors.Address, "16-bit read of unbound address %#04x", addr)
	}
	hi, hiOff, ok := b.resolve(addr + 1)
	if !ok {
		return 0, errors.New(errors.Address, "16-bit read of unbound address %#04x", addr+1)
	}
	return uint16(hi[hiOff])<<8 | uint16(lo[loOff]), nil
}

// Write16 writes value little endian to addr and addr+1. Nothing is
// written unless both addresses are bound.
func (b *Bus) Write16(addr uint16, value uint16) error {
	if addr == AddressSpace-1 {
		return errors.New(errors.Address, "16-bit write at %#04x crosses the top of the address space", addr)
	}
	lo, loOff, ok := b.resolve(addr)
	if !ok {
		return errors.New(errors.Address, "16-bit write to unbound address %#04x", addr)
	}
	hi, hiOff, ok := b.resolve(addr + 1)
	if !ok {
		return errors.New(errors.Address, "16-bit write to unbound address %#04x", addr+1)
	}
	lo[loOff] = uint8(value)
	hi[hiOff] = uint8(value >> 8)
	return nil
}

// Listen registers l to be notified of CPU writes.
func (b *Bus) Listen(l Listener) {
	b.listeners = append(b.listeners, l)
}

// Notify passes addr to every listener, in registration order,
// stopping at the first error.
func (b *Bus) Notify(addr uint16) error {
	for _, l := range b.listeners {
		if err := l(addr); err != nil {
			return err
		}
	}
	return nil
}
