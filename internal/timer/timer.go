// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/bits"
)

// TicksPerCycle is the number of T-cycles the internal counter
// advances by every machine cycle.
const TicksPerCycle = 4

// Interrupter receives the timer interrupt.
type Interrupter interface {
	RequestInterrupt(k interrupts.Kind) error
}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The DIV, TIMA, TMA and TAC
// registers live on the bus; the controller only keeps the internal
// counter DIV is derived from.
type Controller struct {
	counter uint16
	lastBit bool

	bus *mmu.Bus
	irq Interrupter
}

// NewController returns a new timer controller.
func NewController(bus *mmu.Bus, irq Interrupter) (*Controller, error) {
	if bus == nil || irq == nil {
		return nil, errors.New(errors.NullReference, "timer requires a bus and an interrupt target")
	}
	return &Controller{bus: bus, irq: irq}, nil
}

// Counter returns the internal counter.
func (c *Controller) Counter() uint16 {
	return c.counter
}

// Cycle advances the timer by one machine cycle.
func (c *Controller) Cycle() error {
	c.counter += TicksPerCycle
	if err := c.bus.Write(types.DIV, bits.Msb8(c.counter)); err != nil {
		return err
	}
	return c.update()
}

// BusListener reacts to writes to the timer registers: a write to DIV
// resets the counter, and both DIV and TAC writes may produce a
// falling edge.
func (c *Controller) BusListener(addr uint16) error {
	switch addr {
	case types.DIV:
		c.counter = 0
		if err := c.bus.Write(types.DIV, 0); err != nil {
			return err
		}
		return c.update()
	case types.TAC:
		return c.update()
	}
	return nil
}

// selectedBits holds the counter bit watched for each TAC frequency
// (4096, 262144, 65536 and 16384 Hz).
var selectedBits = [4]uint8{9, 3, 5, 7}

// update increments TIMA on a falling edge of the timer enable bit
// ANDed with the counter bit selected by TAC.
func (c *Controller) update() error {
	tac := c.bus.Read(types.TAC)
	bit, err := bits.Test(c.counter, selectedBits[tac&0x03])
	if err != nil {
		return err
	}
	current := tac&types.Bit2 != 0 && bit

	falling := c.lastBit && !current
	c.lastBit = current
	if !falling {
		return nil
	}
	return c.increment()
}

// increment increments TIMA, reloading it from TMA and requesting an
// interrupt when it overflows.
func (c *Controller) increment() error {
	tima := c.bus.Read(types.TIMA)
	if tima != 0xFF {
		return c.bus.Write(types.TIMA, tima+1)
	}

	if err := c.bus.Write(types.TIMA, c.bus.Read(types.TMA)); err != nil {
		return err
	}
	return c.irq.RequestInterrupt(interrupts.Timer)
}
