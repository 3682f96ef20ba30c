// Package cpu implements the Sharp LR35902 CPU of the Game Boy.
//
// The CPU is stepped one machine cycle at a time. A multi-cycle
// instruction executes entirely on its first cycle, and the CPU then
// idles for the remaining cycles of its cost.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// InterruptCycles is the cost of servicing an interrupt.
const InterruptCycles = 5

// CPU represents the Gameboy CPU. It is responsible for executing
// instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable.
	IME bool

	halted bool
	idle   uint8

	bus *mmu.Bus
	log log.Logger

	// interruptFlag (IF), interruptEnable (IE) and the high RAM are
	// owned by the CPU
	interruptFlag   *memory.Component
	interruptEnable *memory.Component
	highRAM         *memory.Component

	// addresses written since the last call to Writes
	writes []uint16
}

// NewCPU creates a new CPU instance using the given bus for every
// memory access, with all registers zeroed.
func NewCPU(bus *mmu.Bus, logger log.Logger) (*CPU, error) {
	if bus == nil {
		return nil, errors.New(errors.NullReference, "cpu requires a bus")
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}

	c := &CPU{bus: bus, log: logger}
	var err error
	if c.interruptFlag, err = memory.NewComponent(1); err != nil {
		return nil, err
	}
	if c.interruptEnable, err = memory.NewComponent(1); err != nil {
		return nil, err
	}
	if c.highRAM, err = memory.NewComponent(types.HighRAM.Size()); err != nil {
		return nil, err
	}
	return c, nil
}

// Plug maps the CPU owned registers onto the bus. IF is overlaid on
// whatever occupies its address, so the I/O register block must be
// plugged first.
func (c *CPU) Plug() error {
	if err := c.bus.ForcedPlug(c.interruptFlag, types.IF, types.IF, 0); err != nil {
		return errors.Wrap(errors.Address, err, "plug IF")
	}
	if err := c.bus.Plug(c.interruptEnable, types.IE, types.IE); err != nil {
		return errors.Wrap(errors.Address, err, "plug IE")
	}
	if err := c.bus.Plug(c.highRAM, types.HighRAM.Start, types.HighRAM.End); err != nil {
		return errors.Wrap(errors.Address, err, "plug high RAM")
	}
	return nil
}

// Close unplugs and frees the CPU owned components.
func (c *CPU) Close() error {
	for _, comp := range []*memory.Component{c.interruptFlag, c.interruptEnable, c.highRAM} {
		if err := c.bus.Unplug(comp); err != nil {
			return err
		}
		if err := comp.Free(); err != nil {
			return err
		}
	}
	return nil
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Idle returns the number of cycles left before the next fetch.
func (c *CPU) Idle() uint8 {
	return c.idle
}

// IF returns the interrupt flag register.
func (c *CPU) IF() uint8 {
	return c.interruptFlag.Bytes()[0]
}

// IE returns the interrupt enable register.
func (c *CPU) IE() uint8 {
	return c.interruptEnable.Bytes()[0]
}

// RequestInterrupt requests the given interrupt by setting its bit in
// IF. It is the only way for other hardware to interrupt the CPU.
func (c *CPU) RequestInterrupt(k interrupts.Kind) error {
	if err := interrupts.Check(k); err != nil {
		return err
	}
	c.interruptFlag.Bytes()[0] |= k.Flag()
	return nil
}

// Writes returns the addresses written by the CPU since the previous
// call, in order.
func (c *CPU) Writes() []uint16 {
	w := c.writes
	c.writes = nil
	return w
}

func (c *CPU) hasInterrupts() bool {
	return c.IF()&c.IE()&interrupts.Mask != 0
}

// Cycle advances the CPU by one machine cycle.
func (c *CPU) Cycle() error {
	if c.idle > 0 {
		c.idle--
		return nil
	}

	if c.halted {
		if !c.hasInterrupts() {
			return nil
		}
		c.halted = false
	}

	if c.IME && c.hasInterrupts() {
		return c.executeInterrupt()
	}
	return c.step()
}

// executeInterrupt services the highest priority pending interrupt.
func (c *CPU) executeInterrupt() error {
	k, ok := interrupts.Pending(c.IF(), c.IE())
	if !ok {
		return nil
	}

	// the request stays pending if the return address cannot be pushed
	if err := c.push(c.PC); err != nil {
		return err
	}
	c.IME = false
	c.interruptFlag.Bytes()[0] &^= k.Flag()
	c.PC = k.Vector()
	c.idle = InterruptCycles - 1
	return nil
}

// Peek decodes the instruction at PC without executing it.
func (c *CPU) Peek() Instruction {
	op := c.bus.Read(c.PC)
	if op == prefixCB {
		return InstructionSetCB[c.bus.Read(c.PC+1)]
	}
	return InstructionSet[op]
}

// step fetches, decodes and executes the instruction at PC.
func (c *CPU) step() error {
	instruction := c.Peek()
	if !instruction.Defined() {
		op := c.bus.Read(c.PC)
		c.log.Debugf("unknown opcode 0x%02X at 0x%04X", op, c.PC)
		return errors.New(errors.Instruction, "unknown opcode 0x%02X at 0x%04X", op, c.PC)
	}

	jumped, err := c.dispatch(instruction)
	if err != nil {
		return err
	}

	cost := instruction.Cycles
	if jumped {
		cost += instruction.Xtra
	} else {
		c.PC += uint16(instruction.Bytes)
	}
	c.idle = cost - 1
	return nil
}

func (c *CPU) String() string {
	return fmt.Sprintf("A: %02X F: %s B: %02X C: %02X D: %02X E: %02X H: %02X L: %02X SP: %04X PC: %04X IME: %t",
		c.Register(A), c.Flags(), c.Register(B), c.Register(C), c.Register(D), c.Register(E),
		c.Register(H), c.Register(L), c.SP, c.PC, c.IME)
}
