// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy owns every piece of the machine and is advanced one
// machine cycle at a time by Cycle or RunUntil. Each cycle steps the
// timer, then the CPU, then notifies the bus listeners of every
// address the CPU wrote to.
package gameboy

import (
	"time"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of machine cycles per frame.
	CyclesPerFrame = 70224 / timer.TicksPerCycle
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	Bus       *mmu.Bus
	Timer     *timer.Controller
	Cartridge *cartridge.Cartridge

	log.Logger

	boot    *boot.Controller
	bootROM []byte

	// components owned by the machine, and views over them
	components []*memory.Component
	views      []*memory.Component
	videoRAM   *memory.Component

	cycles uint64
	fault  error
	closed bool
}

// memoryMap lists the memory only regions the machine plugs into the
// bus. Work RAM is mirrored by the echo RAM.
var memoryMap = []types.Region{
	types.VideoRAM,
	types.ExternalRAM,
	types.WorkRAM,
	types.GraphicsRAM,
	types.Unusable,
	types.Registers,
}

// NewGameBoy returns a new GameBoy running the given cartridge ROM. On
// failure, everything built so far is released.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Bus: mmu.NewBus(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.Logger == nil {
		g.Logger = log.New()
	}

	if err := g.build(rom); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func (g *GameBoy) build(rom []byte) error {
	var err error
	if g.Cartridge, err = cartridge.NewCartridge(rom, g.Logger); err != nil {
		return err
	}
	if err := g.Bus.ForcedPlug(g.Cartridge.Component(), types.BankROM.Start, types.BankROM.End, 0); err != nil {
		return err
	}

	for _, region := range memoryMap {
		c, err := memory.NewComponent(region.Size())
		if err != nil {
			return err
		}
		g.components = append(g.components, c)
		if err := g.Bus.Plug(c, region.Start, region.End); err != nil {
			return errors.Wrap(errors.Address, err, "plug %04X-%04X", region.Start, region.End)
		}

		switch region {
		case types.VideoRAM:
			g.videoRAM = c
		case types.WorkRAM:
			echo, err := memory.NewView(c)
			if err != nil {
				return err
			}
			g.views = append(g.views, echo)
			if err := g.Bus.Plug(echo, types.EchoRAM.Start, types.EchoRAM.End); err != nil {
				return errors.Wrap(errors.Address, err, "plug echo RAM")
			}
		}
	}

	// the CPU overlays IF on the register block
	if g.CPU, err = cpu.NewCPU(g.Bus, g.Logger); err != nil {
		return err
	}
	if err := g.CPU.Plug(); err != nil {
		return err
	}
	if g.Timer, err = timer.NewController(g.Bus, g.CPU); err != nil {
		return err
	}

	if g.bootROM != nil {
		rom, err := boot.LoadBootROM(g.bootROM)
		if err != nil {
			return errors.Wrap(errors.IO, err, "boot rom")
		}
		if g.boot, err = boot.NewController(g.Bus, rom, g.Cartridge.Component(), g.Logger); err != nil {
			return err
		}
		if err := g.boot.Map(); err != nil {
			return err
		}
		g.Infof("boot: %s boot rom (%s)", rom.Model(), rom.Checksum())
		g.Bus.Listen(g.boot.BusListener)
	}
	g.Bus.Listen(g.Timer.BusListener)
	return nil
}

// Cycle advances the machine by one machine cycle. Once a cycle has
// failed the machine is halted, and every later call returns the same
// error.
func (g *GameBoy) Cycle() error {
	if g.fault != nil {
		return g.fault
	}
	if g.closed {
		return errors.New(errors.NullReference, "machine is closed")
	}

	if err := g.Timer.Cycle(); err != nil {
		return g.halt(err)
	}
	if err := g.CPU.Cycle(); err != nil {
		return g.halt(err)
	}
	for _, addr := range g.CPU.Writes() {
		if err := g.Bus.Notify(addr); err != nil {
			return g.halt(err)
		}
	}

	g.cycles++
	return nil
}

// RunUntil cycles the machine until Cycles reaches cycle, or a cycle
// fails.
func (g *GameBoy) RunUntil(cycle uint64) error {
	for g.cycles < cycle {
		if err := g.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Frame runs the machine for the duration of one frame.
func (g *GameBoy) Frame() error {
	return g.RunUntil(g.cycles + CyclesPerFrame)
}

func (g *GameBoy) halt(err error) error {
	g.fault = err
	g.Errorf("halted at cycle %d (PC 0x%04X): %v", g.cycles, g.CPU.PC, err)
	return err
}

// Cycles returns the number of completed machine cycles.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Elapsed returns the emulated time of the completed machine cycles.
func (g *GameBoy) Elapsed() time.Duration {
	return time.Duration(float64(g.cycles*timer.TicksPerCycle) / ClockSpeed * float64(time.Second))
}

// Fault returns the error that halted the machine, if any.
func (g *GameBoy) Fault() error {
	return g.fault
}

// Booting reports whether the boot ROM is still mapped.
func (g *GameBoy) Booting() bool {
	return g.boot != nil && g.boot.Enabled()
}

// VideoRAM returns the video RAM, for a display to render from.
func (g *GameBoy) VideoRAM() []byte {
	return g.videoRAM.Bytes()
}

// Close unplugs and frees every component, views before the memory
// they share.
func (g *GameBoy) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	var owned []*memory.Component
	owned = append(owned, g.views...)
	owned = append(owned, g.components...)
	for _, c := range owned {
		if err := g.Bus.Unplug(c); err != nil {
			return err
		}
		if err := c.Free(); err != nil {
			return err
		}
	}

	if g.CPU != nil {
		if err := g.CPU.Close(); err != nil {
			return err
		}
	}
	if g.boot != nil {
		if err := g.boot.Close(); err != nil {
			return err
		}
	}
	if g.Cartridge != nil {
		if err := g.Bus.Unplug(g.Cartridge.Component()); err != nil {
			return err
		}
		return g.Cartridge.Close()
	}
	return nil
}
