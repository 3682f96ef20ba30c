// Package boot provides a boot ROM implementation for the Game Boy. Whilst
// this package is not strictly required for the emulator to function, it
// can be used to emulate the boot process of the Game Boy.
package boot

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// ROM represents a boot ROM for the Game Boy. When the Game Boy first
// powers on, the boot ROM is mapped over the cartridge at memory
// addresses 0x0000 - 0x00FF.
//
// The boot ROM performs a series of tasks, such as initializing the
// hardware, setting the stack pointer, scrolling the Nintendo logo, etc.
//
// Once the boot ROM has completed its tasks, it is unmapped from memory
// (by writing to the types.BDIS register), and the cartridge is mapped
// over the boot ROM, thus starting the cartridge execution, and preventing
// the boot ROM from being executed again.
type ROM struct {
	component *memory.Component
	checksum  string // the MD5 checksum of the boot rom
}

// LoadBootROM loads a boot ROM into a new component. The boot ROM
// must be exactly 256 bytes long.
func LoadBootROM(b []byte) (*ROM, error) {
	c, err := memory.NewComponent(types.BootROM.Size())
	if err != nil {
		return nil, err
	}
	if err := c.Load(b); err != nil {
		_ = c.Free()
		return nil, errors.Wrap(errors.BadParameter, err, "invalid boot rom length: %d", len(b))
	}

	// calculate checksum
	sum := md5.Sum(b)
	return &ROM{
		component: c,
		checksum:  hex.EncodeToString(sum[:]),
	}, nil
}

// Component returns the component holding the boot ROM.
func (b *ROM) Component() *memory.Component {
	return b.component
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the model of the boot rom. The model
// is determined by the checksum of the boot rom.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

// knownBootROMChecksums is a map of known boot rom checksums,
// with the key being the checksum, and the value being the
// model of the boot rom.
var knownBootROMChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
	SGB:  "Super Game Boy",
	SGB2: "Super Game Boy 2",
}

const (
	// DMG0 is the checksum of the DMG early boot ROM,
	// a variant that was found in very early DMG units and
	// only ever sold in Japan.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG boot rom, which is
	// the most common boot ROM found in the original DMG-01
	// models.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the MGB boot ROM, which differs
	// only by a single byte from the DMG boot ROM, loading
	// the value 0xFF into the A register, rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
	// SGB is the checksum of the SGB boot ROM.
	SGB = "d574d4f9c12f305074798f54c091a8b4"
	// SGB2 is the checksum of the SGB2 boot ROM, differing
	// from the SGB boot ROM by the same single byte as the
	// MGB boot ROM does from the DMG boot ROM.
	SGB2 = "e0430bca9925fb9882148fd2dc2418c1"
)

// Controller maps the boot ROM over the cartridge, and swaps the
// cartridge back in once the boot ROM writes to types.BDIS.
type Controller struct {
	rom  *ROM
	cart *memory.Component
	bus  *mmu.Bus
	log  log.Logger

	enabled bool
}

// NewController returns a controller for the given boot ROM and
// cartridge component.
func NewController(bus *mmu.Bus, rom *ROM, cart *memory.Component, logger log.Logger) (*Controller, error) {
	if bus == nil || rom == nil || cart == nil {
		return nil, errors.New(errors.NullReference, "boot controller requires a bus, a boot rom and a cartridge")
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Controller{rom: rom, cart: cart, bus: bus, log: logger}, nil
}

// Map plugs the boot ROM over the cartridge and enters boot mode.
func (c *Controller) Map() error {
	if err := c.bus.ForcedPlug(c.rom.component, types.BootROM.Start, types.BootROM.End, 0); err != nil {
		return err
	}
	c.enabled = true
	c.log.Debugf("boot: mapped %s boot rom", c.rom.Model())
	return nil
}

// Enabled reports whether the boot ROM is mapped.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// BusListener unmaps the boot ROM on the first write to types.BDIS.
func (c *Controller) BusListener(addr uint16) error {
	if addr != types.BDIS || !c.enabled {
		return nil
	}

	if err := c.bus.Unplug(c.rom.component); err != nil {
		return err
	}
	if err := c.bus.ForcedPlug(c.cart, types.BankROM.Start, types.BankROM.End, 0); err != nil {
		return err
	}
	c.enabled = false
	c.log.Debugf("boot: unmapped boot rom")
	return nil
}

// Close frees the boot ROM.
func (c *Controller) Close() error {
	if err := c.bus.Unplug(c.rom.component); err != nil {
		return err
	}
	return c.rom.component.Free()
}
