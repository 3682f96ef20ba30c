// Package cartridge loads game cartridges. Only ROM only cartridges of
// two banks are supported; the cartridge holds the game ROM in a
// component that is plugged at 0x0000 - 0x7FFF.
package cartridge

import (
	"github.com/cespare/xxhash"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Size is the size of a ROM only cartridge.
var Size = types.BankROM.Size()

// Cartridge represents a basic game cartridge.
type Cartridge struct {
	component   *memory.Component
	header      Header
	fingerprint uint64
}

// NewCartridge copies rom into a new cartridge.
func NewCartridge(rom []byte, logger log.Logger) (*Cartridge, error) {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	if len(rom) != Size {
		return nil, errors.New(errors.BadParameter, "expected a cartridge of %d bytes, got %d", Size, len(rom))
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header, err := parseHeader(rom[0x100:0x150])
	if err != nil {
		return nil, err
	}
	if header.CartridgeType != ROM {
		return nil, errors.New(errors.NotImplemented, "cartridge type %s", header.CartridgeType)
	}

	c, err := memory.NewComponent(Size)
	if err != nil {
		return nil, err
	}
	if err := c.Load(rom); err != nil {
		return nil, err
	}

	cart := &Cartridge{
		component:   c,
		header:      header,
		fingerprint: xxhash.Sum64(rom),
	}
	logger.Infof("cartridge: %s | fingerprint: %016x", header.String(), cart.fingerprint)
	return cart, nil
}

// ReadFile reads a ROM image (cartridge or boot ROM) from a file,
// which may be compressed.
func ReadFile(filename string) ([]byte, error) {
	rom, err := utils.LoadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.IO, err, "read %s", filename)
	}
	return rom, nil
}

// Component returns the component holding the ROM.
func (c *Cartridge) Component() *memory.Component {
	return c.component
}

func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Fingerprint returns the xxhash of the ROM, which identifies a dump
// regardless of its header.
func (c *Cartridge) Fingerprint() uint64 {
	return c.fingerprint
}

// Close frees the cartridge ROM. It must be unplugged first.
func (c *Cartridge) Close() error {
	return c.component.Free()
}
