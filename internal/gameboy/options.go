package gameboy

import (
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance before its hardware is built.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the machine and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM sets the boot ROM for the emulator. The boot ROM is
// mapped over the cartridge until it writes to the boot disable
// register.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}
