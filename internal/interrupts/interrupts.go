// Package interrupts describes the five interrupt sources of the Game
// Boy and the IF/IE registers used to request and enable them.
//
// When an interrupt is requested, the corresponding bit in the Flag
// register is set. When an interrupt is enabled, the corresponding bit
// in the Enable register is set. When an interrupt is requested and
// enabled, and the IME is set, the CPU jumps to the interrupt vector
// and the corresponding bit in the Flag register is cleared.
package interrupts

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Kind is an interrupt source. Its value is the bit index of the
// source in IF and IE, and its priority: lower kinds are serviced
// first.
type Kind uint8

const (
	// VBlank is requested every time the PPU enters VBlank.
	VBlank Kind = iota
	// LCDStat is requested by the LCD STAT register when certain
	// conditions are met.
	LCDStat
	// Timer is requested when TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when a selected button is pressed.
	Joypad

	count
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1).
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3).
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt flag (bit 4).
	JoypadFlag = types.Bit4

	// Mask covers the bits of IF and IE that have a source.
	Mask = 0x1F

	// vectorBase is the handler address of VBlank.
	vectorBase = 0x0040
)

var names = [count]string{"VBlank", "LCDStat", "Timer", "Serial", "Joypad"}

// Valid reports whether k names one of the five sources.
func (k Kind) Valid() bool {
	return k < count
}

// Flag returns the IF/IE bit of k.
func (k Kind) Flag() uint8 {
	return 1 << k
}

// Vector returns the handler address of k.
func (k Kind) Vector() uint16 {
	return vectorBase + 8*uint16(k)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return names[k]
}

// Check returns a BadParameter error for an unknown kind.
func Check(k Kind) error {
	if !k.Valid() {
		return errors.New(errors.BadParameter, "unknown interrupt %d", uint8(k))
	}
	return nil
}

// Pending returns the highest priority interrupt that is both requested
// in flag and enabled in enable. ok is false when there is none.
func Pending(flag, enable uint8) (k Kind, ok bool) {
	pending := flag & enable & Mask
	if pending == 0 {
		return 0, false
	}
	for k = VBlank; k < count; k++ {
		if pending&k.Flag() != 0 {
			return k, true
		}
	}
	return 0, false
}
