package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// DIV is the address of the DIV hardware register. The DIV
	// hardware register mirrors the upper byte of the timer's
	// internal 16-bit counter. Writing any value to it resets the
	// counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is the address of the TIMA hardware register. The TIMA
	// hardware register is incremented at a rate specified by the TAC
	// hardware register. When TIMA overflows, it is reset to the value
	// specified by the TMA hardware register, and a timer interrupt is
	// requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the address of the TMA hardware register. The TMA
	// hardware register is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC is the address of the TAC hardware register. The TAC
	// hardware register is used to control the timer.
	//
	//  Bit 2: Timer Enable
	//  Bit 1-0: Counter bit select (00 = bit 9, 01 = bit 3,
	//           10 = bit 5, 11 = bit 7)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// BDIS is the address of the BDIS hardware register. Writing to
	// this register while the boot ROM is mapped unmaps it and maps
	// the cartridge in its place.
	BDIS HardwareAddress = 0xFF50
	// IE is the address of the IE hardware register. The IE hardware
	// register is used to enable interrupts. Bit layout matches IF.
	IE HardwareAddress = 0xFFFF
)

// Region is an inclusive range of the address space.
type Region struct {
	Start uint16
	End   uint16
}

// Size returns the number of addresses covered by the region.
func (r Region) Size() int {
	return int(r.End) - int(r.Start) + 1
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

// The memory map of the machine.
var (
	BootROM     = Region{0x0000, 0x00FF}
	BankROM0    = Region{0x0000, 0x3FFF}
	BankROM1    = Region{0x4000, 0x7FFF}
	BankROM     = Region{BankROM0.Start, BankROM1.End}
	VideoRAM    = Region{0x8000, 0x9FFF}
	ExternalRAM = Region{0xA000, 0xBFFF}
	WorkRAM     = Region{0xC000, 0xDFFF}
	EchoRAM     = Region{0xE000, 0xFDFF}
	GraphicsRAM = Region{0xFE00, 0xFE9F}
	Unusable    = Region{0xFEA0, 0xFEFF}
	Registers   = Region{0xFF00, 0xFF7F}
	HighRAM     = Region{0xFF80, 0xFFFE}
)
