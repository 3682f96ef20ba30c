package timer

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/errors"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/memory"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

type requests []interrupts.Kind

func (r *requests) RequestInterrupt(k interrupts.Kind) error {
	*r = append(*r, k)
	return nil
}

func newTestController(t *testing.T) (*Controller, *mmu.Bus, *requests) {
	t.Helper()
	bus := mmu.NewBus()
	regs, err := memory.NewComponent(types.Registers.Size())
	if err != nil {
		t.Fatal(err)
	}
	if err := bus.Plug(regs, types.Registers.Start, types.Registers.End); err != nil {
		t.Fatal(err)
	}
	irq := &requests{}
	c, err := NewController(bus, irq)
	if err != nil {
		t.Fatal(err)
	}
	return c, bus, irq
}

func cycle(t *testing.T, c *Controller, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := c.Cycle(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestController_DIV(t *testing.T) {
	c, bus, _ := newTestController(t)
	cycle(t, c, 64)
	if bus.Read(types.DIV) != 0x01 {
		t.Errorf("expected DIV to be 0x01, got 0x%02X", bus.Read(types.DIV))
	}
	cycle(t, c, 64*0xFF)
	if bus.Read(types.DIV) != 0x00 || c.Counter() != 0 {
		t.Errorf("expected DIV to wrap, got 0x%02X", bus.Read(types.DIV))
	}

	cycle(t, c, 100)
	_ = bus.Write(types.DIV, 0x42)
	if err := c.BusListener(types.DIV); err != nil {
		t.Fatal(err)
	}
	if bus.Read(types.DIV) != 0x00 || c.Counter() != 0 {
		t.Errorf("expected writes to DIV to reset the counter, got 0x%04X", c.Counter())
	}
}

func TestController_Overflow(t *testing.T) {
	c, bus, irq := newTestController(t)
	_ = bus.Write(types.TAC, 0x05) // enabled, bit 3
	_ = bus.Write(types.TMA, 0x80)
	_ = bus.Write(types.TIMA, 0xFE)

	// bit 3 falls every 16 T-cycles
	cycle(t, c, 4)
	if bus.Read(types.TIMA) != 0xFF {
		t.Fatalf("expected TIMA to be 0xFF, got 0x%02X", bus.Read(types.TIMA))
	}
	if len(*irq) != 0 {
		t.Fatalf("expected no interrupt yet, got %v", *irq)
	}

	cycle(t, c, 4)
	if bus.Read(types.TIMA) != 0x80 {
		t.Errorf("expected TIMA to be reloaded with 0x80, got 0x%02X", bus.Read(types.TIMA))
	}
	if len(*irq) != 1 || (*irq)[0] != interrupts.Timer {
		t.Errorf("expected exactly one timer interrupt, got %v", *irq)
	}

	cycle(t, c, 8)
	if bus.Read(types.TIMA) != 0x82 || len(*irq) != 1 {
		t.Errorf("expected TIMA 0x82 and one interrupt, got 0x%02X and %d", bus.Read(types.TIMA), len(*irq))
	}
}

func TestController_Frequencies(t *testing.T) {
	for tac, period := range map[uint8]int{0x04: 256, 0x05: 4, 0x06: 16, 0x07: 64} {
		c, bus, _ := newTestController(t)
		_ = bus.Write(types.TAC, tac)
		cycle(t, c, period*10)
		if bus.Read(types.TIMA) != 10 {
			t.Errorf("expected TAC 0x%02X to count 10 in %d cycles, got %d", tac, period*10, bus.Read(types.TIMA))
		}
	}
}

func TestController_Disabled(t *testing.T) {
	c, bus, _ := newTestController(t)
	_ = bus.Write(types.TAC, 0x01)
	cycle(t, c, 1000)
	if bus.Read(types.TIMA) != 0 {
		t.Errorf("expected disabled timer to keep TIMA, got 0x%02X", bus.Read(types.TIMA))
	}
}

func TestController_TACEdge(t *testing.T) {
	c, bus, _ := newTestController(t)
	_ = bus.Write(types.TAC, 0x05)
	cycle(t, c, 2) // counter 8, bit 3 high

	// disabling the timer while the bit is high is a falling edge
	_ = bus.Write(types.TAC, 0x01)
	if err := c.BusListener(types.TAC); err != nil {
		t.Fatal(err)
	}
	if bus.Read(types.TIMA) != 1 {
		t.Errorf("expected TIMA to be incremented, got 0x%02X", bus.Read(types.TIMA))
	}
}

func TestController_DIVEdge(t *testing.T) {
	c, bus, _ := newTestController(t)
	_ = bus.Write(types.TAC, 0x05)
	cycle(t, c, 2) // counter 8, bit 3 high

	// resetting the counter while the bit is high is a falling edge
	_ = bus.Write(types.DIV, 0x42)
	if err := c.BusListener(types.DIV); err != nil {
		t.Fatal(err)
	}
	if bus.Read(types.TIMA) != 1 {
		t.Errorf("expected TIMA to be incremented, got 0x%02X", bus.Read(types.TIMA))
	}

	// with the bit already low there is no edge
	cycle(t, c, 1) // counter 4, bit 3 low
	_ = bus.Write(types.DIV, 0x42)
	if err := c.BusListener(types.DIV); err != nil {
		t.Fatal(err)
	}
	if bus.Read(types.TIMA) != 1 {
		t.Errorf("expected TIMA to stay at 1, got 0x%02X", bus.Read(types.TIMA))
	}
}

func TestNewController(t *testing.T) {
	if _, err := NewController(nil, &requests{}); !errors.Is(err, errors.NullReference) {
		t.Errorf("expected null reference, got %v", err)
	}
	c, err := NewController(mmu.NewBus(), &requests{})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Cycle(); !errors.Is(err, errors.Address) {
		t.Errorf("expected address error without registers, got %v", err)
	}
}
