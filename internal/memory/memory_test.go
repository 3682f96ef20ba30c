package memory

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/errors"
)

func TestNewMemory(t *testing.T) {
	m, err := NewMemory(0x2000)
	if err != nil {
		t.Fatal(err)
	}
	if m.Size() != 0x2000 {
		t.Errorf("expected size 0x2000, got 0x%X", m.Size())
	}
	for i, b := range m.Bytes() {
		if b != 0 {
			t.Fatalf("expected zeroed memory, got 0x%02X at %d", b, i)
		}
	}
	if err := m.Free(); err != nil {
		t.Fatal(err)
	}
	if m.Size() != 0 {
		t.Errorf("expected freed memory to be empty")
	}
	if err := m.Free(); err != nil {
		t.Errorf("expected second free to be a no-op, got %v", err)
	}

	if _, err := NewMemory(0); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected bad parameter for zero size, got %v", err)
	}
}

func TestComponent(t *testing.T) {
	t.Run("placeholder", func(t *testing.T) {
		c, err := NewComponent(0)
		if err != nil {
			t.Fatal(err)
		}
		if c.Memory() != nil || c.Size() != 0 {
			t.Errorf("expected placeholder without memory")
		}
		if err := c.Load([]byte{1}); !errors.Is(err, errors.NullReference) {
			t.Errorf("expected null reference, got %v", err)
		}
		if err := c.Free(); err != nil {
			t.Errorf("expected placeholder free to succeed, got %v", err)
		}
	})
	t.Run("load", func(t *testing.T) {
		c, _ := NewComponent(4)
		if err := c.Load([]byte{1, 2, 3}); !errors.Is(err, errors.BadParameter) {
			t.Errorf("expected short load to fail, got %v", err)
		}
		if err := c.Load([]byte{1, 2, 3, 4}); err != nil {
			t.Fatal(err)
		}
		if c.Bytes()[3] != 4 {
			t.Errorf("expected loaded data")
		}
	})
	t.Run("negative", func(t *testing.T) {
		if _, err := NewComponent(-1); !errors.Is(err, errors.BadParameter) {
			t.Errorf("expected bad parameter, got %v", err)
		}
	})
}

func TestView(t *testing.T) {
	owner, _ := NewComponent(0x10)
	view, err := NewView(owner)
	if err != nil {
		t.Fatal(err)
	}
	if !view.IsView() || owner.IsView() {
		t.Errorf("unexpected view flags")
	}
	if n := owner.Memory().Views(); n != 1 {
		t.Errorf("expected 1 view, got %d", n)
	}
	if view.Start != 0 || view.End != 0 {
		t.Errorf("expected fresh view to be unmapped")
	}

	// writes through one are visible through the other
	owner.Bytes()[5] = 0xAB
	if view.Bytes()[5] != 0xAB {
		t.Errorf("expected shared storage")
	}

	// the owner cannot go while the view is alive
	if err := owner.Free(); !errors.Is(err, errors.BadParameter) {
		t.Errorf("expected owner free to be refused, got %v", err)
	}
	view.Start, view.End = 0xE000, 0xE00F
	if err := view.Free(); err != nil {
		t.Fatal(err)
	}
	if view.Start != 0 || view.End != 0 || view.Memory() != nil {
		t.Errorf("expected view to be reset")
	}
	if owner.Size() != 0x10 {
		t.Errorf("expected view free to leave the owner's memory intact")
	}
	if n := owner.Memory().Views(); n != 0 {
		t.Errorf("expected no views after free, got %d", n)
	}
	if err := owner.Free(); err != nil {
		t.Errorf("expected owner free to succeed, got %v", err)
	}

	if _, err := NewView(nil); !errors.Is(err, errors.NullReference) {
		t.Errorf("expected null reference, got %v", err)
	}
	empty, _ := NewComponent(0)
	if _, err := NewView(empty); !errors.Is(err, errors.NullReference) {
		t.Errorf("expected null reference for placeholder source, got %v", err)
	}
}
