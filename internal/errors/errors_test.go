package errors_test

import (
	"fmt"
	"testing"

	"github.com/thelolagemann/gbcore/internal/errors"
)

func TestError(t *testing.T) {
	e := errors.New(errors.Address, "address %#04x is unbound", 0xA000)
	if e.Error() != "address error: address 0xa000 is unbound" {
		t.Errorf("unexpected error message: %s", e)
	}

	// wrapping errors of the same kind drops the duplicate prefix
	f := errors.Wrap(errors.Address, e, "write16")
	if f.Error() != "address error: write16: address 0xa000 is unbound" {
		t.Errorf("unexpected duplicate error message: %s", f)
	}

	g := errors.Wrap(errors.Instruction, e, "dispatch")
	if g.Error() != "instruction error: dispatch: address error: address 0xa000 is unbound" {
		t.Errorf("unexpected wrapped error message: %s", g)
	}
}

func TestIs(t *testing.T) {
	e := errors.New(errors.BadParameter, "bit index %d", 9)
	if !errors.Is(e, errors.BadParameter) {
		t.Errorf("expected bad parameter")
	}
	if errors.Is(e, errors.Address) {
		t.Errorf("did not expect address error")
	}

	// kinds are found through foreign wrappers too
	w := fmt.Errorf("cycle 12: %w", errors.Wrap(errors.Instruction, e, "decode"))
	if !errors.Is(w, errors.Instruction) || !errors.Is(w, errors.BadParameter) {
		t.Errorf("expected both kinds in chain of %v", w)
	}
	if errors.Is(nil, errors.IO) {
		t.Errorf("nil is never an error kind")
	}
	if errors.Wrap(errors.IO, nil, "noop") != nil {
		t.Errorf("expected wrapping nil to return nil")
	}
}
