package log

import "testing"

func TestNewWithLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "error"} {
		if _, err := NewWithLevel(level); err != nil {
			t.Errorf("expected level %q to parse, got %v", level, err)
		}
	}
	if _, err := NewWithLevel("loud"); err == nil {
		t.Errorf("expected unknown level to fail")
	}
}
