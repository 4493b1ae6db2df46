package indicator

import (
	"errors"
	"testing"
)

func TestFakeSetRecordsHistory(t *testing.T) {
	f := NewFakeIndicator()

	if err := f.Set(true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set(false); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if f.On {
		t.Error("On should be false after Set(false)")
	}
	want := []bool{true, false}
	if len(f.History) != len(want) {
		t.Fatalf("history length: got %d, want %d", len(f.History), len(want))
	}
	for i, w := range want {
		if f.History[i] != w {
			t.Errorf("history[%d]: got %v, want %v", i, f.History[i], w)
		}
	}
}

func TestFakeToggleFlips(t *testing.T) {
	f := NewFakeIndicator()

	for i := 0; i < 5; i++ {
		if err := f.Toggle(); err != nil {
			t.Fatalf("Toggle %d: %v", i, err)
		}
	}

	// Odd number of toggles from off ends on.
	if !f.On {
		t.Error("On should be true after 5 toggles")
	}
	if f.Toggles() != 5 {
		t.Errorf("Toggles: got %d, want 5", f.Toggles())
	}
}

func TestFakeSetError(t *testing.T) {
	f := NewFakeIndicator()
	f.SetError = errors.New("line busy")

	if err := f.Toggle(); err == nil {
		t.Fatal("expected error")
	}
	if len(f.History) != 0 {
		t.Errorf("failed transitions must not be recorded, got %d", len(f.History))
	}
}

func TestFakeClose(t *testing.T) {
	f := NewFakeIndicator()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("Closed should be true")
	}
}
