package button

import (
	"testing"
	"time"
)

func TestFakePressDelivers(t *testing.T) {
	f := NewFakeWatcher()
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if !f.Press(at) {
		t.Fatal("press should be delivered")
	}

	select {
	case got := <-f.Events():
		if !got.Equal(at) {
			t.Errorf("event time: got %v, want %v", got, at)
		}
	default:
		t.Fatal("no event on channel")
	}
}

func TestFakePressDropsWhenFull(t *testing.T) {
	f := NewFakeWatcher()
	at := time.Now()

	for i := 0; i < eventBuffer; i++ {
		if !f.Press(at) {
			t.Fatalf("press %d should be delivered", i)
		}
	}

	// Buffer full: like the real edge handler, the press is dropped
	// rather than blocking.
	if f.Press(at) {
		t.Error("press beyond buffer should be dropped")
	}
}

func TestFakeClose(t *testing.T) {
	f := NewFakeWatcher()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("Closed should be true")
	}
}
