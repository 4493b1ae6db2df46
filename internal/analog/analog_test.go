package analog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFakeConverterSequence(t *testing.T) {
	f := NewFakeConverter([]uint16{3, 20, 63})

	want := []uint16{3, 20, 63, 63, 63} // last sample repeats
	for i, w := range want {
		got, err := f.Convert()
		if err != nil {
			t.Fatalf("convert %d: %v", i, err)
		}
		if got != w {
			t.Errorf("convert %d: got %d, want %d", i, got, w)
		}
	}
}

func TestFakeConverterError(t *testing.T) {
	f := NewFakeConverter([]uint16{1})
	f.ConvertError = errors.New("bus error")
	if _, err := f.Convert(); err == nil {
		t.Fatal("expected error")
	}

	f.ConvertError = nil
	if _, err := f.Convert(); err != nil {
		t.Fatalf("after clearing error: %v", err)
	}
}

func TestFakeConverterNoSamples(t *testing.T) {
	f := NewFakeConverter(nil)
	if _, err := f.Convert(); err == nil {
		t.Fatal("expected error with no samples")
	}
}

func writeAttr(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRealConverterReadsSysfs(t *testing.T) {
	path := writeAttr(t, "512\n")

	c, err := NewRealConverter(path, 10)
	if err != nil {
		t.Fatalf("NewRealConverter: %v", err)
	}
	defer c.Close()

	raw, err := c.Convert()
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if raw != 512 {
		t.Errorf("raw = %d, want 512", raw)
	}
	if c.Bits() != 10 {
		t.Errorf("Bits = %d, want 10", c.Bits())
	}
}

func TestRealConverterRejectsOutOfRange(t *testing.T) {
	path := writeAttr(t, "1024\n") // one past 10-bit full scale

	if _, err := NewRealConverter(path, 10); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestRealConverterRejectsGarbage(t *testing.T) {
	path := writeAttr(t, "not-a-number\n")

	if _, err := NewRealConverter(path, 10); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRealConverterMissingDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	if _, err := NewRealConverter(path, 10); err == nil {
		t.Fatal("expected error for missing device")
	}
}

func TestRealConverterResolutionBounds(t *testing.T) {
	path := writeAttr(t, "0\n")
	if _, err := NewRealConverter(path, 0); err == nil {
		t.Error("0 bits should be rejected")
	}
	if _, err := NewRealConverter(path, 17); err == nil {
		t.Error("17 bits should be rejected")
	}
}
