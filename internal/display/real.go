package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/sweeney/countdown-timer/internal/countdown"
)

// RealWriter drives an SSD1306 128x32 OLED over I2C via periph.io.
type RealWriter struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

// NewRealWriter initializes the periph host, opens the I2C bus and brings
// up the display controller. Any failure here is a startup failure; the
// caller is expected to treat it as fatal.
func NewRealWriter(busName string) (*RealWriter, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: panelW, H: panelH})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	w := &RealWriter{bus: bus, dev: dev}
	if err := w.Clear(); err != nil {
		bus.Close()
		return nil, err
	}
	return w, nil
}

// WriteFrame rasterizes the frame and overwrites the whole panel.
func (w *RealWriter) WriteFrame(f countdown.Frame) error {
	img := renderFrame(f)
	if err := w.dev.Draw(w.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("display write: %w", err)
	}
	return nil
}

// Clear blanks the panel.
func (w *RealWriter) Clear() error {
	var blank countdown.Frame
	for i := range blank {
		blank[i] = ' '
	}
	if err := w.dev.Draw(w.dev.Bounds(), renderFrame(blank), image.Point{}); err != nil {
		return fmt.Errorf("display clear: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the bus.
func (w *RealWriter) Close() error {
	var errs []error
	if err := w.Clear(); err != nil {
		errs = append(errs, err)
	}
	if err := w.dev.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("halt display: %w", err))
	}
	if err := w.bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close i2c bus: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
