//go:build rp2040

// Bare-metal build of the countdown timer for the Raspberry Pi Pico.
// The core countdown logic is shared with the Linux daemon; only the
// peripherals differ: machine ADC for the dial, a pin interrupt for the
// button, the onboard LED as the indicator, and an SSD1306 over I2C0.
//
// Build with: tinygo flash -target=pico ./targets/pico
package main

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/sweeney/countdown-timer/internal/countdown"
)

const (
	buttonPin = machine.GP15
	dialPin   = machine.ADC0 // GP26

	initialTarget = 180

	tickInterval   = time.Second
	sampleInterval = 100 * time.Millisecond
	renderInterval = 200 * time.Millisecond
)

var white = color.RGBA{255, 255, 255, 255}

// boardLED adapts the onboard LED pin to the sequencer's Toggler.
type boardLED struct {
	pin machine.Pin
	on  bool
}

func (l *boardLED) Set(on bool) error {
	l.pin.Set(on)
	l.on = on
	return nil
}

func (l *boardLED) Toggle() error { return l.Set(!l.on) }

func main() {
	machine.InitADC()
	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})

	display := ssd1306.NewI2C(machine.I2C0)
	display.Configure(ssd1306.Config{
		Width:    128,
		Height:   32,
		Address:  0x3C,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	display.ClearDisplay()

	dial := machine.ADC{Pin: dialPin}
	dial.Configure(machine.ADCConfig{})

	led := &boardLED{pin: machine.LED}
	led.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led.Set(false)

	// Falling-edge presses land on a small buffered channel; the handler
	// runs in interrupt context so the send must never block.
	presses := make(chan struct{}, 4)
	buttonPin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	buttonPin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		select {
		case presses <- struct{}{}:
		default:
		}
	})

	cont := countdown.NewContainer(initialTarget)
	seq := countdown.NewSequencer(time.Sleep)

	tick := time.NewTicker(tickInterval)
	sample := time.NewTicker(sampleInterval)
	render := time.NewTicker(renderInterval)

	drain := func() {
		for {
			select {
			case <-tick.C:
				cont.Apply(countdown.Event{Kind: countdown.EventTick})
			case <-presses:
				cont.Apply(countdown.Event{Kind: countdown.EventReset})
			case <-sample.C:
				applySample(cont, &dial)
			default:
				return
			}
		}
	}

	for {
		// A waiting press beats pending ticks and samples.
		select {
		case <-presses:
			cont.Apply(countdown.Event{Kind: countdown.EventReset})
			continue
		default:
		}

		select {
		case <-presses:
			cont.Apply(countdown.Event{Kind: countdown.EventReset})

		case <-tick.C:
			cont.Apply(countdown.Event{Kind: countdown.EventTick})

		case <-sample.C:
			applySample(cont, &dial)

		case <-render.C:
			state := cont.Snapshot()
			draw(&display, countdown.Render(state))
			if state.Elapsed == 0 {
				seq.Run(led, drain)
				state = cont.Reload()
				draw(&display, countdown.Render(state))
			}
		}
	}
}

// applySample folds one dial conversion into the target. machine.ADC.Get
// returns a left-justified 16-bit value regardless of hardware resolution.
func applySample(cont *countdown.Container, dial *machine.ADC) {
	raw := countdown.ReduceSample(dial.Get(), 16)
	cont.Apply(countdown.Event{Kind: countdown.EventSampleUpdated, Raw: raw})
}

func draw(display *ssd1306.Device, f countdown.Frame) {
	display.ClearBuffer()
	for row := int16(0); row < 4; row++ {
		line := f.Row(int(row))
		if line == "                " {
			continue
		}
		tinyfont.WriteLine(display, &proggy.TinySZ8pt7b, 0, row*8+7, line, white)
	}
	display.Display()
}
