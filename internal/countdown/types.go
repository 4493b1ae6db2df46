// Package countdown contains the pure countdown state machine.
// This package has NO external dependencies (no GPIO, I2C, MQTT, OS, or
// time.Sleep). Time and delays are always injectable.
package countdown

// State is the shared countdown state. Both fields are unsigned seconds.
type State struct {
	// Elapsed is the number of seconds remaining in the current cycle.
	Elapsed uint32
	// Target is the configured countdown length. Reloads and resets copy
	// Target into Elapsed.
	Target uint32
}

// Phase represents where the foreground loop is in the countdown cycle.
type Phase string

const (
	PhaseCounting     Phase = "COUNTING"
	PhaseExpiredBlink Phase = "EXPIRED_BLINK"
	PhaseExpiredHold  Phase = "EXPIRED_HOLD"
)

// EventKind tags an event produced by one of the hardware sources.
type EventKind string

const (
	// EventTick fires once per second and decrements Elapsed.
	EventTick EventKind = "TICK"
	// EventReset fires on the button's falling edge and reloads Elapsed
	// from the current Target.
	EventReset EventKind = "RESET"
	// EventSampleUpdated carries one raw ADC reading; applying it
	// re-quantizes Target. Elapsed is deliberately left alone.
	EventSampleUpdated EventKind = "SAMPLE_UPDATED"
)

// Event is a tagged state-transition request. Sources enqueue these on
// bounded channels; the foreground loop drains and applies them, so all
// transition logic lives in one place.
type Event struct {
	Kind EventKind
	// Raw is the ADC sample for EventSampleUpdated; unused otherwise.
	Raw uint16
}

// Counts tracks how many of each event have been applied since startup.
type Counts struct {
	Ticks   int
	Resets  int
	Samples int
	// Cycles counts completed countdowns (finale sequences run).
	Cycles int
}
