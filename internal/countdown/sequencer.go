package countdown

import "time"

// Finale timing. The toggle count is odd so the indicator is guaranteed to
// be ON when the blink phase ends.
const (
	BlinkToggles  = 11
	BlinkInterval = 100 * time.Millisecond
	HoldDuration  = 3000 * time.Millisecond
)

// Toggler flips a digital output. Implemented by internal/indicator.
type Toggler interface {
	Toggle() error
}

// Sequencer runs the expiry finale: blink the indicator, hold it ON, then
// switch it off. It runs on the foreground path and is not interruptible
// by application logic; hardware events that arrive during the sequence
// are picked up by the drain hook between steps.
type Sequencer struct {
	Toggles  int
	Interval time.Duration
	Hold     time.Duration

	// OnPhase, if set, is called as each finale phase is entered.
	OnPhase func(Phase)

	sleep func(time.Duration)
}

// NewSequencer creates a Sequencer with the standard finale timing.
// sleep is the delay primitive; production passes time.Sleep, and its
// resolution bounds how accurate the blink cadence is.
func NewSequencer(sleep func(time.Duration)) *Sequencer {
	return &Sequencer{
		Toggles:  BlinkToggles,
		Interval: BlinkInterval,
		Hold:     HoldDuration,
		sleep:    sleep,
	}
}

// Run executes one finale: Toggles flips of the indicator spaced Interval
// apart, a Hold with the indicator ON, and a final flip to OFF. drain, if
// non-nil, is called between steps so queued events keep being applied.
//
// A failed toggle does not abort the sequence (timing is preserved and the
// next flip resynchronizes the output); the first error is returned so the
// caller can report it.
func (s *Sequencer) Run(ind Toggler, drain func()) error {
	var firstErr error
	toggle := func() {
		if err := ind.Toggle(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.phase(PhaseExpiredBlink)
	for i := 0; i < s.Toggles; i++ {
		toggle()
		s.sleep(s.Interval)
		if drain != nil {
			drain()
		}
	}

	s.phase(PhaseExpiredHold)
	s.sleep(s.Hold)
	if drain != nil {
		drain()
	}
	toggle()

	return firstErr
}

func (s *Sequencer) phase(p Phase) {
	if s.OnPhase != nil {
		s.OnPhase(p)
	}
}
