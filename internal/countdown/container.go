package countdown

import "sync"

// Container owns the shared State behind a mutex. Every read or write goes
// through one of its methods, and any operation touching both fields does so
// under a single lock acquisition so a snapshot can never be torn by a
// concurrent reset or sample update.
type Container struct {
	mu     sync.Mutex
	state  State
	counts Counts
}

// NewContainer creates a Container with Elapsed preloaded from target.
func NewContainer(target uint32) *Container {
	return &Container{
		state: State{Elapsed: target, Target: target},
	}
}

// Snapshot returns both fields as one consistent value.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()
	return s
}

// Counts returns a copy of the event counters.
func (c *Container) Counts() Counts {
	c.mu.Lock()
	n := c.counts
	c.mu.Unlock()
	return n
}

// Apply performs the transition for one event. It returns the state after
// the transition and whether the event changed anything.
//
// Transitions:
//   - Tick: decrement Elapsed unless it is already 0. The guard is what
//     keeps the unsigned field from wrapping when ticks keep arriving
//     during the finale.
//   - Reset: Elapsed = Target, reading Target at apply time so a dial
//     change mid-countdown is honored.
//   - SampleUpdated: Target = Quantize(Raw). Elapsed is not clamped;
//     turning the dial does not restart a running countdown.
func (c *Container) Apply(ev Event) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	switch ev.Kind {
	case EventTick:
		c.counts.Ticks++
		if c.state.Elapsed > 0 {
			c.state.Elapsed--
			changed = true
		}
	case EventReset:
		c.counts.Resets++
		c.state.Elapsed = c.state.Target
		changed = true
	case EventSampleUpdated:
		c.counts.Samples++
		target := Quantize(ev.Raw)
		if target != c.state.Target {
			c.state.Target = target
			changed = true
		}
	}
	return c.state, changed
}

// Reload copies Target into Elapsed at the end of a finale sequence and
// counts the completed cycle. Like Apply, it reads Target at call time so
// the next cycle picks up the latest dial position.
func (c *Container) Reload() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Elapsed = c.state.Target
	c.counts.Cycles++
	return c.state
}
