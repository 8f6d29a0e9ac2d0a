// Package clock implements the per-turn countdown state machine. The clock
// never owns a wall-clock source; an external driver delivers ticks, one
// tick per second.
package clock

import "errors"

// State is the countdown phase.
type State string

const (
	StateIdle    State = "IDLE"
	StateRunning State = "RUNNING"
	StatePaused  State = "PAUSED"
	StateExpired State = "EXPIRED"
)

// DefaultWarningSec is the low-time warning mark when none is configured.
const DefaultWarningSec = 10

// Signal is what a tick reports back to the caller.
type Signal int

const (
	SignalNone Signal = iota
	SignalThreshold
	SignalExpired
)

var (
	ErrNotRunning = errors.New("clock is not running")
	ErrNotPaused  = errors.New("clock is not paused")
)

// Clock is the countdown state machine for a single turn.
type Clock struct {
	state     State
	remaining int
	threshold int
	warned    bool
}

// New returns an idle clock with the given warning threshold in seconds.
// A non-positive threshold falls back to DefaultWarningSec.
func New(thresholdSec int) *Clock {
	if thresholdSec <= 0 {
		thresholdSec = DefaultWarningSec
	}
	return &Clock{state: StateIdle, threshold: thresholdSec}
}

// Arm starts a fresh countdown from any state.
func (c *Clock) Arm(seconds int) {
	c.state = StateRunning
	c.remaining = seconds
	c.warned = false
}

// Reset re-arms the countdown but preserves the caller's paused intent:
// a paused clock stays paused with the new duration.
func (c *Clock) Reset(seconds int) {
	paused := c.state == StatePaused
	c.Arm(seconds)
	if paused {
		c.state = StatePaused
	}
}

// Tick advances the countdown by one second. It is a no-op unless the clock
// is running: ticks arrive from an external driver that does not track our
// state, so paused, idle, and expired clocks simply ignore them.
//
// The threshold signal fires exactly once per arm cycle, when the remaining
// time first reaches the warning mark. Expiry freezes the clock at zero;
// nothing here advances the turn.
func (c *Clock) Tick() Signal {
	if c.state != StateRunning {
		return SignalNone
	}

	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateExpired
		return SignalExpired
	}
	if !c.warned && c.remaining <= c.threshold {
		c.warned = true
		return SignalThreshold
	}
	return SignalNone
}

// Pause freezes a running countdown.
func (c *Clock) Pause() error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.state = StatePaused
	return nil
}

// Resume continues a paused countdown.
func (c *Clock) Resume() error {
	if c.state != StatePaused {
		return ErrNotPaused
	}
	c.state = StateRunning
	return nil
}

// Stop detaches the clock, returning it to idle.
func (c *Clock) Stop() {
	c.state = StateIdle
	c.remaining = 0
	c.warned = false
}

// Restore rebuilds clock state from a session snapshot.
func (c *Clock) Restore(remaining int, paused, started bool) {
	c.remaining = remaining
	c.warned = remaining <= c.threshold
	switch {
	case !started:
		c.state = StateIdle
		c.remaining = 0
		c.warned = false
	case remaining <= 0:
		c.remaining = 0
		c.state = StateExpired
	case paused:
		c.state = StatePaused
	default:
		c.state = StateRunning
	}
}

func (c *Clock) State() State   { return c.state }
func (c *Clock) Remaining() int { return c.remaining }
func (c *Clock) Paused() bool   { return c.state == StatePaused }
func (c *Clock) Running() bool  { return c.state == StateRunning }
