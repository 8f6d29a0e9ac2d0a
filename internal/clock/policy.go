package clock

// earlyRoundCutoff is the last round that uses the long pick duration.
const earlyRoundCutoff = 4

// DurationPolicy maps a round number to a pick duration. The two values are
// configuration inputs, not constants of the clock.
type DurationPolicy struct {
	EarlySeconds int // rounds 1 through earlyRoundCutoff
	LateSeconds  int // every later round
}

// ForRound returns the pick duration in seconds for the given 1-based round.
func (p DurationPolicy) ForRound(round int) int {
	if round <= earlyRoundCutoff {
		return p.EarlySeconds
	}
	return p.LateSeconds
}
