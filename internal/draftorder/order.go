// Package draftorder computes snake draft turn order. It is pure: no state,
// no failure modes.
package draftorder

// Slot describes where a zero-based pick index falls in a snake draft.
type Slot struct {
	Round       int // 1-based round number
	Participant int // acting participant slot, 0..participantCount-1
	Overall     int // 1-based overall pick number
}

// At returns the slot for the given zero-based pick index. Defined for any
// pickIndex >= 0; the caller bounds it against participantCount*rounds.
// Round 1 runs forward through the participant slots and each subsequent
// round reverses direction.
func At(pickIndex, participantCount int) Slot {
	round := pickIndex / participantCount
	pos := pickIndex % participantCount

	acting := pos
	if round%2 == 1 {
		acting = participantCount - 1 - pos
	}

	return Slot{
		Round:       round + 1,
		Participant: acting,
		Overall:     pickIndex + 1,
	}
}

// Board enumerates every slot of a rounds x participantCount session in
// overall pick order.
func Board(rounds, participantCount int) []Slot {
	total := rounds * participantCount
	board := make([]Slot, 0, total)
	for i := 0; i < total; i++ {
		board = append(board, At(i, participantCount))
	}
	return board
}
