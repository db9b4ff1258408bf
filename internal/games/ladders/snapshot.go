package ladders

import "slices"

// Phase is the table's presentation state.
type Phase string

const (
	PhaseWaiting     Phase = "waiting_for_roll"
	PhasePlayback    Phase = "playback"
	PhaseWon         Phase = "won"
	PhasePaused      Phase = "paused"
	PhasePausedSmall Phase = "paused_small_window"
)

// Snapshot captures the displayed table for determinism tests and replay.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Current   int   // Player shown as on turn
	Die       int   // Last die value shown
	Positions []int // Displayed token positions, index = player id - 1
	Pending   int   // Events not yet shown
	Winner    int
	Turns     int
	Cursor    int
	Status    []string // Newest first
}

// Snapshot returns the current displayed state.
func (g *Game) Snapshot() Snapshot {
	phase := PhaseWaiting
	switch {
	case g.tooSmall:
		phase = PhasePausedSmall
	case g.paused:
		phase = PhasePaused
	case g.winner != 0:
		phase = PhaseWon
	case g.busy():
		phase = PhasePlayback
	}

	return Snapshot{
		Tick:      g.tick,
		Phase:     phase,
		Current:   g.current,
		Die:       g.die,
		Positions: slices.Clone(g.shownPos),
		Pending:   len(g.pending),
		Winner:    g.winner,
		Turns:     g.engine.Turns(),
		Cursor:    g.cursor,
		Status:    slices.Clone(g.status),
	}
}
