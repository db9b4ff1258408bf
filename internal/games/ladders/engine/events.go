package engine

import "fmt"

// Event is one discrete, observable state transition produced by a turn.
// Events are returned in the order they happened so a renderer can replay
// them without re-deriving any game logic.
type Event interface {
	// PlayerID returns the player the event concerns.
	PlayerID() int
	fmt.Stringer
}

// RollEvent is emitted first in every turn.
type RollEvent struct {
	Player int
	Value  int
}

func (e RollEvent) PlayerID() int { return e.Player }

func (e RollEvent) String() string {
	return fmt.Sprintf("Player %d rolled %d.", e.Player, e.Value)
}

// MoveEvent is emitted when the roll fits on the board.
type MoveEvent struct {
	Player int
	From   int
	To     int
}

func (e MoveEvent) PlayerID() int { return e.Player }

func (e MoveEvent) String() string {
	return fmt.Sprintf("Player %d moved to square %d.", e.Player, e.To)
}

// OvershootEvent is emitted instead of MoveEvent when the roll would pass the
// last square. Required is the exact roll needed to finish.
type OvershootEvent struct {
	Player   int
	Position int
	Required int
}

func (e OvershootEvent) PlayerID() int { return e.Player }

func (e OvershootEvent) String() string {
	return fmt.Sprintf("Player %d needs exactly %d to win!", e.Player, e.Required)
}

// SnakeEvent is emitted when the mover lands on a snake head.
type SnakeEvent struct {
	Player int
	From   int
	To     int
}

func (e SnakeEvent) PlayerID() int { return e.Player }

func (e SnakeEvent) String() string {
	return fmt.Sprintf("Player %d hit a snake! Slid down to %d.", e.Player, e.To)
}

// LadderEvent is emitted when the mover lands on a ladder bottom.
type LadderEvent struct {
	Player int
	From   int
	To     int
}

func (e LadderEvent) PlayerID() int { return e.Player }

func (e LadderEvent) String() string {
	return fmt.Sprintf("Player %d found a ladder! Climbed up to %d.", e.Player, e.To)
}

// WinEvent is emitted when the mover reaches the last square.
type WinEvent struct {
	Player int
}

func (e WinEvent) PlayerID() int { return e.Player }

func (e WinEvent) String() string {
	return fmt.Sprintf("Player %d wins!", e.Player)
}

// TurnChangedEvent is emitted last in every turn that does not end the game.
type TurnChangedEvent struct {
	Player int // the new current player
}

func (e TurnChangedEvent) PlayerID() int { return e.Player }

func (e TurnChangedEvent) String() string {
	return fmt.Sprintf("Player %d's turn.", e.Player)
}

// Listener receives events as they are published.
type Listener func(Event)
