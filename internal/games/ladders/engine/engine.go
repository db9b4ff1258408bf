// Package engine implements the Snakes & Ladders turn state machine.
// It has no rendering or timing concerns: every turn is a single synchronous
// call that returns the ordered events it produced.
package engine

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

// Player count bounds.
const (
	MinPlayers = 1
	MaxPlayers = 4
)

// StartSquare is where every player begins.
const StartSquare = 1

// Player is a token on the board.
type Player struct {
	ID       int
	Position int
}

// GameState is the queryable value a renderer draws from.
// WinnerID is 0 while the game is in progress.
type GameState struct {
	Players            []Player
	CurrentPlayerIndex int
	GameOver           bool
	WinnerID           int
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	s.Players = slices.Clone(s.Players)
	return s
}

// Engine owns a board, its players and the turn pointer.
// One goroutine at a time may call RollAndMove; each game gets its own Engine.
type Engine struct {
	board     BoardConfig
	dice      Dice
	logger    *log.Logger
	state     GameState
	turns     int
	listeners []Listener
}

// Option configures an Engine.
type Option func(*Engine)

// WithDice sets the roll source. Defaults to a time-seeded RandDice.
func WithDice(d Dice) Option {
	return func(e *Engine) {
		if d != nil {
			e.dice = d
		}
	}
}

// WithLogger sets the logger for turn-level debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine for playerCount players on board.
// A zero BoardConfig selects DefaultBoard.
func New(playerCount int, board BoardConfig, opts ...Option) (*Engine, error) {
	if board.IsZero() {
		board = DefaultBoard()
	}
	if err := validatePlayerCount(playerCount); err != nil {
		return nil, err
	}
	warnings, err := board.Validate()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		board:  board.Clone(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dice == nil {
		e.dice = NewRandDice(0)
	}
	for _, w := range warnings {
		e.logger.Debug("board has chained jump, resolving single hop only", "detail", w)
	}

	e.state = newState(playerCount)
	return e, nil
}

func validatePlayerCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return configErrorf("players", "player count %d not in [%d, %d]", n, MinPlayers, MaxPlayers)
	}
	return nil
}

func newState(playerCount int) GameState {
	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{ID: i + 1, Position: StartSquare}
	}
	return GameState{Players: players}
}

// Subscribe registers a listener that receives every event as it is published.
func (e *Engine) Subscribe(l Listener) {
	if l != nil {
		e.listeners = append(e.listeners, l)
	}
}

// RollAndMove rolls the engine's dice and plays one turn for the current player.
func (e *Engine) RollAndMove() ([]Event, error) {
	if err := e.checkPlayable(); err != nil {
		return nil, err
	}
	return e.RollAndMoveWith(e.dice.Roll())
}

// RollAndMoveWith plays one turn using die instead of a random roll.
// On error the state is left untouched.
func (e *Engine) RollAndMoveWith(die int) ([]Event, error) {
	if err := e.checkPlayable(); err != nil {
		return nil, err
	}
	if die < MinRoll || die > MaxRoll {
		return nil, &InvalidRollError{Value: die}
	}

	idx := e.state.CurrentPlayerIndex
	mover := &e.state.Players[idx]
	events := make([]Event, 0, 4)
	emit := func(ev Event) {
		events = append(events, ev)
		for _, l := range e.listeners {
			l(ev)
		}
	}

	emit(RollEvent{Player: mover.ID, Value: die})

	target := mover.Position + die
	if target > e.board.Size {
		emit(OvershootEvent{Player: mover.ID, Position: mover.Position, Required: e.board.Size - mover.Position})
	} else {
		emit(MoveEvent{Player: mover.ID, From: mover.Position, To: target})
		mover.Position = target

		// Single hop: the destination is never re-checked.
		if tail, ok := e.board.Snakes[target]; ok {
			mover.Position = tail
			emit(SnakeEvent{Player: mover.ID, From: target, To: tail})
		} else if top, ok := e.board.Ladders[target]; ok {
			mover.Position = top
			emit(LadderEvent{Player: mover.ID, From: target, To: top})
		}
	}

	e.turns++
	e.logger.Debug("turn", "player", mover.ID, "roll", die, "position", mover.Position, "turn", e.turns)

	if mover.Position >= e.board.Size {
		e.state.GameOver = true
		e.state.WinnerID = mover.ID
		emit(WinEvent{Player: mover.ID})
		e.logger.Info("game won", "player", mover.ID, "turns", e.turns)
		return events, nil
	}

	e.state.CurrentPlayerIndex = (idx + 1) % len(e.state.Players)
	emit(TurnChangedEvent{Player: e.state.Players[e.state.CurrentPlayerIndex].ID})
	return events, nil
}

func (e *Engine) checkPlayable() error {
	if e.state.GameOver {
		return &GameOverError{WinnerID: e.state.WinnerID}
	}
	return nil
}

// Reset starts a fresh game with the same player count.
func (e *Engine) Reset() {
	e.state = newState(len(e.state.Players))
	e.turns = 0
}

// ResetPlayers starts a fresh game with a new player count.
// An out-of-range count returns a *ConfigError and leaves the game as it was.
func (e *Engine) ResetPlayers(playerCount int) error {
	if err := validatePlayerCount(playerCount); err != nil {
		return err
	}
	e.state = newState(playerCount)
	e.turns = 0
	return nil
}

// State returns a copy of the current game state.
func (e *Engine) State() GameState {
	return e.state.Clone()
}

// Board returns a copy of the board configuration.
func (e *Engine) Board() BoardConfig {
	return e.board.Clone()
}

// SquareInfo describes a square on this engine's board.
func (e *Engine) SquareInfo(square int) SquareInfo {
	return e.board.Info(square)
}

// CurrentPlayer returns the player whose turn it is. After a win this is the winner.
func (e *Engine) CurrentPlayer() Player {
	return e.state.Players[e.state.CurrentPlayerIndex]
}

// Position returns the square of player id.
func (e *Engine) Position(id int) (int, bool) {
	if id < 1 || id > len(e.state.Players) {
		return 0, false
	}
	return e.state.Players[id-1].Position, true
}

// PlayerCount returns the number of players in the current game.
func (e *Engine) PlayerCount() int {
	return len(e.state.Players)
}

// IsGameOver reports whether someone has won.
func (e *Engine) IsGameOver() bool {
	return e.state.GameOver
}

// Winner returns the winning player id once the game is over.
func (e *Engine) Winner() (int, bool) {
	return e.state.WinnerID, e.state.GameOver
}

// Turns returns the number of turns played since the last reset.
func (e *Engine) Turns() int {
	return e.turns
}
