package engine

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestEngine(t *testing.T, players int) *Engine {
	t.Helper()
	e, err := New(players, BoardConfig{})
	if err != nil {
		t.Fatalf("New(%d) failed: %v", players, err)
	}
	return e
}

// place puts the current player on square before a scripted roll.
func place(e *Engine, square int) {
	e.state.Players[e.state.CurrentPlayerIndex].Position = square
}

func TestNewRejectsPlayerCount(t *testing.T) {
	for _, n := range []int{-1, 0, 5} {
		_, err := New(n, BoardConfig{})
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("New(%d) error = %v, want *ConfigError", n, err)
		}
		if cfgErr.Field != "players" {
			t.Errorf("New(%d) field = %q, want players", n, cfgErr.Field)
		}
		if !errors.Is(err, ErrConfig) {
			t.Errorf("New(%d) error should match ErrConfig", n)
		}
	}
}

func TestNewRejectsInvalidBoard(t *testing.T) {
	board := DefaultBoard()
	board.Snakes[10] = 20 // snake going up
	if _, err := New(2, board); !errors.Is(err, ErrConfig) {
		t.Fatalf("New with upward snake error = %v, want ErrConfig", err)
	}
}

func TestResetInitialState(t *testing.T) {
	for n := MinPlayers; n <= MaxPlayers; n++ {
		e := newTestEngine(t, n)

		// Play a few turns to dirty the state
		for _, die := range []int{3, 5, 2} {
			if _, err := e.RollAndMoveWith(die); err != nil {
				t.Fatalf("RollAndMoveWith(%d) failed: %v", die, err)
			}
		}
		e.Reset()

		s := e.State()
		if len(s.Players) != n {
			t.Fatalf("players = %d, want %d", len(s.Players), n)
		}
		for i, p := range s.Players {
			if p.ID != i+1 {
				t.Errorf("player %d has ID %d", i, p.ID)
			}
			if p.Position != StartSquare {
				t.Errorf("player %d at %d after reset, want %d", p.ID, p.Position, StartSquare)
			}
		}
		if s.CurrentPlayerIndex != 0 {
			t.Errorf("CurrentPlayerIndex = %d, want 0", s.CurrentPlayerIndex)
		}
		if s.GameOver || s.WinnerID != 0 {
			t.Errorf("fresh game should not be over: %+v", s)
		}
		if e.Turns() != 0 {
			t.Errorf("Turns() = %d after reset", e.Turns())
		}
	}
}

func TestResetPlayers(t *testing.T) {
	e := newTestEngine(t, 2)
	if err := e.ResetPlayers(4); err != nil {
		t.Fatalf("ResetPlayers(4) failed: %v", err)
	}
	if e.PlayerCount() != 4 {
		t.Errorf("PlayerCount() = %d, want 4", e.PlayerCount())
	}

	if err := e.ResetPlayers(9); !errors.Is(err, ErrConfig) {
		t.Fatalf("ResetPlayers(9) error = %v, want ErrConfig", err)
	}
	if e.PlayerCount() != 4 {
		t.Errorf("failed ResetPlayers changed player count to %d", e.PlayerCount())
	}
}

func TestMoveBeforeJump(t *testing.T) {
	e := newTestEngine(t, 1)
	board := e.Board()

	for pos := 1; pos < board.Size; pos++ {
		for die := MinRoll; die <= MaxRoll; die++ {
			if pos+die > board.Size {
				continue
			}
			e.Reset()
			place(e, pos)

			events, err := e.RollAndMoveWith(die)
			if err != nil {
				t.Fatalf("pos %d die %d: %v", pos, die, err)
			}
			move, ok := events[1].(MoveEvent)
			if !ok {
				t.Fatalf("pos %d die %d: second event is %T, want MoveEvent", pos, die, events[1])
			}
			if move.From != pos || move.To != pos+die {
				t.Errorf("pos %d die %d: move %d->%d", pos, die, move.From, move.To)
			}
		}
	}
}

func TestOvershoot(t *testing.T) {
	e := newTestEngine(t, 2)
	place(e, 97)

	events, err := e.RollAndMoveWith(6)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}

	want := []Event{
		RollEvent{Player: 1, Value: 6},
		OvershootEvent{Player: 1, Position: 97, Required: 3},
		TurnChangedEvent{Player: 2},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %#v\nwant %#v", events, want)
	}
	if pos, _ := e.Position(1); pos != 97 {
		t.Errorf("position after overshoot = %d, want 97", pos)
	}
	if e.State().CurrentPlayerIndex != 1 {
		t.Errorf("overshoot should still advance the turn")
	}
}

func TestSnake(t *testing.T) {
	e := newTestEngine(t, 2)
	place(e, 58)

	events, err := e.RollAndMoveWith(6)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}

	want := []Event{
		RollEvent{Player: 1, Value: 6},
		MoveEvent{Player: 1, From: 58, To: 64},
		SnakeEvent{Player: 1, From: 64, To: 60},
		TurnChangedEvent{Player: 2},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %#v\nwant %#v", events, want)
	}
	if pos, _ := e.Position(1); pos != 60 {
		t.Errorf("position = %d, want 60", pos)
	}
}

func TestLadderSingleHop(t *testing.T) {
	e := newTestEngine(t, 2)
	place(e, 5)

	events, err := e.RollAndMoveWith(4)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}

	// 9 climbs to 21, which is itself a ladder bottom; it must not chain to 42.
	want := []Event{
		RollEvent{Player: 1, Value: 4},
		MoveEvent{Player: 1, From: 5, To: 9},
		LadderEvent{Player: 1, From: 9, To: 21},
		TurnChangedEvent{Player: 2},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %#v\nwant %#v", events, want)
	}
	if pos, _ := e.Position(1); pos != 21 {
		t.Errorf("position = %d, want 21", pos)
	}
}

func TestWinExactly(t *testing.T) {
	e := newTestEngine(t, 2)
	place(e, 94)

	events, err := e.RollAndMoveWith(6)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}

	want := []Event{
		RollEvent{Player: 1, Value: 6},
		MoveEvent{Player: 1, From: 94, To: 100},
		WinEvent{Player: 1},
	}
	if !reflect.DeepEqual(events, want) {
		t.Fatalf("events = %#v\nwant %#v", events, want)
	}

	s := e.State()
	if !s.GameOver || s.WinnerID != 1 {
		t.Fatalf("state after win = %+v", s)
	}
	if winner, over := e.Winner(); !over || winner != 1 {
		t.Errorf("Winner() = %d, %v", winner, over)
	}

	_, err = e.RollAndMoveWith(1)
	var overErr *GameOverError
	if !errors.As(err, &overErr) {
		t.Fatalf("roll after win error = %v, want *GameOverError", err)
	}
	if overErr.WinnerID != 1 {
		t.Errorf("GameOverError.WinnerID = %d, want 1", overErr.WinnerID)
	}
	if _, err := e.RollAndMove(); !errors.Is(err, ErrGameOver) {
		t.Errorf("RollAndMove after win error = %v, want ErrGameOver", err)
	}

	e.Reset()
	if _, err := e.RollAndMoveWith(2); err != nil {
		t.Errorf("roll after reset failed: %v", err)
	}
}

func TestWinViaLadder(t *testing.T) {
	e := newTestEngine(t, 3)
	e.state.CurrentPlayerIndex = 2
	place(e, 77)

	events, err := e.RollAndMoveWith(3)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}
	last := events[len(events)-1]
	if win, ok := last.(WinEvent); !ok || win.Player != 3 {
		t.Fatalf("last event = %#v, want WinEvent for player 3", last)
	}
	if winner, _ := e.Winner(); winner != 3 {
		t.Errorf("winner = %d, want 3", winner)
	}
}

func TestTurnOrderThreePlayers(t *testing.T) {
	e := newTestEngine(t, 3)

	steps := []struct {
		die       int
		wantIndex int
	}{
		{1, 1}, // player 1: 1 -> 2
		{2, 2}, // player 2: 1 -> 3
		{2, 0}, // player 3: 1 -> 3, wraps
		{3, 1}, // player 1: 2 -> 5
	}
	for i, step := range steps {
		events, err := e.RollAndMoveWith(step.die)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := e.State().CurrentPlayerIndex; got != step.wantIndex {
			t.Errorf("step %d: CurrentPlayerIndex = %d, want %d", i, got, step.wantIndex)
		}
		turn, ok := events[len(events)-1].(TurnChangedEvent)
		if !ok || turn.Player != step.wantIndex+1 {
			t.Errorf("step %d: last event = %#v", i, events[len(events)-1])
		}
	}
}

func TestSinglePlayerKeepsTurn(t *testing.T) {
	e := newTestEngine(t, 1)
	for i := 0; i < 3; i++ {
		if _, err := e.RollAndMoveWith(1); err != nil {
			t.Fatalf("roll %d: %v", i, err)
		}
		if e.CurrentPlayer().ID != 1 {
			t.Fatalf("single player game switched to player %d", e.CurrentPlayer().ID)
		}
	}
}

func TestInvalidRollLeavesStateUnchanged(t *testing.T) {
	e := newTestEngine(t, 2)
	if _, err := e.RollAndMoveWith(3); err != nil {
		t.Fatalf("setup roll failed: %v", err)
	}
	before := e.State()
	turns := e.Turns()

	for _, die := range []int{0, 7, -3} {
		events, err := e.RollAndMoveWith(die)
		var rollErr *InvalidRollError
		if !errors.As(err, &rollErr) {
			t.Fatalf("RollAndMoveWith(%d) error = %v, want *InvalidRollError", die, err)
		}
		if rollErr.Value != die {
			t.Errorf("InvalidRollError.Value = %d, want %d", rollErr.Value, die)
		}
		if events != nil {
			t.Errorf("RollAndMoveWith(%d) returned events on error", die)
		}
	}

	if !reflect.DeepEqual(e.State(), before) {
		t.Errorf("state changed after invalid rolls:\n%+v\n%+v", e.State(), before)
	}
	if e.Turns() != turns {
		t.Errorf("turn counter changed after invalid rolls")
	}
}

func TestRollAndMoveUsesDice(t *testing.T) {
	e, err := New(2, BoardConfig{}, WithDice(NewSequenceDice(2, 5)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	events, err := e.RollAndMove()
	if err != nil {
		t.Fatalf("RollAndMove failed: %v", err)
	}
	if roll := events[0].(RollEvent); roll.Value != 2 {
		t.Errorf("first roll = %d, want 2", roll.Value)
	}

	events, err = e.RollAndMove()
	if err != nil {
		t.Fatalf("RollAndMove failed: %v", err)
	}
	if roll := events[0].(RollEvent); roll.Value != 5 {
		t.Errorf("second roll = %d, want 5", roll.Value)
	}
}

func TestRollAndMoveRejectsBadDice(t *testing.T) {
	e, err := New(1, BoardConfig{}, WithDice(NewSequenceDice(9)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := e.RollAndMove(); !errors.Is(err, ErrInvalidRoll) {
		t.Errorf("RollAndMove with broken dice error = %v, want ErrInvalidRoll", err)
	}
}

func TestRandDiceRange(t *testing.T) {
	d := NewRandDice(42)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := d.Roll()
		if v < MinRoll || v > MaxRoll {
			t.Fatalf("Roll() = %d out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != MaxRoll {
		t.Errorf("1000 rolls produced only %d distinct faces", len(seen))
	}
}

func TestDeterminism(t *testing.T) {
	play := func() []GameState {
		e, err := New(4, BoardConfig{}, WithDice(NewRandDice(12345)))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		var states []GameState
		for !e.IsGameOver() && e.Turns() < 2000 {
			if _, err := e.RollAndMove(); err != nil {
				t.Fatalf("RollAndMove failed: %v", err)
			}
			states = append(states, e.State())
		}
		return states
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different games")
	}
}

func TestSubscribeReceivesEventsInOrder(t *testing.T) {
	e := newTestEngine(t, 2)
	var got []Event
	e.Subscribe(func(ev Event) { got = append(got, ev) })
	place(e, 58)

	events, err := e.RollAndMoveWith(6)
	if err != nil {
		t.Fatalf("RollAndMoveWith failed: %v", err)
	}
	if !reflect.DeepEqual(got, events) {
		t.Errorf("listener saw %#v, returned %#v", got, events)
	}
}

func TestStateIsACopy(t *testing.T) {
	e := newTestEngine(t, 2)
	s := e.State()
	s.Players[0].Position = 50

	if pos, _ := e.Position(1); pos != StartSquare {
		t.Errorf("mutating State() copy moved player to %d", pos)
	}

	b := e.Board()
	b.Snakes[2] = 1
	if _, ok := e.Board().Snakes[2]; ok {
		t.Error("mutating Board() copy changed the engine board")
	}
}

func TestPositionLookup(t *testing.T) {
	e := newTestEngine(t, 2)
	if _, ok := e.Position(0); ok {
		t.Error("Position(0) should not exist")
	}
	if _, ok := e.Position(3); ok {
		t.Error("Position(3) should not exist in a 2-player game")
	}
	if pos, ok := e.Position(2); !ok || pos != StartSquare {
		t.Errorf("Position(2) = %d, %v", pos, ok)
	}
}

func TestChainedJumpNoticeIsDebugOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.WarnLevel)

	for range 2 {
		if _, err := New(2, DefaultBoard(), WithLogger(logger)); err != nil {
			t.Fatalf("New() failed: %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Errorf("default board logged at warn level: %q", buf.String())
	}

	logger.SetLevel(log.DebugLevel)
	if _, err := New(2, DefaultBoard(), WithLogger(logger)); err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "chained jump") {
		t.Errorf("debug output missing chained jump notice: %q", buf.String())
	}
}
