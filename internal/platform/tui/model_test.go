package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/multiplayer"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

func init() {
	registry.Register("fake", 2, func() registry.Game { return &fakeGame{} })
}

// fakeGame reports whatever state the test puts in next.
type fakeGame struct {
	next     core.GameState
	resets   int
	steps    int
	lastIn   []core.Action
	resizedW int
}

func (g *fakeGame) ID() string               { return "fake" }
func (g *fakeGame) Title() string            { return "Fake" }
func (g *fakeGame) Reset(core.RuntimeConfig) { g.resets++; g.next = core.GameState{} }
func (g *fakeGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.next }
func (g *fakeGame) Resize(w, h int)          { g.resizedW = w }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastIn = g.lastIn[:0]
	for a := range in.Actions {
		if in.Has(a) {
			g.lastIn = append(g.lastIn, a)
		}
	}
	return core.StepResult{State: g.next}
}

type fakeSaver struct {
	results []multiplayer.MatchResult
	err     error
}

func (s *fakeSaver) SaveMatchResult(r multiplayer.MatchResult) error {
	s.results = append(s.results, r)
	return s.err
}

func newTestModel(t *testing.T) (GameModel, *fakeGame, *fakeSaver) {
	t.Helper()
	game := &fakeGame{}
	saver := &fakeSaver{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewGameModel(game, saver, cfg, "test-session")
	m.Init()
	return m, game, saver
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGameModelSavesWinOnce(t *testing.T) {
	m, game, saver := newTestModel(t)

	game.next = core.GameState{Turns: 3}
	m = update(t, m, TickMsg{})
	if len(saver.results) != 0 {
		t.Fatal("nothing should be saved before a win")
	}

	game.next = core.GameState{GameOver: true, Winner: 2, Turns: 11}
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(saver.results) != 1 {
		t.Fatalf("saved %d results, want 1", len(saver.results))
	}
	res := saver.results[0]
	if res.Winner != 2 || res.Turns != 11 || res.Reason != multiplayer.EndCompleted {
		t.Errorf("result = %+v", res)
	}
	if res.Session != "test-session" || res.MatchID != m.Match().ID() {
		t.Errorf("result metadata = %+v", res)
	}

	// Quitting after the win does not add an abandoned record
	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || len(saver.results) != 1 {
		t.Errorf("quit after win: quitting=%v saved=%d", m.IsQuitting(), len(saver.results))
	}
}

func TestGameModelRestartStartsNewMatch(t *testing.T) {
	m, game, saver := newTestModel(t)

	game.next = core.GameState{GameOver: true, Winner: 1, Turns: 20}
	m = update(t, m, TickMsg{})
	first := m.Match().ID()

	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})

	if game.resets != 2 {
		t.Errorf("resets = %d, want 2 (init + restart)", game.resets)
	}
	if m.Match().ID() == first {
		t.Error("restart should start a new match")
	}
	if m.Match().Finished() {
		t.Error("new match should be open")
	}
	if len(saver.results) != 1 {
		t.Errorf("saved %d results, want 1", len(saver.results))
	}
}

func TestGameModelRestartIgnoredMidGame(t *testing.T) {
	m, game, _ := newTestModel(t)

	game.next = core.GameState{Turns: 2}
	m = update(t, m, TickMsg{})
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})

	if game.resets != 1 {
		t.Errorf("resets = %d, restart should need a finished game", game.resets)
	}
}

func TestGameModelAbandon(t *testing.T) {
	tests := []struct {
		name      string
		turns     int
		key       tea.KeyMsg
		wantSaved int
		wantBack  bool
	}{
		{"quit before any roll", 0, runeKey('q'), 0, false},
		{"quit mid-game", 5, runeKey('q'), 1, false},
		{"back mid-game", 5, tea.KeyMsg{Type: tea.KeyEsc}, 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, game, saver := newTestModel(t)
			game.next = core.GameState{Turns: tc.turns}
			m = update(t, m, TickMsg{})

			m = update(t, m, tc.key)
			if len(saver.results) != tc.wantSaved {
				t.Fatalf("saved %d results, want %d", len(saver.results), tc.wantSaved)
			}
			if tc.wantSaved > 0 {
				res := saver.results[0]
				if res.Reason != multiplayer.EndAbandoned || res.Winner != 0 {
					t.Errorf("result = %+v", res)
				}
			}
			if m.BackToMenu() != tc.wantBack {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tc.wantBack)
			}
		})
	}
}

func TestGameModelSaveErrorIsNotFatal(t *testing.T) {
	m, game, saver := newTestModel(t)
	saver.err = errors.New("disk full")

	game.next = core.GameState{GameOver: true, Winner: 1, Turns: 9}
	m = update(t, m, TickMsg{})
	if m.IsQuitting() || !m.Match().Finished() {
		t.Error("save failure should not stop the game")
	}
}

func TestGameModelPassesActions(t *testing.T) {
	m, game, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	update(t, m, TickMsg{})

	if len(game.lastIn) != 1 || game.lastIn[0] != core.ActionRoll {
		t.Errorf("game saw %v, want [Roll]", game.lastIn)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	m, game, _ := newTestModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.resizedW != 100 {
		t.Errorf("game resized to %d, want 100", game.resizedW)
	}
	if game.resets != 1 {
		t.Errorf("resize should not reset a resizable game (resets = %d)", game.resets)
	}
	if m.View() == "" {
		t.Error("View() should render the game")
	}
}

func TestGameModelInstructionsOverlay(t *testing.T) {
	m, game, _ := newTestModel(t)

	m = update(t, m, runeKey('?'))
	if !m.ShowingHelp() {
		t.Fatal("? should open the instructions")
	}

	view := ansi.Strip(m.View())
	for _, want := range []string{"HOW TO PLAY", "exact roll", "roll", "how to play", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("instructions missing %q:\n%s", want, view)
		}
	}

	// The table is frozen and the closing key is not passed on
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.ShowingHelp() {
		t.Fatal("any key should close the instructions")
	}
	update(t, m, TickMsg{})
	if len(game.lastIn) != 0 {
		t.Errorf("closing key reached the game: %v", game.lastIn)
	}
}

func TestGameModelInstructionsPauseTicks(t *testing.T) {
	m, game, _ := newTestModel(t)
	m = m.WithInstructions()

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if game.steps != 0 {
		t.Errorf("game stepped %d times behind the instructions", game.steps)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc on the instructions should not leave the table")
	}

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should still quit")
	}
}
