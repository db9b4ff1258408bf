package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/multiplayer"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

// resizer is implemented by games that can follow a terminal resize without
// losing their state. Other games are reset instead.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model for one table, used both locally and
// inside SSH sessions.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	saver      multiplayer.ResultSaver // Optional, can be nil
	session    multiplayer.SessionID
	match      *multiplayer.Match
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	showHelp   bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a new game model. The saver may be nil.
func NewGameModel(game registry.Game, saver multiplayer.ResultSaver, cfg core.RuntimeConfig, session multiplayer.SessionID) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	players := cfg.Players
	if info, ok := registry.Lookup(game.ID()); ok {
		players = info.Players
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		saver:      saver,
		session:    session,
		match:      multiplayer.NewMatch(game.ID(), players, session),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
	}
}

// WithLogger returns a copy of the model that logs match results to l.
func (m GameModel) WithLogger(l *log.Logger) GameModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// WithInstructions returns a copy of the model that opens on the
// how-to-play overlay.
func (m GameModel) WithInstructions() GameModel {
	m.showHelp = true
	return m
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	keys := m.keyMapper.Keys()
	if key.Matches(msg, keys.Quit) {
		m.finish(multiplayer.EndAbandoned)
		m.quitting = true
		return m, tea.Quit
	}

	// The overlay swallows the key that closes it
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if key.Matches(msg, keys.Help) {
		m.showHelp = true
		return m, nil
	}

	m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)

	// Back leaves the table; an unfinished game counts as abandoned
	if m.inputFrame.Has(core.ActionBack) {
		m.finish(multiplayer.EndAbandoned)
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.showHelp {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Restart only once the game is decided
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.match = multiplayer.NewMatch(m.game.ID(), m.match.Players(), m.session)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.finish(multiplayer.EndCompleted)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// finish closes the current match once and hands the result to the saver.
// Abandoning a table nobody rolled on is not recorded.
func (m *GameModel) finish(reason multiplayer.EndReason) {
	if m.match == nil || m.match.Finished() {
		return
	}
	if reason == multiplayer.EndAbandoned && m.gameState.Turns == 0 {
		return
	}

	result, ok := m.match.Finish(m.gameState.Winner, m.gameState.Turns, reason)
	if !ok {
		return
	}
	m.logger.Info("match finished",
		"match", result.MatchID,
		"game", result.GameID,
		"reason", result.Reason,
		"winner", result.Winner,
		"turns", result.Turns,
	)
	if m.saver == nil {
		return
	}
	if err := m.saver.SaveMatchResult(result); err != nil {
		m.logger.Warn("could not save match", "match", result.MatchID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".ladders", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return renderInstructions(m.keyMapper.Keys(), m.config.ScreenW, m.config.ScreenH)
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// ShowingHelp reports whether the how-to-play overlay is open.
func (m GameModel) ShowingHelp() bool {
	return m.showHelp
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Match returns the match currently being played.
func (m GameModel) Match() *multiplayer.Match {
	return m.match
}

// backModel wraps a GameModel so that going back ends the local program.
type backModel struct {
	GameModel
}

func (b backModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := b.GameModel.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		return next, cmd
	}
	b.GameModel = gm
	if gm.BackToMenu() {
		return b, tea.Quit
	}
	return b, cmd
}

// RunGame plays a table in the local terminal.
// Returns true if the user asked to go back to the menu, false if quitting.
func RunGame(game registry.Game, saver multiplayer.ResultSaver, cfg core.RuntimeConfig, logger *log.Logger) (goBack bool, err error) {
	model := backModel{NewGameModel(game, saver, cfg, multiplayer.LocalSession).WithLogger(logger).WithInstructions()}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(backModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
