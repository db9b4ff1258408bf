// Package ladders adapts the Snakes & Ladders engine to the platform: it turns
// key presses into rolls, replays each turn's events at a readable pace and
// draws the board.
package ladders

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-ladders/internal/config"
	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/games/ladders/engine"
	"github.com/vovakirdan/tui-ladders/internal/registry"
)

// maxLogLines is how many status messages stay visible.
const maxLogLines = 5

// Package-level settings applied on the next Reset, set by the CLI before
// a game is created.
var (
	configPath  string
	speedPreset config.SpeedPreset
	logger      *log.Logger
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetSpeedPreset sets the pacing preset.
func SetSpeedPreset(preset config.SpeedPreset) {
	speedPreset = preset
}

// SetLogger sets the logger handed to every new engine.
func SetLogger(l *log.Logger) {
	logger = l
}

// IDForPlayers returns the registry id of the table with n seats.
func IDForPlayers(n int) string {
	return fmt.Sprintf("ladders-%dp", n)
}

func init() {
	for n := engine.MinPlayers; n <= engine.MaxPlayers; n++ {
		seats := n
		registry.Register(IDForPlayers(seats), seats, func() registry.Game {
			return New(seats)
		})
	}
}

// Game is a Snakes & Ladders table.
type Game struct {
	seats  int
	cfg    config.LaddersConfig
	engine *engine.Engine
	tick   uint64

	// Playback: engine state moves instantly, the view catches up event by event.
	pending  []engine.Event
	wait     int   // Ticks before the next pending event is shown
	shownPos []int // Token positions as currently displayed
	current  int   // Player id displayed as on turn
	die      int   // Last die value shown, 0 before the first roll
	rolling  bool  // Tumble animation before the roll event shows
	winner   int   // Winner once the WinEvent has been shown
	status   []string

	// Timing in ticks, derived from cfg.Pacing
	rollTicks, moveTicks, jumpTicks, turnTicks int

	cursor   int // Square under the info cursor
	lastErr  error
	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a table for the given number of players.
func New(players int) *Game {
	return &Game{seats: players}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return IDForPlayers(g.seats)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.seats == 1 {
		return "Snakes & Ladders (Solo)"
	}
	return fmt.Sprintf("Snakes & Ladders (%d Players)", g.seats)
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tableCfg, err := config.LoadLadders(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("falling back to default table config", "error", err)
		}
		tableCfg = config.DefaultLaddersConfig()
	}
	if speedPreset != "" {
		config.ApplySpeedPreset(&tableCfg, speedPreset)
	}
	g.cfg = tableCfg

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.rollTicks = config.Ticks(tableCfg.Pacing.RollMS, tickRate)
	g.moveTicks = config.Ticks(tableCfg.Pacing.MoveMS, tickRate)
	g.jumpTicks = config.Ticks(tableCfg.Pacing.JumpMS, tickRate)
	g.turnTicks = config.Ticks(tableCfg.Pacing.TurnMS, tickRate)

	opts := []engine.Option{engine.WithDice(g.newDice(cfg.Seed))}
	if logger != nil {
		opts = append(opts, engine.WithLogger(logger))
	}
	eng, err := engine.New(g.seats, engine.DefaultBoard(), opts...)
	if err != nil {
		// Seats come from the registry, so this only trips on a programming error.
		panic(fmt.Sprintf("ladders: %v", err))
	}
	g.engine = eng

	g.tick = 0
	g.pending = nil
	g.wait = 0
	g.rolling = false
	g.die = 0
	g.winner = 0
	g.lastErr = nil
	g.paused = false
	g.shownPos = make([]int, g.seats)
	for i := range g.shownPos {
		g.shownPos[i] = engine.StartSquare
	}
	g.current = 1
	g.cursor = engine.StartSquare
	g.status = nil
	g.pushStatus("Game started! Player 1's turn.")

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()
}

func (g *Game) newDice(runtimeSeed int64) engine.Dice {
	if len(g.cfg.Dice.Script) > 0 {
		return engine.NewSequenceDice(g.cfg.Dice.Script...)
	}
	seed := g.cfg.Dice.Seed
	if seed == 0 {
		seed = runtimeSeed
	}
	return engine.NewRandDice(seed)
}

// Step advances the table by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if g.busy() {
		if in.Has(core.ActionSkip) {
			g.flush()
		} else {
			g.advancePlayback()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRoll) && g.winner == 0 {
		g.roll()
	}

	return core.StepResult{State: g.State()}
}

// roll plays a turn on the engine and queues its events for playback.
func (g *Game) roll() {
	events, err := g.engine.RollAndMove()
	if err != nil {
		g.lastErr = err
		var overErr *engine.GameOverError
		if errors.As(err, &overErr) {
			g.pushStatus(fmt.Sprintf("Game over, player %d won. Press R to play again.", overErr.WinnerID))
		} else {
			g.pushStatus(err.Error())
		}
		return
	}
	g.lastErr = nil
	g.pending = events
	g.rolling = true
	g.wait = g.rollTicks
	if g.wait == 0 {
		g.advancePlayback()
	}
}

// advancePlayback counts down the current delay and reveals events until one
// of them asks for a pause.
func (g *Game) advancePlayback() {
	if g.wait > 0 {
		g.wait--
		if g.wait > 0 {
			return
		}
	}
	for len(g.pending) > 0 {
		ev := g.pending[0]
		g.pending = g.pending[1:]
		g.reveal(ev)
		g.wait = g.delayAfter(ev)
		if g.wait > 0 {
			return
		}
	}
}

// flush reveals everything left in the current turn at once.
func (g *Game) flush() {
	for _, ev := range g.pending {
		g.reveal(ev)
	}
	g.pending = nil
	g.wait = 0
}

func (g *Game) delayAfter(ev engine.Event) int {
	switch ev.(type) {
	case engine.MoveEvent, engine.OvershootEvent:
		return g.moveTicks
	case engine.SnakeEvent, engine.LadderEvent:
		return g.jumpTicks
	case engine.TurnChangedEvent:
		return g.turnTicks
	default:
		return 0
	}
}

// reveal applies one event to the displayed state.
func (g *Game) reveal(ev engine.Event) {
	switch e := ev.(type) {
	case engine.RollEvent:
		g.rolling = false
		g.die = e.Value
		return // the die face shows the value
	case engine.MoveEvent:
		g.setShown(e.Player, e.To)
	case engine.SnakeEvent:
		g.setShown(e.Player, e.To)
	case engine.LadderEvent:
		g.setShown(e.Player, e.To)
	case engine.WinEvent:
		g.winner = e.Player
	case engine.TurnChangedEvent:
		g.current = e.Player
	}
	g.pushStatus(ev.String())
}

func (g *Game) setShown(player, square int) {
	if player >= 1 && player <= len(g.shownPos) {
		g.shownPos[player-1] = square
	}
}

func (g *Game) pushStatus(msg string) {
	g.status = append([]string{msg}, g.status...)
	if len(g.status) > maxLogLines {
		g.status = g.status[:maxLogLines]
	}
}

func (g *Game) busy() bool {
	return g.rolling || len(g.pending) > 0 || g.wait > 0
}

// moveCursor walks the info cursor across the board as drawn on screen.
func (g *Game) moveCursor(in core.InputFrame) {
	row, col := cellOf(g.cursor)
	switch {
	case in.Has(core.ActionUp):
		row++
	case in.Has(core.ActionDown):
		row--
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	default:
		return
	}
	row = core.Clamp(row, 0, boardRows-1)
	col = core.Clamp(col, 0, boardCols-1)
	g.cursor = squareAt(row, col)
}

// Resize adapts to a new terminal size without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough for board and sidebar.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// State returns the platform-facing state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		GameOver: g.winner != 0,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.busy(),
		Winner:   g.winner,
		Turns:    g.engine.Turns(),
	}
}

// Engine exposes the underlying state machine, read-only by convention.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}
