package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-ladders/internal/registry"
	"github.com/vovakirdan/tui-ladders/internal/storage"
)

const historyLimit = 100

// historyChrome is the number of rows taken by everything but the table body.
const historyChrome = 11

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "more seats")),
		Prev: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "fewer seats")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	seatTabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	seatTabOnStyle    = seatTabStyle.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	winsStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	historyBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	emptyHistoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// HistoryModel lists recorded matches for one table at a time.
type HistoryModel struct {
	games     []registry.GameInfo
	selected  int
	store     *storage.Store
	records   []storage.GameRecord
	wins      map[int]int // by seat, for the selected table
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history screen opened on the smallest table.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = newHistoryTable(height)
	if len(m.games) > 0 {
		m.loadGames(m.games[0].ID)
	}
	return m
}

func newHistoryTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Played", Width: 13},
			{Title: "Result", Width: 12},
			{Title: "Turns", Width: 6},
			{Title: "Time", Width: 6},
			{Title: "From", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-historyChrome, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// loadGames reads the records and seat wins of one table.
func (m *HistoryModel) loadGames(gameID string) {
	m.records, m.wins = nil, nil
	if m.store != nil {
		if records, err := m.store.RecentGames(gameID, historyLimit); err == nil {
			m.records = records
		}
		if wins, err := m.store.WinsBySeat(gameID); err == nil {
			m.wins = wins
		}
	}
	rows := make([]table.Row, 0, len(m.records))
	for _, r := range m.records {
		rows = append(rows, table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			resultLabel(r),
			fmt.Sprint(r.Turns),
			formatDuration(r.Duration),
			r.Session,
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *HistoryModel) selectTable(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.games)) % len(m.games)
	m.loadGames(m.games[m.selected].ID)
}

func resultLabel(r storage.GameRecord) string {
	if r.Winner > 0 {
		return fmt.Sprintf("P%d won", r.Winner)
	}
	return r.EndReason
}

// seatsLabel names a table by its seat count.
func seatsLabel(players int) string {
	if players == 1 {
		return "Solo"
	}
	return fmt.Sprintf("%d Players", players)
}

func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// winsLine summarizes wins per seat, e.g. "Wins  P1: 3 P2: 1".
func (m HistoryModel) winsLine() string {
	if len(m.games) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Wins ")
	for seat := 1; seat <= m.games[m.selected].Players; seat++ {
		fmt.Fprintf(&b, " P%d: %d", seat, m.wins[seat])
	}
	return b.String()
}

func (m HistoryModel) seatTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		style := seatTabStyle
		if i == m.selected {
			style = seatTabOnStyle
		}
		tabs[i] = style.Render(seatsLabel(g.Players))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectTable(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectTable(-1)
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-historyChrome, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := emptyHistoryStyle.Render("No games recorded yet.")
	if len(m.records) > 0 {
		body = m.table.View()
	}

	screen := lipgloss.JoinVertical(lipgloss.Center,
		historyTitleStyle.Render("MATCH HISTORY"),
		"",
		m.seatTabs(),
		"",
		winsStyle.Render(m.winsLine()),
		historyBoxStyle.Render(body),
		"",
		m.help.View(m.keys),
	)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, screen)
}

// IsGoingBack reports whether the player went back to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen and reports whether to return to the menu.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(HistoryModel)
	return ok && m.IsGoingBack(), nil
}
