package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starcatcher/internal/registry"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

// ScoreReader is the read side of the score store. *storage.Store implements it.
type ScoreReader interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

const (
	scoreboardLimit  = 100 // Runs loaded per game
	scoreboardChrome = 11  // Rows used by title, tabs, borders, detail and help
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardTabActive  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// scoreKeys defines the key bindings for the scoreboard.
type scoreKeys struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k scoreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k scoreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreKeys() scoreKeys {
	return scoreKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev game")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel is the Bubble Tea model for the high score screen.
// Each registered game gets a tab; the table lists its best runs.
type ScoreboardModel struct {
	games     []registry.GameInfo
	gameIdx   int
	store     ScoreReader // may be nil
	entries   []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      scoreKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
func NewScoreboardModel(store ScoreReader, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

// newTable builds the runs table sized for the current window.
func (m ScoreboardModel) newTable() table.Model {
	playerW := 12
	if spare := m.width - 60; spare > 0 {
		playerW += min(spare, 12)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: playerW},
			{Title: "Stars", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-scoreboardChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// reload fetches runs and stats for the selected game.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.gameIdx].ID
		if entries, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.entries = entries
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			e.Player,
			fmt.Sprintf("%d", e.Score),
			formatTicks(e.Ticks),
			e.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameIdx = (m.gameIdx + delta + len(m.games)) % len(m.games)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.gameIdx].Title
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boardDimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")

	body := boardEmptyStyle.Render("No runs recorded yet.\nCatch some stars to set a high score!")
	if len(m.entries) > 0 {
		body = m.table.View()
	}
	for _, line := range strings.Split(boardFrameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(centerText(boardDimStyle.Render(m.detailLine()), m.width))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// tabs renders one tab per game, collapsing to arrows on narrow screens.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.gameIdx {
			parts[i] = boardTabActive.Render(g.Title)
		} else {
			parts[i] = boardTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width && len(m.games) > 0 {
		line = boardTabActive.Render("< " + m.games[m.gameIdx].Title + " >")
	}
	return line
}

// statsLine summarizes the selected game.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  |  %d players  |  best %d  |  avg %.1f",
		m.stats.GamesCount, m.stats.Players, m.stats.HighScore, m.stats.AvgScore)
}

// detailLine describes the highlighted run.
func (m ScoreboardModel) detailLine() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return ""
	}
	e := m.entries[i]
	run := e.RunID
	if len(run) > 8 {
		run = run[:8]
	}
	if run == "" {
		run = "-"
	}
	return fmt.Sprintf("run %s  %s caught %d stars in %s", run, e.Player, e.Score, formatTicks(e.Ticks))
}

// formatTicks renders a run length at the default 60 ticks per second.
func formatTicks(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store ScoreReader, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
