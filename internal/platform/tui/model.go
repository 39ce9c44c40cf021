package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starcatcher/internal/audio"
	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/registry"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

const controlsHint = "←/→ turn  ↑/space thrust  p pause  esc end run  r restart  q quit"

// ScoreSaver records finished runs. *storage.Store implements it.
type ScoreSaver interface {
	SaveRun(run storage.Run) (string, error)
}

// Options configures a game Model. Zero values are usable.
type Options struct {
	Store     ScoreSaver
	Audio     audio.Player
	Logger    *log.Logger
	Player    string // Recorded with saved scores
	AllowBack bool   // b/esc after the run returns to a menu
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	config    core.RuntimeConfig
	opts      Options
	keyMapper *KeyMapper
	held      *HeldKeys
	pending   core.InputFrame // One-shot actions for the next tick
	gameState core.GameState
	tick      int
	runTicks  int // Ticks simulated in the current run

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current run
	lastRunID  string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		config:    cfg,
		opts:      opts,
		keyMapper: NewKeyMapper(),
		held:      NewHeldKeys(HoldWindowTicks(cfg.TickRate)),
		pending:   core.NewInputFrame(),
	}
}

// playfieldHeight leaves the last terminal row for the controls footer.
func playfieldHeight(h int) int {
	return max(h-1, 0)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.saveScore()
		m.quitting = true
		return m, tea.Quit
	}

	if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) {
		if action == core.ActionBack || (action == core.ActionQuit && m.gameState.GameOver) {
			m.saveScore()
			m.backToMenu = true
			return m, nil
		}
	}

	switch {
	case Holdable(action):
		m.held.Press(action, m.tick)
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.pending.Set(action)
		}
	case action != core.ActionNone:
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The world has a fixed size,
// so the run continues and only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	m.tick++

	if m.pending.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.runTicks = 0
		m.held.Reset()
		m.pending.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	frame := m.pending.Clone()
	m.held.Apply(&frame, m.tick)

	result := m.game.Step(frame)
	m.gameState = result.State
	if !result.State.GameOver && !result.State.Paused {
		m.runTicks++
	}

	for _, ev := range result.Events {
		if ev.Kind == core.EventPickup {
			m.opts.Audio.PlayPickup()
		}
	}

	if m.gameState.GameOver {
		m.saveScore()
	}

	m.pending.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the current run once, if it scored anything.
func (m *Model) saveScore() {
	if m.scoreSaved || m.gameState.Score <= 0 {
		return
	}
	m.scoreSaved = true
	if m.opts.Store == nil {
		return
	}

	runID, err := m.opts.Store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.gameState.Score,
		Ticks:  m.runTicks,
	})
	if err != nil {
		m.opts.Logger.Warn("could not save score", "game", m.game.ID(), "score", m.gameState.Score, "error", err)
		return
	}
	m.lastRunID = runID
	m.opts.Logger.Debug("score saved", "game", m.game.ID(), "score", m.gameState.Score, "run", runID)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderWithFooter(m.screen, controlsHint)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
