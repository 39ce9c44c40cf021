// Package tui provides terminal UI components including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/starcatcher/internal/audio"
	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/registry"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultDBPath,
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SessionStore is everything a remote session needs from the score store.
type SessionStore interface {
	HighScorer
	ScoreSaver
	ScoreReader
}

// SSHServer wraps a Wish SSH server hosting one independent run per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A missing scores database is not fatal; sessions then play without saving.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	logger = logger.WithPrefix("ssh")
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionStore returns the store as an interface, or nil when none is open.
func (s *SSHServer) sessionStore() SessionStore {
	if s.store == nil {
		return nil
	}
	return s.store
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		fmt.Fprintln(sess.Stderr(), "starcatcher needs an interactive terminal, try ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.sessionStore(), cfg, sess.User(), s.logger)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is cancelled
// or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.closeStore()
		if err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.closeStore()
	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh: shutdown: %w", err)
	}
	return nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full remote session flow: menu -> game or
// scoreboard -> menu. Each session owns its game instance.
type SessionModel struct {
	store     SessionStore
	logger    *log.Logger
	config    core.RuntimeConfig
	username  string
	sessionID string
	screen    sessionScreen
	menu      MenuModel
	game      *Model
	scores    ScoreboardModel
	quitting  bool
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(store SessionStore, cfg core.RuntimeConfig, username string, logger *log.Logger) SessionModel {
	sessionID := uuid.NewString()
	if logger != nil {
		logger = logger.With("session", sessionID[:8], "user", username)
	}

	return SessionModel{
		store:     store,
		logger:    logger,
		config:    cfg,
		username:  username,
		sessionID: sessionID,
		menu:      NewMenuModel(highScorer(store), cfg),
	}
}

// highScorer avoids wrapping a nil store in a non-nil interface.
func highScorer(store SessionStore) HighScorer {
	if store == nil {
		return nil
	}
	return store
}

// ID returns the unique session identifier.
func (m SessionModel) ID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode. The menu quits its own
// program on selection, so its commands are dropped on transitions.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.screen = screenScores
		m.scores = NewScoreboardModel(scoreReader(m.store), m.config.ScreenW, m.config.ScreenH)
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			m.menu = NewMenuModel(highScorer(m.store), m.config)
			return m, nil
		}

		var saver ScoreSaver
		if m.store != nil {
			saver = m.store
		}
		gm := NewModel(game, m.menu.Config(), Options{
			Store:     saver,
			Audio:     audio.Silent{},
			Logger:    m.logger,
			Player:    m.username,
			AllowBack: true,
		})
		m.game = &gm
		m.screen = screenGame
		if m.logger != nil {
			m.logger.Debug("game started", "game", game.ID())
		}
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		if m.logger != nil {
			m.logger.Debug("game finished", "game", m.game.game.ID(), "score", m.game.State().Score)
		}
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.toMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m *SessionModel) toMenu() {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(highScorer(m.store), m.config)
}

func scoreReader(store SessionStore) ScoreReader {
	if store == nil {
		return nil
	}
	return store
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}
