package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/registry"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
	registry.Register("stub_two", func() registry.Game { return &stubGame{} })
}

// memStore is an in-memory score store for menu and session tests.
type memStore struct {
	runs []storage.Run
}

func (s *memStore) SaveRun(run storage.Run) (string, error) {
	s.runs = append(s.runs, run)
	return "mem", nil
}

func (s *memStore) HighScore(gameID string) (int, error) {
	best := 0
	for _, r := range s.runs {
		if r.GameID == gameID && r.Score > best {
			best = r.Score
		}
	}
	return best, nil
}

func (s *memStore) TopScores(gameID string, limit int) ([]storage.ScoreEntry, error) {
	var out []storage.ScoreEntry
	for i, r := range s.runs {
		if r.GameID == gameID && len(out) < limit {
			out = append(out, storage.ScoreEntry{
				ID: int64(i + 1), GameID: r.GameID, Player: r.Player, Score: r.Score, Ticks: r.Ticks,
				CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
			})
		}
	}
	return out, nil
}

func (s *memStore) GetGameStats(gameID string) (*storage.GameStats, error) {
	stats := &storage.GameStats{GameID: gameID}
	for _, r := range s.runs {
		if r.GameID == gameID {
			stats.GamesCount++
			stats.TotalScore += int64(r.Score)
			stats.HighScore = max(stats.HighScore, r.Score)
		}
	}
	if stats.GamesCount > 0 {
		stats.Players = 1
		stats.AvgScore = float64(stats.TotalScore) / float64(stats.GamesCount)
	}
	return stats, nil
}

type brokenScores struct{}

func (brokenScores) HighScore(string) (int, error) { return 0, errors.New("db closed") }

func menuConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return mm
}

func TestMenuListsRegisteredGames(t *testing.T) {
	store := &memStore{runs: []storage.Run{{GameID: "stub", Score: 42}}}
	m := NewMenuModel(store, menuConfig())

	view := m.View()
	if !strings.Contains(view, "Stub") {
		t.Errorf("menu should list the stub game:\n%s", view)
	}
	if !strings.Contains(view, "best 42") {
		t.Errorf("menu should show the high score:\n%s", view)
	}
}

func TestMenuWithoutScores(t *testing.T) {
	for name, scores := range map[string]HighScorer{"nil": nil, "broken": brokenScores{}} {
		t.Run(name, func(t *testing.T) {
			m := NewMenuModel(scores, menuConfig())
			if !strings.Contains(m.View(), "best 0") {
				t.Error("missing scores should show as zero")
			}
		})
	}
}

func TestMenuNavigationAndSelect(t *testing.T) {
	m := NewMenuModel(nil, menuConfig())

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("enter should select a game")
	}
	if sel.GameID != "stub_two" {
		t.Errorf("selected %q, want stub_two", sel.GameID)
	}
}

func TestMenuQuitAndScoreboard(t *testing.T) {
	m := updateMenu(t, NewMenuModel(nil, menuConfig()), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit the menu")
	}

	m = updateMenu(t, NewMenuModel(nil, menuConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := updateMenu(t, NewMenuModel(nil, menuConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("overlong text should be unchanged, got %q", got)
	}
}

func TestScoreboardShowsRuns(t *testing.T) {
	store := &memStore{runs: []storage.Run{
		{GameID: "stub", Player: "alice", Score: 7, Ticks: 3600},
		{GameID: "stub", Player: "bob", Score: 3, Ticks: 60},
	}}
	m := NewScoreboardModel(store, 100, 30)

	view := m.View()
	for _, want := range []string{"HIGH SCORES - Stub", "alice", "2 runs", "best 7", "alice caught 7 stars in 1:00"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardSwitchesGames(t *testing.T) {
	m := NewScoreboardModel(&memStore{}, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if !strings.Contains(m.View(), "Stub") || !strings.Contains(m.View(), "no runs yet") {
		t.Errorf("unexpected view:\n%s", m.View())
	}

	next, _ = m.Update(runeKey('b'))
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() {
		t.Error("b should go back")
	}
}

func TestFormatTicks(t *testing.T) {
	tests := map[int]string{0: "0:00", 59: "0:00", 60: "0:01", 3600: "1:00", 3660 * 2: "2:02"}
	for ticks, want := range tests {
		if got := formatTicks(ticks); got != want {
			t.Errorf("formatTicks(%d) = %q, want %q", ticks, got, want)
		}
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	store := &memStore{}
	m := NewSessionModel(store, menuConfig(), "carol", nil)
	if m.ID() == "" {
		t.Fatal("session should have an ID")
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start a game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}

	g := m.game.game.(*stubGame)
	g.state = core.GameState{Score: 9, GameOver: true}
	m, _ = updateSession(t, m, TickMsg(time.Now()))
	m, _ = updateSession(t, m, runeKey('b'))

	if m.screen != screenMenu {
		t.Fatal("b after game over should return to the menu")
	}
	if len(store.runs) != 1 || store.runs[0].Player != "carol" {
		t.Errorf("runs = %+v, want one run by carol", store.runs)
	}
	if !strings.Contains(m.View(), "best 9") {
		t.Errorf("menu should refresh high scores:\n%s", m.View())
	}
}

func TestSessionScoreboardRoundTrip(t *testing.T) {
	m := NewSessionModel(nil, menuConfig(), "dave", nil)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.screen != screenMenu {
		t.Error("esc should return to the menu")
	}

	m, cmd := updateSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
