package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

// stubGame is a scripted game for exercising the host loop.
type stubGame struct {
	resets int
	frames []core.InputFrame
	state  core.GameState
	events []core.Event // Emitted on the next step only
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.frames = nil
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	res := core.StepResult{State: g.state, Events: g.events}
	g.events = nil
	return res
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type fakeStore struct {
	runs []storage.Run
	err  error
}

func (s *fakeStore) SaveRun(run storage.Run) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.runs = append(s.runs, run)
	return "run-" + run.GameID, nil
}

type countingAudio struct{ pickups int }

func (a *countingAudio) PlayPickup() { a.pickups++ }

func newTestModel(g *stubGame, opts Options) Model {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
	m := NewModel(g, cfg, opts)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, TickMsg(time.Now()))
	return m
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	newTestModel(g, Options{})

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelTickStepsOnce(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, Options{})

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	m = tick(t, m)

	if len(g.frames) != 2 {
		t.Errorf("steps = %d, want 2", len(g.frames))
	}
	if m.IsQuitting() {
		t.Error("model should not be quitting")
	}
}

func TestModelHoldsThrustAcrossTicks(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = tick(t, m)
	if !g.lastFrame().Has(core.ActionThrust) {
		t.Fatal("thrust should be set on the tick after the press")
	}

	for range HoldWindowTicks(60) {
		m = tick(t, m)
	}
	if g.lastFrame().Has(core.ActionThrust) {
		t.Error("thrust should be released once the hold window passes")
	}
}

func TestModelOneShotActionsLastOneTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, Options{})

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m)
	if !g.lastFrame().Has(core.ActionPause) {
		t.Fatal("pause should reach the game")
	}

	tick(t, m)
	if g.lastFrame().Has(core.ActionPause) {
		t.Error("pause should only be delivered once")
	}
}

func TestModelPlaysPickupSound(t *testing.T) {
	g := &stubGame{}
	snd := &countingAudio{}
	m := newTestModel(g, Options{Audio: snd})

	g.events = []core.Event{
		{Kind: core.EventPickup, ID: 1},
		{Kind: core.EventSpawn, ID: 2},
		{Kind: core.EventPickup, ID: 3},
	}
	tick(t, m)

	if snd.pickups != 2 {
		t.Errorf("pickups played = %d, want 2", snd.pickups)
	}
}

func TestModelSavesScoreOnceOnGameOver(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := newTestModel(g, Options{Store: store, Player: "alice"})

	g.state.Score = 5
	m = tick(t, m)
	m = tick(t, m)
	g.state.GameOver = true
	m = tick(t, m)
	m = tick(t, m)

	if len(store.runs) != 1 {
		t.Fatalf("saved runs = %d, want 1", len(store.runs))
	}
	run := store.runs[0]
	if run.GameID != "stub" || run.Player != "alice" || run.Score != 5 {
		t.Errorf("saved run = %+v", run)
	}
	if run.Ticks != 2 {
		t.Errorf("run ticks = %d, want 2", run.Ticks)
	}
	if m.LastRunID() != "run-stub" {
		t.Errorf("LastRunID = %q", m.LastRunID())
	}
}

func TestModelDefaultsPlayerToLocal(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := newTestModel(g, Options{Store: store})

	g.state = core.GameState{Score: 1, GameOver: true}
	tick(t, m)

	if len(store.runs) != 1 || store.runs[0].Player != storage.LocalPlayer {
		t.Errorf("runs = %+v, want one run by %q", store.runs, storage.LocalPlayer)
	}
}

func TestModelSkipsZeroScore(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := newTestModel(g, Options{Store: store})

	g.state.GameOver = true
	m = tick(t, m)
	update(t, m, runeKey('q'))

	if len(store.runs) != 0 {
		t.Errorf("saved runs = %d, want 0", len(store.runs))
	}
}

func TestModelQuitSavesScore(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{}
	m := newTestModel(g, Options{Store: store})

	g.state.Score = 3
	m = tick(t, m)
	m, cmd := update(t, m, runeKey('q'))

	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if len(store.runs) != 1 || store.runs[0].Score != 3 {
		t.Errorf("runs = %+v, want the running score saved", store.runs)
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelSaveFailureIsNotFatal(t *testing.T) {
	g := &stubGame{}
	store := &fakeStore{err: errors.New("disk full")}
	m := newTestModel(g, Options{Store: store})

	g.state = core.GameState{Score: 2, GameOver: true}
	m = tick(t, m)

	if m.LastRunID() != "" {
		t.Errorf("LastRunID = %q, want empty", m.LastRunID())
	}
	if m.IsQuitting() {
		t.Error("failed save should not quit")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, Options{})

	// Restart is ignored while the run is live.
	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m)
	if g.resets != 1 {
		t.Fatalf("resets = %d, want 1", g.resets)
	}

	g.state = core.GameState{Score: 4, GameOver: true}
	m = tick(t, m)
	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m)

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.State().GameOver {
		t.Error("state should be reset after restart")
	}
}

func TestModelBackToMenu(t *testing.T) {
	t.Run("ignored without AllowBack", func(t *testing.T) {
		g := &stubGame{}
		m := newTestModel(g, Options{})
		g.state.GameOver = true
		m = tick(t, m)
		m, _ = update(t, m, runeKey('b'))
		if m.BackToMenu() {
			t.Error("back should be ignored for a standalone run")
		}
	})

	t.Run("after game over", func(t *testing.T) {
		g := &stubGame{}
		m := newTestModel(g, Options{AllowBack: true})
		g.state.GameOver = true
		m = tick(t, m)
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		if !m.BackToMenu() {
			t.Error("esc after game over should return to the menu")
		}
	})

	t.Run("esc during play ends the run", func(t *testing.T) {
		g := &stubGame{}
		m := newTestModel(g, Options{AllowBack: true})
		m = tick(t, m)
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
		if m.BackToMenu() {
			t.Error("esc during play should not leave immediately")
		}
		tick(t, m)
		if !g.lastFrame().Has(core.ActionQuit) {
			t.Error("esc should reach the game as a quit action")
		}
	})
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resize should not reset the game, resets = %d", g.resets)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}

func TestModelViewHasFooter(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 120, ScreenH: 10, TickRate: 60, Seed: 1}, Options{})
	m.Init()

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("view has %d lines, want 10", len(lines))
	}
	if !strings.HasPrefix(lines[0], "stub") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[9], "pause") {
		t.Errorf("footer = %q, want controls hint", lines[9])
	}
}
