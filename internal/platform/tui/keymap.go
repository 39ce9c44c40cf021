package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starcatcher/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// isQuit reports a request to leave the program entirely; it is separate
// from ActionQuit, which only ends the current session.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionNone, true
	case "left", "a", "h":
		return core.ActionTurnLeft, false
	case "right", "d", "l":
		return core.ActionTurnRight, false
	case "up", "w", "k", " ":
		return core.ActionThrust, false
	case "esc":
		return core.ActionQuit, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b":
		return core.ActionBack, false
	case "enter":
		return core.ActionConfirm, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Holdable reports whether an action means "while held" rather than "once".
func Holdable(a core.Action) bool {
	switch a {
	case core.ActionTurnLeft, core.ActionTurnRight, core.ActionThrust:
		return true
	}
	return false
}

// HeldKeys emulates key-held state on terminals, which report presses and
// auto-repeats but never releases. An action counts as held for a window
// of ticks after its most recent press.
type HeldKeys struct {
	window int
	last   map[core.Action]int
}

// NewHeldKeys creates a tracker with the given hold window in ticks.
func NewHeldKeys(windowTicks int) *HeldKeys {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &HeldKeys{
		window: windowTicks,
		last:   make(map[core.Action]int),
	}
}

// HoldWindowTicks converts the default hold window to ticks at a tick rate.
func HoldWindowTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, tickRate*holdWindowMs/1000)
}

const holdWindowMs = 200

// Press records a press of a at tick. Pressing one turn direction releases
// the other so a quick left-right switch does not cancel itself out.
func (h *HeldKeys) Press(a core.Action, tick int) {
	switch a {
	case core.ActionTurnLeft:
		delete(h.last, core.ActionTurnRight)
	case core.ActionTurnRight:
		delete(h.last, core.ActionTurnLeft)
	}
	h.last[a] = tick
}

// Apply sets every action still held at tick on frame.
func (h *HeldKeys) Apply(frame *core.InputFrame, tick int) {
	for a, at := range h.last {
		if tick-at < h.window {
			frame.Set(a)
		} else {
			delete(h.last, a)
		}
	}
}

// Reset releases every action.
func (h *HeldKeys) Reset() {
	clear(h.last)
}
