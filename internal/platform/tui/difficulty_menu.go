package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starcatcher/internal/config"
	"github.com/vovakirdan/starcatcher/internal/core"
)

// DifficultyOption is one entry of the difficulty picker.
type DifficultyOption struct {
	Preset config.DifficultyPreset
	Label  string
	Blurb  string
}

// DifficultyOptions lists the presets offered before a run.
func DifficultyOptions() []DifficultyOption {
	return []DifficultyOption{
		{"", "Classic", "settings from your config file"},
		{config.DifficultyEasy, "Easy", "stars speed up slowly as you score"},
		{config.DifficultyNormal, "Normal", "starts a little busier"},
		{config.DifficultyHard, "Hard", "fast spawns, fewer stars on screen"},
	}
}

// DifficultyModel lets users pick a difficulty preset before a run.
type DifficultyModel struct {
	title     string
	options   []DifficultyOption
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  *config.DifficultyPreset
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker headed by the game title.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		options:   DifficultyOptions(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		preset := m.options[m.cursor].Preset
		m.selected = &preset
		return m, tea.Quit
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		line := fmt.Sprintf("  %-8s %s", opt.Label, menuDim.Render(opt.Blurb))
		if i == m.cursor {
			line = menuActive.Render(fmt.Sprintf("> %-8s", opt.Label)) + " " + opt.Blurb
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDim.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or nil if none was chosen.
func (m DifficultyModel) Selected() *config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector shows the picker. A nil preset means the user
// backed out; quit is reported separately.
func RunDifficultySelector(title string, cfg core.RuntimeConfig) (preset *config.DifficultyPreset, quit bool, err error) {
	p := tea.NewProgram(
		NewDifficultyModel(title, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return nil, true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
