package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-tui/internal/config"
	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

var menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

// MenuKeyMap defines the key bindings for the difficulty picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel lets the player pick a difficulty preset before a game.
type MenuModel struct {
	presets  []config.DifficultyPreset
	base     snake.Pace
	cursor   int
	width    int
	height   int
	keys     MenuKeyMap
	chosen   bool
	quitting bool
}

// NewMenuModel creates a picker with the cursor on current.
// The base pace is used to show each preset's start and top speed.
func NewMenuModel(base snake.Pace, current config.DifficultyPreset, width, height int) MenuModel {
	m := MenuModel{
		presets: config.Presets,
		base:    base,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
	}
	if current == "" {
		current = config.DifficultyNormal
	}
	for i, p := range m.presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the preset list.
func (m MenuModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("S N A K E", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		pace := config.ApplyPreset(m.base, p)
		line := fmt.Sprintf("%s%-7s %3dms -> %3dms", cursor, p,
			pace.Interval(0).Milliseconds(), pace.Interval(maxScoreShown).Milliseconds())
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Play  |  Q: Quit", m.width))
	return b.String()
}

// maxScoreShown is the score used for the top speed column.
const maxScoreShown = 100000

// Selected returns the chosen preset, or false if the player quit.
func (m MenuModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return m.presets[m.cursor], true
}

// RunMenu runs the difficulty picker and returns the chosen preset.
// ok is false when the player quit instead of choosing.
func RunMenu(base snake.Pace, current config.DifficultyPreset, width, height int) (config.DifficultyPreset, bool, error) {
	p := tea.NewProgram(
		NewMenuModel(base, current, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return "", false, nil
	}
	preset, chosen := m.Selected()
	return preset, chosen, nil
}
