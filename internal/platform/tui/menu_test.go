package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-tui/internal/config"
	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

func TestMenuStartsOnCurrentPreset(t *testing.T) {
	tests := []struct {
		current  config.DifficultyPreset
		expected config.DifficultyPreset
	}{
		{"", config.DifficultyNormal},
		{config.DifficultyEasy, config.DifficultyEasy},
		{config.DifficultyHard, config.DifficultyHard},
		{config.DifficultyFixed, config.DifficultyFixed},
	}

	for _, tt := range tests {
		t.Run(string(tt.expected), func(t *testing.T) {
			m := NewMenuModel(snake.DefaultPace(), tt.current, 80, 24)
			next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			got, ok := next.(MenuModel).Selected()
			if !ok || got != tt.expected {
				t.Errorf("Selected() = %q, %v, expected %q, true", got, ok, tt.expected)
			}
		})
	}
}

func TestMenuNavigation(t *testing.T) {
	var m tea.Model = NewMenuModel(snake.DefaultPace(), config.DifficultyEasy, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // already at top
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}) // already at bottom
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Error("select should quit the picker")
	}
	got, ok := m.(MenuModel).Selected()
	if !ok || got != config.DifficultyFixed {
		t.Errorf("Selected() = %q, %v, expected fixed, true", got, ok)
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(snake.DefaultPace(), "", 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if _, ok := next.(MenuModel).Selected(); ok {
		t.Error("Selected() reported a choice after quit")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestMenuViewShowsSpeeds(t *testing.T) {
	view := NewMenuModel(snake.DefaultPace(), "", 80, 24).View()

	for _, want := range []string{"easy", "normal", "hard", "fixed", "150ms ->  60ms", "> normal"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
