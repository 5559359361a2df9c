package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-tui/internal/core"
	"github.com/vovakirdan/snake-tui/internal/replay"
)

// PlaybackKeyMap defines the key bindings for replay playback.
type PlaybackKeyMap struct {
	Pause  key.Binding
	Step   key.Binding
	Faster key.Binding
	Slower key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlaybackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Faster, k.Slower, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlaybackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPlaybackKeyMap returns default key bindings.
func DefaultPlaybackKeyMap() PlaybackKeyMap {
	return PlaybackKeyMap{
		Pause:  key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Step:   key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→", "step")),
		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// PlaybackModel replays recorded frames with their original timing.
type PlaybackModel struct {
	frames   []replay.Frame
	pos      int
	speed    float64
	screen   *core.Screen
	keys     PlaybackKeyMap
	help     help.Model
	gen      int
	paused   bool
	quitting bool
}

// NewPlaybackModel creates a playback model. frames must not be empty.
func NewPlaybackModel(frames []replay.Frame) PlaybackModel {
	return PlaybackModel{
		frames: frames,
		speed:  1,
		screen: core.NewScreen(core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH-2),
		keys:   DefaultPlaybackKeyMap(),
		help:   help.New(),
	}
}

func (m PlaybackModel) delay() time.Duration {
	d := time.Duration(m.frames[m.pos].IntervalMS) * time.Millisecond
	if d <= 0 {
		d = 150 * time.Millisecond
	}
	return time.Duration(float64(d) / m.speed)
}

// Init starts playback.
func (m PlaybackModel) Init() tea.Cmd {
	return stepCmd(m.delay(), m.gen)
}

// Update handles messages.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
			m.gen++
			if !m.paused && !m.atEnd() {
				return m, stepCmd(m.delay(), m.gen)
			}
		case key.Matches(msg, m.keys.Step):
			if m.paused && !m.atEnd() {
				m.pos++
			}
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, 16)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 0.25)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, max(msg.Height-2, 0))
		return m, nil

	case StepMsg:
		if msg.Gen != m.gen || m.paused || m.atEnd() {
			return m, nil
		}
		m.pos++
		if m.atEnd() {
			return m, nil
		}
		return m, stepCmd(m.delay(), m.gen)
	}
	return m, nil
}

func (m PlaybackModel) atEnd() bool {
	return m.pos >= len(m.frames)-1
}

// Position returns the index of the frame on screen.
func (m PlaybackModel) Position() int {
	return m.pos
}

// View renders the current frame.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}
	f := m.frames[m.pos]
	DrawGame(m.screen, f.Snapshot(), false)

	status := fmt.Sprintf(" replay %s  frame %d/%d  x%g", f.RunID, m.pos+1, len(m.frames), m.speed)
	if m.paused {
		status += "  [paused]"
	}
	return RenderScreen(m.screen) + "\n" + status + "\n" + m.help.View(m.keys)
}

// RunPlayback plays frames in the terminal.
func RunPlayback(frames []replay.Frame) error {
	if len(frames) == 0 {
		return replay.ErrEmpty
	}
	p := tea.NewProgram(NewPlaybackModel(frames), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
