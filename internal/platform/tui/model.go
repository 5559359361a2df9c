package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-tui/internal/core"
	"github.com/vovakirdan/snake-tui/internal/games/snake"
	"github.com/vovakirdan/snake-tui/internal/replay"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

// ScoreSaver records finished rounds. *storage.Store implements it.
type ScoreSaver interface {
	SaveScore(r storage.Result) (int64, error)
}

// Publisher receives a snapshot after every tick. *spectate.Hub implements it.
type Publisher interface {
	Publish(s snake.Snapshot)
}

// Session holds everything one game session needs besides the simulation.
// Zero values disable the optional parts.
type Session struct {
	Options   snake.Options
	Keeper    snake.BestScoreKeeper
	FPS       int
	Player    string     // Stored with each score; "local" when empty
	Scores    ScoreSaver // Score history
	ReplayDir string     // Replays are written here when set
	Spectate  Publisher
	Logger    *log.Logger
	NewRunID  func() string
}

// Model is the Bubble Tea model for a snake session.
type Model struct {
	session  Session
	sim      *snake.Simulation
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	recorder *replay.Recorder
	logger   *log.Logger

	runID    string
	gen      int  // current step chain
	paused   bool // user pause
	tooSmall bool // board does not fit; stepping is suspended
	saved    bool // finished round has been persisted
	quitting bool
}

// NewModel creates a model with a fresh simulation. A zero seed is
// replaced with a time-based one.
func NewModel(s Session) Model {
	if s.Options.Seed == 0 {
		s.Options.Seed = time.Now().UnixNano()
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	if s.Player == "" {
		s.Player = "local"
	}
	if s.Logger == nil {
		s.Logger = log.Default()
	}
	if s.NewRunID == nil {
		s.NewRunID = storage.NewRunID
	}

	m := Model{
		session: s,
		sim:     snake.New(s.Options, s.Keeper),
		screen:  core.NewScreen(core.DefaultConfig().ScreenW, core.DefaultConfig().ScreenH-1),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  s.Logger,
		runID:   s.NewRunID(),
	}
	if s.ReplayDir != "" {
		m.recorder = replay.NewRecorder(m.runID)
	}
	return m
}

// Init starts the frame and step loops.
func (m Model) Init() tea.Cmd {
	m.publish()
	return tea.Batch(frameCmd(m.session.FPS), stepCmd(m.sim.Interval(), m.gen))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m, frameCmd(m.session.FPS)

	case StepMsg:
		return m.handleStep(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionPause:
		if m.sim.IsOver() {
			return m, nil
		}
		m.paused = !m.paused
		if !m.paused {
			return m, m.resume()
		}
		return m, nil

	case core.ActionRestart:
		if !m.sim.IsOver() {
			return m, nil
		}
		return m, m.restart()
	}

	if dir, ok := DirectionFor(action); ok && !m.paused {
		m.sim.ChangeDirection(dir)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, max(msg.Height-1, 0)) // last row is the help footer

	opts := m.sim.Options()
	_, fits := BoardLayout(m.screen.Width(), m.screen.Height(), opts.Width, opts.Height)
	wasSmall := m.tooSmall
	m.tooSmall = !fits

	if wasSmall && fits {
		return m, m.resume()
	}
	return m, nil
}

// handleStep runs one simulation tick and schedules the next one using the
// interval after the tick.
func (m Model) handleStep(msg StepMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused || m.tooSmall || m.sim.IsOver() {
		return m, nil
	}

	res := m.sim.Tick()
	if m.recorder != nil {
		m.recorder.Record(m.sim.Snapshot())
	}
	m.publish()

	if res.Over {
		m.finishRound(res)
		return m, nil
	}
	return m, stepCmd(m.sim.Interval(), m.gen)
}

// resume starts a new step chain, retiring any pending step.
func (m *Model) resume() tea.Cmd {
	if m.paused || m.tooSmall || m.sim.IsOver() {
		return nil
	}
	m.gen++
	return stepCmd(m.sim.Interval(), m.gen)
}

// restart begins a new round under a new run id.
func (m *Model) restart() tea.Cmd {
	m.sim.Restart()
	m.runID = m.session.NewRunID()
	if m.recorder != nil {
		m.recorder.Reset(m.runID)
	}
	m.saved = false
	m.paused = false
	m.publish()
	m.logger.Debug("round started", "run", m.runID, "round", m.sim.Round())
	return m.resume()
}

// finishRound persists the round once. Failures are logged; play goes on.
func (m *Model) finishRound(res snake.TickResult) {
	if m.saved {
		return
	}
	m.saved = true

	snap := m.sim.Snapshot()
	m.logger.Info("game over",
		"run", m.runID, "player", m.session.Player,
		"score", snap.Score, "length", snap.Len(), "ticks", snap.Tick, "new_best", res.NewBest)

	if m.session.Scores != nil && snap.Score > 0 {
		if _, err := m.session.Scores.SaveScore(storage.Result{
			RunID:  m.runID,
			Player: m.session.Player,
			Score:  snap.Score,
			Length: snap.Len(),
			Ticks:  snap.Tick,
		}); err != nil {
			m.logger.Warn("cannot save score", "run", m.runID, "err", err)
		}
	}

	if m.recorder != nil {
		path, err := replay.WriteFile(m.session.ReplayDir, m.runID, m.recorder.Frames())
		if err != nil {
			m.logger.Warn("cannot write replay", "run", m.runID, "err", err)
		} else {
			m.logger.Info("replay written", "path", path, "frames", m.recorder.Len())
		}
	}
}

func (m *Model) publish() {
	if m.session.Spectate != nil {
		m.session.Spectate.Publish(m.sim.Snapshot())
	}
}

// Snapshot returns the current simulation snapshot.
func (m Model) Snapshot() snake.Snapshot {
	return m.sim.Snapshot()
}

// Paused reports whether the user paused the game.
func (m Model) Paused() bool {
	return m.paused
}

// RunID returns the id of the current round.
func (m Model) RunID() string {
	return m.runID
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawGame(m.screen, m.sim.Snapshot(), m.paused)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a local session.
func Run(s Session, width, height int) error {
	model := NewModel(s)
	if width > 0 && height > 0 {
		model.screen.Resize(width, height-1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
