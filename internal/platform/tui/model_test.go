package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
	"github.com/vovakirdan/snake-tui/internal/replay"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

type fakeSaver struct {
	results []storage.Result
}

func (f *fakeSaver) SaveScore(r storage.Result) (int64, error) {
	f.results = append(f.results, r)
	return int64(len(f.results)), nil
}

type fakePublisher struct {
	snaps []snake.Snapshot
}

func (f *fakePublisher) Publish(s snake.Snapshot) {
	f.snaps = append(f.snaps, s)
}

func newTestModel(t *testing.T, s Session) Model {
	t.Helper()
	if s.Options.Width == 0 {
		s.Options = snake.DefaultOptions()
		s.Options.Width, s.Options.Height = 10, 10
	}
	if s.Options.Seed == 0 {
		s.Options.Seed = 5
	}
	s.Logger = log.New(io.Discard)
	ids := 0
	s.NewRunID = func() string {
		ids++
		return "run-" + string(rune('a'+ids-1))
	}
	return NewModel(s)
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return model, cmd
}

// runUntilOver feeds steps of the current chain until the round ends.
func runUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 200 && !m.Snapshot().Over(); i++ {
		m, _ = update(t, m, StepMsg{Gen: m.gen})
	}
	if !m.Snapshot().Over() {
		t.Fatal("round did not end")
	}
	return m
}

func TestStepAdvancesSimulation(t *testing.T) {
	m := newTestModel(t, Session{})

	m, cmd := update(t, m, StepMsg{Gen: 0})

	if m.Snapshot().Tick != 1 {
		t.Errorf("Tick = %d, expected 1", m.Snapshot().Tick)
	}
	if cmd == nil {
		t.Error("expected next step to be scheduled")
	}
}

func TestDirectionKeyTurnsCreature(t *testing.T) {
	m := newTestModel(t, Session{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, StepMsg{Gen: 0})

	if head := m.Snapshot().Head(); head != (snake.Cell{X: 5, Y: 6}) {
		t.Errorf("Head() = %v, expected {5 6}", head)
	}
}

func TestLatestDirectionWins(t *testing.T) {
	m := newTestModel(t, Session{})

	m, _ = update(t, m, keyRune("w"))
	m, _ = update(t, m, keyRune("s"))
	m, _ = update(t, m, StepMsg{Gen: 0})

	if head := m.Snapshot().Head(); head != (snake.Cell{X: 5, Y: 6}) {
		t.Errorf("Head() = %v, expected the last request (down) to win", head)
	}
}

func TestPauseSuspendsSteps(t *testing.T) {
	m := newTestModel(t, Session{})

	m, _ = update(t, m, keyRune("p"))
	if !m.Paused() {
		t.Fatal("expected paused")
	}

	m, cmd := update(t, m, StepMsg{Gen: 0})
	if m.Snapshot().Tick != 0 || cmd != nil {
		t.Errorf("step while paused ran: tick %d, cmd %v", m.Snapshot().Tick, cmd != nil)
	}

	m, cmd = update(t, m, keyRune("p"))
	if m.Paused() || cmd == nil {
		t.Fatal("unpause should schedule a new step chain")
	}

	m, _ = update(t, m, StepMsg{Gen: 0})
	if m.Snapshot().Tick != 0 {
		t.Error("step from the retired chain should be dropped")
	}

	m, _ = update(t, m, StepMsg{Gen: m.gen})
	if m.Snapshot().Tick != 1 {
		t.Errorf("Tick = %d, expected 1 after resuming", m.Snapshot().Tick)
	}
}

func TestDirectionIgnoredWhilePaused(t *testing.T) {
	m := newTestModel(t, Session{})

	m, _ = update(t, m, keyRune("p"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = update(t, m, keyRune("p"))
	m, _ = update(t, m, StepMsg{Gen: m.gen})

	if head := m.Snapshot().Head(); head != (snake.Cell{X: 6, Y: 5}) {
		t.Errorf("Head() = %v, expected {6 5}", head)
	}
}

func TestGameOverPersistsOnce(t *testing.T) {
	dir := t.TempDir()
	saver := &fakeSaver{}
	pub := &fakePublisher{}
	m := newTestModel(t, Session{Scores: saver, ReplayDir: dir, Spectate: pub})

	m = runUntilOver(t, m)
	ticks := m.Snapshot().Tick
	m, cmd := update(t, m, StepMsg{Gen: m.gen})
	if cmd != nil {
		t.Error("no step should be scheduled after game over")
	}

	wantSaves := 0
	if m.Snapshot().Score > 0 {
		wantSaves = 1
	}
	if len(saver.results) != wantSaves {
		t.Fatalf("SaveScore calls = %d, expected %d", len(saver.results), wantSaves)
	}
	if wantSaves == 1 {
		r := saver.results[0]
		if r.RunID != "run-a" || r.Player != "local" || r.Ticks != ticks {
			t.Errorf("saved %+v, expected run-a by local after %d ticks", r, ticks)
		}
	}

	if len(pub.snaps) != int(ticks) {
		t.Errorf("published %d snapshots, expected %d", len(pub.snaps), ticks)
	}
	if !pub.snaps[len(pub.snaps)-1].Over() {
		t.Error("last published snapshot should be over")
	}

	path := filepath.Join(dir, replay.FileName("run-a"))
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("replay not written: %v", err)
	}
	frames, err := replay.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(frames) != int(ticks) {
		t.Errorf("replay has %d frames, expected %d", len(frames), ticks)
	}
}

func TestRestartOnlyWhenOver(t *testing.T) {
	m := newTestModel(t, Session{})

	m, cmd := update(t, m, keyRune("r"))
	if m.Snapshot().Round != 1 || cmd != nil {
		t.Fatalf("restart while running: round %d", m.Snapshot().Round)
	}

	m = runUntilOver(t, m)
	m, cmd = update(t, m, keyRune("r"))

	if m.Snapshot().Round != 2 || m.Snapshot().Over() {
		t.Errorf("after restart round %d over %v, expected round 2 running", m.Snapshot().Round, m.Snapshot().Over())
	}
	if m.RunID() != "run-b" {
		t.Errorf("RunID() = %q, expected run-b", m.RunID())
	}
	if cmd == nil {
		t.Error("restart should schedule a step")
	}
}

func TestPauseIgnoredWhenOver(t *testing.T) {
	m := newTestModel(t, Session{})
	m = runUntilOver(t, m)

	m, _ = update(t, m, keyRune("p"))
	if m.Paused() {
		t.Error("pause should be ignored after game over")
	}
}

func TestTooSmallSuspendsSteps(t *testing.T) {
	m := newTestModel(t, Session{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 8})
	m, cmd := update(t, m, StepMsg{Gen: m.gen})
	if m.Snapshot().Tick != 0 || cmd != nil {
		t.Fatal("step ran while the window was too small")
	}
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("View() should show the too-small overlay")
	}

	m, cmd = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil {
		t.Fatal("growing the window should resume stepping")
	}
	m, _ = update(t, m, StepMsg{Gen: m.gen})
	if m.Snapshot().Tick != 1 {
		t.Errorf("Tick = %d, expected 1", m.Snapshot().Tick)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, Session{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quit")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, Session{})
	view := m.View()
	for _, want := range []string{"Score: 0", "Length: 3", "Speed: 150ms", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, _ = update(t, m, keyRune("p"))
	if !strings.Contains(m.View(), "Paused") {
		t.Error("View() should show the pause overlay")
	}
}
