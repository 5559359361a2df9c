package tui

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

func TestSSHSessionPerUser(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SetBestScore("ssh:alice", 90)

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "keys", "host_ed25519"),
		IdleTimeout: time.Minute,
		Options:     snake.DefaultOptions(),
		FPS:         30,
	}, store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	alice := NewModel(srv.sessionFor("alice"))
	bob := NewModel(srv.sessionFor("bob"))

	if alice.Snapshot().Best != 90 {
		t.Errorf("alice best = %d, expected 90", alice.Snapshot().Best)
	}
	if bob.Snapshot().Best != 0 {
		t.Errorf("bob best = %d, expected 0", bob.Snapshot().Best)
	}
	if alice.session.Player != "alice" || alice.session.FPS != 30 {
		t.Errorf("session = %+v", alice.session)
	}
}

func TestSSHSessionWithoutStore(t *testing.T) {
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "host_ed25519"),
		Options:     snake.DefaultOptions(),
	}, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}

	sess := srv.sessionFor("carol")
	if sess.Scores != nil || sess.Keeper != nil {
		t.Error("session without store should not persist")
	}
}
