package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-tui/internal/config"
	"github.com/vovakirdan/snake-tui/internal/platform/tui"
	"github.com/vovakirdan/snake-tui/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Scores go to the shared database
and every user keeps a personal best.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses ssh.host_key_path from the config, generating it if missing

Examples:
  snake serve                           # Listen on :23234
  snake serve --ssh :2222               # Listen on port 2222
  snake serve --host-key ./my_host_key  # Use specific host key
  snake serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}

	logger, _, err := newLogger(cfg, "snake-ssh", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil // Continue without storage
	} else {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: config.ExpandHome(cfg.SSH.HostKeyPath),
		IdleTimeout: cfg.IdleTimeout(),
		Options:     cfg.Options(),
		FPS:         cfg.FPS,
		ReplayDir:   config.ExpandHome(cfg.Replay.Dir),
	}, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
