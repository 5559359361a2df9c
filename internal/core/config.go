package core

// RuntimeConfig contains the terminal parameters a session runs with.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	FPS     int   // Render frames per second
	Seed    int64 // RNG seed for deterministic gameplay (0 = time based)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		FPS:     60,
		Seed:    0, // 0 means use current time in platform layer
	}
}
