// Package replay records snake runs tick by tick and stores them as
// zstd-compressed parquet files, one row per tick.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

// SchemaVersion is written to the file metadata under the "schema" key.
const SchemaVersion = "snake_frame_v1"

// ErrEmpty is returned when writing a run without frames.
var ErrEmpty = errors.New("replay: no frames")

// Frame is the state of a run right after one tick.
type Frame struct {
	RunID      string  `parquet:"run_id,dict"`
	Round      int32   `parquet:"round"`
	Tick       int64   `parquet:"tick"`
	Width      int32   `parquet:"width"`
	Height     int32   `parquet:"height"`
	BodyX      []int32 `parquet:"body_x"`
	BodyY      []int32 `parquet:"body_y"`
	Dir        string  `parquet:"dir,dict"`
	FoodX      int32   `parquet:"food_x"`
	FoodY      int32   `parquet:"food_y"`
	Score      int32   `parquet:"score"`
	Best       int32   `parquet:"best"`
	IntervalMS int32   `parquet:"interval_ms"`
	Over       bool    `parquet:"over"`
}

// FrameFrom converts a simulation snapshot into a frame row.
func FrameFrom(runID string, s snake.Snapshot) Frame {
	f := Frame{
		RunID:      runID,
		Round:      int32(s.Round),
		Tick:       int64(s.Tick),
		Width:      int32(s.Width),
		Height:     int32(s.Height),
		BodyX:      make([]int32, len(s.Segments)),
		BodyY:      make([]int32, len(s.Segments)),
		Dir:        s.Dir.String(),
		FoodX:      int32(s.Food.X),
		FoodY:      int32(s.Food.Y),
		Score:      int32(s.Score),
		Best:       int32(s.Best),
		IntervalMS: int32(s.Interval / time.Millisecond),
		Over:       s.Over(),
	}
	for i, c := range s.Segments {
		f.BodyX[i] = int32(c.X)
		f.BodyY[i] = int32(c.Y)
	}
	return f
}

// Snapshot rebuilds the snapshot a frame was taken from.
func (f Frame) Snapshot() snake.Snapshot {
	dir, _ := snake.ParseDirection(f.Dir)
	state := snake.StateRunning
	if f.Over {
		state = snake.StateOver
	}
	segs := make([]snake.Cell, len(f.BodyX))
	for i := range segs {
		segs[i] = snake.Cell{X: int(f.BodyX[i]), Y: int(f.BodyY[i])}
	}
	return snake.Snapshot{
		Round:    int(f.Round),
		Tick:     uint64(f.Tick),
		Width:    int(f.Width),
		Height:   int(f.Height),
		Segments: segs,
		Dir:      dir,
		Food:     snake.Cell{X: int(f.FoodX), Y: int(f.FoodY)},
		Score:    int(f.Score),
		Best:     int(f.Best),
		Interval: time.Duration(f.IntervalMS) * time.Millisecond,
		State:    state,
	}
}

// Recorder accumulates frames for the current round.
type Recorder struct {
	runID  string
	frames []Frame
}

// NewRecorder starts a recording for runID.
func NewRecorder(runID string) *Recorder {
	return &Recorder{runID: runID}
}

// RunID returns the id of the run being recorded.
func (r *Recorder) RunID() string {
	return r.runID
}

// Record appends the snapshot as a frame.
func (r *Recorder) Record(s snake.Snapshot) {
	r.frames = append(r.frames, FrameFrom(r.runID, s))
}

// Frames returns the recorded frames.
func (r *Recorder) Frames() []Frame {
	return r.frames
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Reset drops recorded frames and switches to a new run id.
func (r *Recorder) Reset(runID string) {
	r.runID = runID
	r.frames = nil
}

// FileName returns the file name used for a run.
func FileName(runID string) string {
	return "run_" + runID + ".parquet"
}

// WriteFile writes frames to dir and returns the file path.
// The file is written to a temp path and renamed into place.
func WriteFile(dir, runID string, frames []Frame) (string, error) {
	if len(frames) == 0 {
		return "", ErrEmpty
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("replay: create output dir: %w", err)
	}

	outPath := filepath.Join(dir, FileName(runID))
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, frames,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", SchemaVersion),
		parquet.KeyValueMetadata("run_id", runID),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("replay: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("replay: rename parquet: %w", err)
	}
	return outPath, nil
}

// ReadFile loads every frame of a replay file in tick order.
func ReadFile(path string) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: open parquet %s: %w", path, err)
	}
	if schema, ok := pf.Lookup("schema"); ok && schema != SchemaVersion {
		return nil, fmt.Errorf("replay: unsupported schema %q", schema)
	}

	reader := parquet.NewGenericReader[Frame](pf)
	defer reader.Close()

	frames := make([]Frame, reader.NumRows())
	n, err := reader.Read(frames)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("replay: read rows: %w", err)
	}
	return frames[:n], nil
}
