package tui

import (
	"fmt"

	"github.com/vovakirdan/snake-tui/internal/core"
	"github.com/vovakirdan/snake-tui/internal/games/snake"
)

const (
	hudHeight = 2 // status line + separator

	glyphHead = 'O'
	glyphBody = 'o'
	glyphFood = '*'
)

// Layout places the board on the screen.
type Layout struct {
	Board core.Rect // Box around the grid, border included
}

// BoardLayout centers a gridW×gridH board below the HUD. ok is false when
// the screen is too small to show the whole board.
func BoardLayout(screenW, screenH, gridW, gridH int) (Layout, bool) {
	boxW, boxH := gridW+2, gridH+2
	if screenW < boxW || screenH < boxH+hudHeight {
		return Layout{}, false
	}
	x := (screenW - boxW) / 2
	y := hudHeight + (screenH-hudHeight-boxH)/2
	return Layout{Board: core.NewRect(x, y, boxW, boxH)}, true
}

// cell returns the screen position of a grid cell.
func (l Layout) cell(c snake.Cell) (int, int) {
	return l.Board.X + 1 + c.X, l.Board.Y + 1 + c.Y
}

// DrawGame renders the HUD, the board and any overlay for snap.
// Returns false if the screen could not fit the board.
func DrawGame(dst *core.Screen, snap snake.Snapshot, paused bool) bool {
	dst.Clear()
	drawHUD(dst, snap)

	layout, ok := BoardLayout(dst.Width(), dst.Height(), snap.Width, snap.Height)
	if !ok {
		drawOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", snap.Width+2, snap.Height+2+hudHeight))
		return false
	}

	dst.DrawBox(layout.Board, core.ColorGray)

	fx, fy := layout.cell(snap.Food)
	dst.SetColored(fx, fy, glyphFood, core.ColorRed)

	// Tail first so the head wins on overlap.
	for i := len(snap.Segments) - 1; i >= 0; i-- {
		seg := snap.Segments[i]
		if !seg.In(snap.Width, snap.Height) {
			continue
		}
		x, y := layout.cell(seg)
		if i == 0 {
			dst.SetColored(x, y, glyphHead, core.ColorBrightGreen)
		} else {
			dst.SetColored(x, y, glyphBody, core.ColorGreen)
		}
	}

	switch {
	case snap.Over():
		hint := "Press R to restart"
		if snap.Score > 0 && snap.Score >= snap.Best {
			hint = "New best! Press R to restart"
		}
		drawOverlay(dst, fmt.Sprintf("Game Over  Score: %d", snap.Score), hint)
	case paused:
		drawOverlay(dst, "Paused", "Press P to continue")
	}
	return true
}

func drawHUD(dst *core.Screen, snap snake.Snapshot) {
	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Length: %d  Speed: %dms",
		snap.Score, snap.Best, snap.Len(), snap.Interval.Milliseconds())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// drawOverlay draws a centered two-line message box.
func drawOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorWhite)
}
