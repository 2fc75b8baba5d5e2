package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Each grid cell is drawn two characters wide so the board looks square.
const cellWidth = 2

const hudHeight = 2

// BoardView carries the host-side details drawn around a State.
type BoardView struct {
	Title   string
	Elapsed time.Duration
	Footer  string // Hint line under the board
	Demo    bool   // Autoplay game, shows no start prompt
}

// BoardSize is the screen area needed to draw a grid of gridSize cells,
// frame and HUD included. The footer is drawn only when a spare row exists.
func BoardSize(gridSize int) (w, h int) {
	return gridSize*cellWidth + 2, gridSize + 2 + hudHeight
}

// DrawBoard renders s into dst: HUD, framed grid, snake, food and a status
// overlay. Used by both the playable game and the spectator view.
func DrawBoard(dst *core.Screen, s State, view BoardView) {
	dst.Clear()

	needW, needH := BoardSize(s.GridSize)
	if dst.Width() < needW || dst.Height() < needH {
		drawTooSmall(dst, needW, needH)
		return
	}

	drawHUD(dst, s, view)

	showFooter := view.Footer != "" && dst.Height() > needH
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	if showFooter {
		area.H--
	}
	frame := area.CenterIn(s.GridSize*cellWidth+2, s.GridSize+2)
	dst.DrawBox(frame, core.ColorBorder)
	origin := frame.Inset(1)

	for y := range s.GridSize {
		for x := range s.GridSize {
			dst.SetColor(origin.X+x*cellWidth, origin.Y+y, '·', core.ColorGrid)
		}
	}

	if !s.Occupies(s.Food) {
		drawCell(dst, origin, s.Food, '●', ' ', core.ColorFood)
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, origin, s.Snake[i], '█', '█', core.ColorSnakeHead)
		} else {
			drawCell(dst, origin, s.Snake[i], '▓', '▓', core.ColorSnakeBody)
		}
	}

	if showFooter {
		dst.DrawTextCentered(dst.Height()-1, view.Footer, core.ColorMuted)
	}

	switch s.Status {
	case StatusIdle:
		if !view.Demo {
			drawOverlay(dst, frame, "Press SPACE to start", fmt.Sprintf("M: mode (%s)", s.Mode.Title()), core.ColorAccent)
		}
	case StatusPaused:
		drawOverlay(dst, frame, "Paused", "SPACE or P to resume", core.ColorAccent)
	case StatusGameOver:
		hint := "R to restart, M to change mode"
		if view.Demo {
			hint = "Restarting..."
		}
		drawOverlay(dst, frame, fmt.Sprintf("Game Over  Score: %d", s.Score), hint, core.ColorWarning)
	}
}

func drawCell(dst *core.Screen, origin core.Rect, p Position, left, right rune, c core.Color) {
	x := origin.X + p.X*cellWidth
	y := origin.Y + p.Y
	if !origin.Contains(x, y) {
		return
	}
	dst.SetColor(x, y, left, c)
	dst.SetColor(x+1, y, right, c)
}

func drawHUD(dst *core.Screen, s State, view BoardView) {
	title := view.Title
	if title == "" {
		title = "Snake"
	}
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d  Speed: %dms  Mode: %s  Time: %s",
		title, s.Score, len(s.Snake), s.Speed, s.Mode.Title(), formatElapsed(view.Elapsed))
	dst.DrawText(0, 0, hud, core.ColorHUD)

	for x := range dst.Width() {
		dst.SetColor(x, 1, '─', core.ColorBorder)
	}
}

func drawOverlay(dst *core.Screen, board core.Rect, line1, line2 string, c core.Color) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := board.CenterIn(w, 5)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawText(box.X+(w-len([]rune(line1)))/2, box.Y+1, line1, c)
	dst.DrawText(box.X+(w-len([]rune(line2)))/2, box.Y+3, line2, core.ColorMuted)
}

func drawTooSmall(dst *core.Screen, needW, needH int) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Window too small", core.ColorWarning)
	dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height()), core.ColorMuted)
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
