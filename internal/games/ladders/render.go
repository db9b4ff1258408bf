package ladders

import (
	"fmt"

	"github.com/vovakirdan/tui-ladders/internal/core"
	"github.com/vovakirdan/tui-ladders/internal/games/ladders/engine"
)

// Render draws the board, sidebar and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, resize to continue", minScreenW, minScreenH))
		return
	}

	g.renderHeader(dst)
	g.renderBoard(dst)
	g.renderSidebar(dst)

	switch {
	case g.winner != 0:
		g.renderOverlay(dst, fmt.Sprintf("Player %d wins!", g.winner), "R: play again   B: back to menu")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHeader(dst *core.Screen) {
	dst.DrawTextColor(1, 0, g.Title(), core.ColorBrightWhite)
	hint := "Space: roll  Tab: skip  ?: help  Q: quit"
	x := dst.Width() - len(hint) - 1
	if x > len(g.Title())+2 {
		dst.DrawTextColor(x, 0, hint, core.ColorGray)
	}
}

func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	board := g.engine.Board()
	for sq := 1; sq <= board.Size && sq <= boardCols*boardRows; sq++ {
		x, y := cellOrigin(sq)

		numColor := core.ColorDefault
		mark, markColor := ' ', core.ColorDefault
		switch info := board.Info(sq); info.Kind {
		case engine.SquareSnakeHead:
			mark, markColor, numColor = 'S', core.ColorBrightRed, core.ColorRed
		case engine.SquareSnakeTail:
			mark, markColor = 's', core.ColorRed
		case engine.SquareLadderBottom:
			mark, markColor, numColor = 'L', core.ColorBrightGreen, core.ColorGreen
		case engine.SquareLadderTop:
			mark, markColor = 'l', core.ColorGreen
		}
		if sq == board.Size {
			numColor = core.ColorBrightYellow
		}

		if sq == g.cursor {
			dst.SetColor(x, y, '>', core.ColorBrightYellow)
		}
		dst.DrawTextColor(x+1, y, fmt.Sprintf("%3d", sq), numColor)
		dst.SetColor(x+4, y, mark, markColor)

		for i, pos := range g.shownPos {
			if pos == sq {
				id := i + 1
				dst.SetColor(x+id, y+1, rune('0'+id), core.PlayerColor(id))
			}
		}
	}
}

func (g *Game) renderSidebar(dst *core.Screen) {
	x := sidebarX
	width := dst.Width() - sidebarX - 1
	y := boardY

	if g.winner == 0 {
		dst.DrawTextColor(x, y, fmt.Sprintf("Turn: Player %d", g.current), core.PlayerColor(g.current))
	} else {
		dst.DrawTextColor(x, y, "Game over", core.ColorBrightWhite)
	}
	y++

	switch {
	case g.rolling:
		// Tumbling face, cosmetic only
		dst.DrawTextColor(x, y, fmt.Sprintf("Die:  [%d] ...", int(g.tick%6)+1), core.ColorGray)
	case g.die > 0:
		dst.DrawTextColor(x, y, fmt.Sprintf("Die:  [%d]", g.die), core.ColorBrightWhite)
	default:
		dst.DrawTextColor(x, y, "Die:  [ ]", core.ColorGray)
	}
	y += 2

	for i, pos := range g.shownPos {
		id := i + 1
		marker := ' '
		if id == g.current && g.winner == 0 {
			marker = '*'
		}
		dst.DrawTextColor(x, y, fmt.Sprintf("%c P%d  square %3d", marker, id, pos), core.PlayerColor(id))
		y++
	}
	y++

	for _, line := range wrap(g.engine.SquareInfo(g.cursor).Describe(), width) {
		dst.DrawTextColor(x, y, line, core.ColorYellow)
		y++
	}
	y++

	bottom := boardY + boardH
	for i, msg := range g.status {
		c := core.ColorDefault
		if i > 0 {
			c = core.ColorGray
		}
		for _, line := range wrap(msg, width) {
			if y >= bottom {
				return
			}
			dst.DrawTextColor(x, y, line, c)
			y++
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorBrightYellow)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorDefault)
}
