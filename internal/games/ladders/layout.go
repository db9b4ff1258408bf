package ladders

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Board geometry. Squares run left to right on the bottom row, then snake
// back and forth upward, so square 100 sits in the top-left corner.
const (
	boardCols = 10
	boardRows = 10

	cellW = 5 // cursor mark, 3-digit number, jump mark
	cellH = 2 // number line and token line

	boardX = 0
	boardY = 1
	boardW = boardCols*cellW + 2
	boardH = boardRows*cellH + 2

	sidebarX = boardX + boardW + 1

	minScreenW = sidebarX + 24
	minScreenH = boardY + boardH + 1
)

// cellOf returns the visual row (0 = bottom) and column (0 = left) of a square.
func cellOf(square int) (row, col int) {
	idx := square - 1
	row = idx / boardCols
	col = idx % boardCols
	if row%2 == 1 {
		col = boardCols - 1 - col
	}
	return row, col
}

// squareAt is the inverse of cellOf.
func squareAt(row, col int) int {
	if row%2 == 1 {
		col = boardCols - 1 - col
	}
	return row*boardCols + col + 1
}

// cellOrigin returns the screen position of a square's top-left character.
func cellOrigin(square int) (x, y int) {
	row, col := cellOf(square)
	x = boardX + 1 + col*cellW
	y = boardY + 1 + (boardRows-1-row)*cellH
	return x, y
}

// wrap splits text into lines no wider than width, breaking on spaces and
// hard-breaking words that do not fit.
func wrap(text string, width int) []string {
	if width <= 0 || text == "" {
		return nil
	}
	lines := strings.Split(ansi.Wrap(text, width, ""), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
