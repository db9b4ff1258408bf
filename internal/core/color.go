package core

// Color is a foreground color for a screen cell.
// The platform maps it to an ANSI 256-color code.
type Color uint8

// Palette used by the board renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PlayerColors are the token colors for players 1-4.
var PlayerColors = [...]Color{ColorBrightRed, ColorCyan, ColorBrightYellow, ColorMagenta}

// PlayerColor returns the token color for a 1-based player id.
func PlayerColor(id int) Color {
	if id < 1 || id > len(PlayerColors) {
		return ColorDefault
	}
	return PlayerColors[id-1]
}
