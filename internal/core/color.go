package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// StarColors are the tints a collectible may be given. Dim colors are left
// out so stars stay readable on a dark terminal background.
var StarColors = []Color{
	ColorBrightRed,
	ColorBrightGreen,
	ColorBrightYellow,
	ColorBrightBlue,
	ColorBrightMagenta,
	ColorBrightCyan,
	ColorBrightWhite,
	ColorOrange,
}
