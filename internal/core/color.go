package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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
	ColorBrown
)

// Scene roles. Renderers pick these instead of raw colors so the palette can
// change in one place.
const (
	ColorPlayer      = ColorBrightRed
	ColorPlayerBlink = ColorWhite
	ColorEnemy       = ColorGreen
	ColorEnemyDown   = ColorGray
	ColorBlock       = ColorBrightYellow
	ColorBlockDone   = ColorOrange
	ColorPlatform    = ColorBrown
	ColorRock        = ColorGray
	ColorGem         = ColorBrightCyan
	ColorGrass       = ColorBrightGreen
	ColorDirt        = ColorBrown
	ColorHole        = ColorGray
	ColorCastle      = ColorWhite
	ColorHUD         = ColorBrightWhite
	ColorMessage     = ColorBrightYellow
	ColorScorePopup  = ColorBrightMagenta
)
