package core

// Color is the semantic color of a screen cell. The platform maps each
// value to a terminal style.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorBorder          // Board frame
	ColorGrid            // Empty board cells
	ColorSnakeHead       // First segment
	ColorSnakeBody       // Remaining segments
	ColorFood
	ColorHUD     // Score line
	ColorAccent  // Titles, selected items
	ColorWarning // Game over text
	ColorMuted   // Hints
)

// String returns the color name used in config and debug output.
func (c Color) String() string {
	switch c {
	case ColorBorder:
		return "border"
	case ColorGrid:
		return "grid"
	case ColorSnakeHead:
		return "snake-head"
	case ColorSnakeBody:
		return "snake-body"
	case ColorFood:
		return "food"
	case ColorHUD:
		return "hud"
	case ColorAccent:
		return "accent"
	case ColorWarning:
		return "warning"
	case ColorMuted:
		return "muted"
	default:
		return "default"
	}
}
