package core

// Color is a display color tag. Games pick tags, the platform maps them to
// terminal colors.
type Color uint8

// Predefined color tags.
const (
	ColorDefault Color = iota
	ColorBlue
	ColorGreen
	ColorPurple
	ColorRed
	ColorYellow
	ColorGray
)

// categoryColors is the fixed bucket palette, in creation order.
var categoryColors = [...]Color{ColorBlue, ColorGreen, ColorPurple, ColorRed}

// CategoryColor returns the color tag for the category at the given creation
// index. Index 3 and beyond all share the last tag.
func CategoryColor(index int) Color {
	if index < 0 {
		index = 0
	}
	if index >= len(categoryColors) {
		index = len(categoryColors) - 1
	}
	return categoryColors[index]
}

// String returns the tag name.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorPurple:
		return "purple"
	case ColorRed:
		return "red"
	case ColorYellow:
		return "yellow"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}
