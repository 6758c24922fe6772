package core

// Attribute represents text attributes.
type Attribute uint8

// Text attribute flags.
const (
	AttrNone Attribute = 0
	AttrBold Attribute = 1 << (iota - 1)
	AttrDim
	AttrUnderline
	AttrReverse
)

// Has returns true if the attribute set contains attr.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// Style is the visual style of a cell.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with the given colors.
func NewStyle(fg, bg Color) Style {
	return Style{Foreground: fg, Background: bg}
}

// WithForeground returns a copy with fg as foreground.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a copy with bg as background.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// Bold returns a copy with the bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Merge overlays other on s. Default colors in other leave s unchanged.
func (s Style) Merge(other Style) Style {
	if !other.Foreground.IsDefault() {
		s.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}
