package grid

import "github.com/dshills/boxselect/internal/renderer/core"

// Theme holds the colors the grid draws with.
type Theme struct {
	Cell     core.Color
	Selected core.Color
	Marquee  core.Color
	Label    core.Color
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Cell:     core.MustHex("#3a3f4b"),
		Selected: core.MustHex("#d19a66"),
		Marquee:  core.MustHex("#61afef"),
		Label:    core.MustHex("#abb2bf"),
	}
}

func (t Theme) cellStyle(selected bool) core.Style {
	bg := t.Cell
	if selected {
		bg = t.Selected
	}
	return core.NewStyle(bg.Contrast(), bg)
}

func (t Theme) marqueeBorder() core.Style {
	return core.NewStyle(t.Marquee.Lighten(0.15), core.ColorDefault).Bold()
}

// tint returns s with its background pulled toward the marquee color.
func (t Theme) tint(s core.Style) core.Style {
	bg := s.Background
	if bg.IsDefault() {
		bg = core.ColorBlack
	}
	s.Background = bg.Blend(t.Marquee, 0.35)
	return s
}

func (t Theme) labelStyle() core.Style {
	return core.NewStyle(t.Label, core.ColorDefault).Bold()
}
