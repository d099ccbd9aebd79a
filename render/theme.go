package render

import "github.com/gdamore/tcell/v2"

// Theme holds the semantic colours of the page
type Theme struct {
	Bg         tcell.Color
	Fg         tcell.Color
	Muted      tcell.Color
	Card       tcell.Color
	Border     tcell.Color
	Accent     tcell.Color
	AccentSoft tcell.Color
	Error      tcell.Color
	Success    tcell.Color
	Warning    tcell.Color
}

// DefaultTheme is a dark page with a yellow accent
var DefaultTheme = Theme{
	Bg:         tcell.NewRGBColor(0, 0, 0),
	Fg:         tcell.NewRGBColor(255, 255, 255),
	Muted:      tcell.NewRGBColor(156, 163, 175),
	Card:       tcell.NewRGBColor(31, 41, 55),
	Border:     tcell.NewRGBColor(55, 65, 81),
	Accent:     tcell.NewRGBColor(250, 204, 21),
	AccentSoft: tcell.NewRGBColor(253, 224, 71),
	Error:      tcell.NewRGBColor(248, 113, 113),
	Success:    tcell.NewRGBColor(74, 222, 128),
	Warning:    tcell.NewRGBColor(251, 191, 36),
}

// Base is the page style
func (t Theme) Base() tcell.Style {
	return tcell.StyleDefault.Background(t.Bg).Foreground(t.Fg)
}

// On returns the page style with a different foreground
func (t Theme) On(fg tcell.Color) tcell.Style {
	return t.Base().Foreground(fg)
}

// Panel is the style for card backgrounds
func (t Theme) Panel() tcell.Style {
	return tcell.StyleDefault.Background(t.Card).Foreground(t.Fg)
}
