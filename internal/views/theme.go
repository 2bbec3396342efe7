package views

import "github.com/charmbracelet/lipgloss"

type Palette struct {
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	OK      lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
	Warning lipgloss.Color
}

var (
	DarkPalette = Palette{
		Accent:  lipgloss.Color("#FECC02"),
		Text:    lipgloss.Color("#F3F4F6"),
		Muted:   lipgloss.Color("8"),
		OK:      lipgloss.Color("10"),
		Error:   lipgloss.Color("9"),
		Border:  lipgloss.Color("#3B82F6"),
		Warning: lipgloss.Color("11"),
	}
	LightPalette = Palette{
		Accent:  lipgloss.Color("#006AA7"),
		Text:    lipgloss.Color("#1F2937"),
		Muted:   lipgloss.Color("#6B7280"),
		OK:      lipgloss.Color("#15803D"),
		Error:   lipgloss.Color("#B91C1C"),
		Border:  lipgloss.Color("#006AA7"),
		Warning: lipgloss.Color("#B45309"),
	}
)

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	Header lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Modal  lipgloss.Style
	Footer lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Status: lipgloss.NewStyle().Foreground(p.OK),
		Error:  lipgloss.NewStyle().Foreground(p.Error),
		Panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Modal:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(p.Warning).Padding(0, 2),
		Footer: lipgloss.NewStyle().Foreground(p.Muted),
		Accent: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Muted:  lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// StylesFor maps a theme name to its styles. Anything but "light" is dark.
func StylesFor(theme string) Styles {
	if theme == "light" {
		return NewStyles(LightPalette)
	}
	return NewStyles(DarkPalette)
}

// GlamourStyle is the glamour standard style matching theme.
func GlamourStyle(theme string) string {
	if theme == "light" {
		return "light"
	}
	return "dark"
}
