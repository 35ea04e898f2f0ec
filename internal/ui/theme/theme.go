package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/mastery"
)

// Palette: ink on dark paper with a vermilion seal accent.
var (
	Primary   = lipgloss.Color("#E0533D") // vermilion
	Secondary = lipgloss.Color("#5FA8A0") // celadon
	Accent    = lipgloss.Color("#E3B23C") // gold
	Success   = lipgloss.Color("#6BBF59")
	Error     = lipgloss.Color("#E5484D")
	Text      = lipgloss.Color("#F2EDE4") // rice paper
	TextDim   = lipgloss.Color("#9A958C")
	BgCard    = lipgloss.Color("#24211E")
	Border    = lipgloss.Color("#3A3632")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Prompt renders the term or character being studied.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 4)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// BandColor returns the display color for a mastery band.
func BandColor(b mastery.Band) color.Color {
	switch b {
	case mastery.BandStrong:
		return Success
	case mastery.BandMedium:
		return Accent
	default:
		return Error
	}
}
