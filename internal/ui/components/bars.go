package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/mastery"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// CountBar draws Count relative to Max as a run of block glyphs with the
// count printed after it.
type CountBar struct {
	Label      string
	LabelWidth int
	Count      int
	Max        int
	Width      int
	Color      color.Color
}

func (b CountBar) View() string {
	width := max(b.Width, 4)
	filled := 0
	if b.Max > 0 {
		filled = min(max(b.Count*width/b.Max, 0), width)
	}
	if b.Count > 0 && filled == 0 {
		filled = 1
	}
	fg := b.Color
	if fg == nil {
		fg = theme.Secondary
	}

	var s strings.Builder
	if b.Label != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(b.LabelWidth).Render(b.Label))
		s.WriteString(" ")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat("█", filled)))
	s.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled)))
	s.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d", b.Count)))
	return s.String()
}

var bandOrder = []mastery.Band{mastery.BandWeak, mastery.BandMedium, mastery.BandStrong}

// BandBar splits width between the weak, medium and strong counts, each in
// its band colour. Every non-empty band gets at least one cell.
func BandBar(counts map[mastery.Band]int, width int) string {
	total := 0
	for _, band := range bandOrder {
		total += counts[band]
	}
	if total == 0 || width <= 0 {
		return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", max(width, 0)))
	}

	cells := make([]int, len(bandOrder))
	used := 0
	for i, band := range bandOrder {
		if n := counts[band]; n > 0 {
			cells[i] = max(n*width/total, 1)
			used += cells[i]
		}
	}
	// Hand rounding slack to, or take overflow from, the largest band.
	widest := 0
	for i := range cells {
		if cells[i] > cells[widest] {
			widest = i
		}
	}
	cells[widest] = max(cells[widest]+width-used, 1)

	var s strings.Builder
	for i, band := range bandOrder {
		s.WriteString(lipgloss.NewStyle().Foreground(theme.BandColor(band)).Render(strings.Repeat("█", cells[i])))
	}
	return s.String()
}

// BandLegend renders "weak 3   medium 5   strong 2" in band colours.
func BandLegend(counts map[mastery.Band]int) string {
	parts := make([]string, 0, len(bandOrder))
	for _, band := range bandOrder {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.BandColor(band)).
			Render(fmt.Sprintf("%s %d", band, counts[band])))
	}
	return strings.Join(parts, "   ")
}
