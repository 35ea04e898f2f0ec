package history

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzi/internal/mastery"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/screen"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

// maxSessions caps the session list.
const maxSessions = 50

// Source is what the history screen reads. It is satisfied by
// *practice.Service.
type Source interface {
	Aggregator() *session.Aggregator
	Tracker() *mastery.Tracker
	Now() time.Time
}

// HistoryScreen shows the week at a glance, lifetime totals and past
// sessions.
type HistoryScreen struct {
	weekly     []session.DaySummary
	totals     session.Totals
	bands      map[mastery.Band]int
	streakDays int
	sessions   []session.Stats
	selected   int
	expanded   map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New snapshots src. Sessions are listed newest first.
func New(src Source) *HistoryScreen {
	agg := src.Aggregator()
	now := src.Now()
	sessions := agg.History()
	slices.SortFunc(sessions, func(a, b session.Stats) int { return b.Date.Compare(a.Date) })
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}
	return &HistoryScreen{
		weekly:     agg.Weekly(now),
		totals:     agg.Totals(),
		bands:      src.Tracker().BandCounts(),
		streakDays: agg.StreakDays(now),
		sessions:   sessions,
		expanded:   make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderWeek(width))
	b.WriteString("\n")
	b.WriteString(s.renderTotals(width))
	b.WriteString("\n\n")

	if len(s.sessions) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No sessions yet. Start practicing!"))
		return b.String()
	}

	for i, st := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		mins := int(st.Elapsed.Minutes())
		secs := int(st.Elapsed.Seconds()) % 60
		line := fmt.Sprintf("%s%s  %d:%02d  %d studied  %.0f%% accuracy",
			prefix, st.Date.Format("Jan 02, 2006"), mins, secs, st.CardsStudied, st.Accuracy()*100)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(layout.Center(width, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %d new   %d correct   %d incorrect   started %s",
				st.NewCardsStudied, st.Correct, st.Incorrect, st.Date.Format("15:04"))
			b.WriteString(layout.Center(width, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderWeek draws one bar per day, scaled to the busiest day.
func (s *HistoryScreen) renderWeek(width int) string {
	busiest := 1
	for _, d := range s.weekly {
		busiest = max(busiest, d.CardsStudied)
	}
	barWidth := min(max(width-30, 10), 50)

	var b strings.Builder
	for _, d := range s.weekly {
		bar := components.CountBar{
			Label:      d.Day.Format("Mon 02"),
			LabelWidth: 7,
			Count:      d.CardsStudied,
			Max:        busiest,
			Width:      barWidth,
		}
		b.WriteString(layout.Center(width, bar.View()))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *HistoryScreen) renderTotals(width int) string {
	t := s.totals
	line := fmt.Sprintf("%s   %d studied   %.0f%% accuracy   ★ %s",
		layout.Plural(t.Sessions, "session"), t.CardsStudied, t.Accuracy()*100, layout.Plural(s.streakDays, "day"))

	return layout.Center(width, theme.Body.Render(line)) + "\n" +
		layout.Center(width, components.BandBar(s.bands, min(width-4, 40))) + "\n" +
		layout.Center(width, components.BandLegend(s.bands))
}
