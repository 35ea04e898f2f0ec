package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/hanzi/internal/mastery"
	"github.com/abhisek/hanzi/internal/practice"
	"github.com/abhisek/hanzi/internal/spacedrep"
	"github.com/abhisek/hanzi/internal/store"
	"github.com/abhisek/hanzi/internal/ui/components"
	"github.com/abhisek/hanzi/internal/ui/layout"
	"github.com/abhisek/hanzi/internal/ui/theme"
)

const (
	forecastDays   = 7
	recentSessions = 5
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		weakest, _ := cmd.Flags().GetInt("weakest")
		env, err := openEnv(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer env.Close()

		out, err := renderStats(cmd.Context(), env.svc, env.store.EventRepo(), weakest)
		if err != nil {
			return err
		}
		lipgloss.Println(out)
		return nil
	},
}

func renderStats(ctx context.Context, svc *practice.Service, events store.EventRepo, weakest int) (string, error) {
	now := svc.Now()
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(16)

	var b strings.Builder
	row := func(k, v string) {
		b.WriteString(label.Render(k) + theme.Body.Render(v) + "\n")
	}

	agg := svc.Aggregator()
	totals := agg.Totals()
	b.WriteString(heading.Render("Overview") + "\n")
	row("Sessions", fmt.Sprint(totals.Sessions))
	row("Studied", fmt.Sprintf("%d (%d new)", totals.CardsStudied, totals.NewCards))
	row("Accuracy", fmt.Sprintf("%.0f%%", totals.Accuracy()*100))
	row("Time", totals.Elapsed.Round(time.Minute).String())
	row("Streak", fmt.Sprintf("%s, answers %d (best %d)",
		layout.Plural(agg.StreakDays(now), "day"), agg.Streak(), agg.BestStreak()))

	b.WriteString("\n" + heading.Render("This week") + "\n")
	week := agg.Weekly(now)
	busiest := 1
	for _, d := range week {
		busiest = max(busiest, d.CardsStudied)
	}
	for _, d := range week {
		bar := components.CountBar{Count: d.CardsStudied, Max: busiest, Width: 30}
		b.WriteString(label.Render(d.Day.Format("Mon Jan 02")) + bar.View() + "\n")
	}

	tracker := svc.Tracker()
	bands := tracker.BandCounts()
	b.WriteString("\n" + heading.Render("Characters") + "\n")
	b.WriteString(label.Render("Bands") + components.BandBar(bands, 30) + "\n")
	b.WriteString(label.Render("") + components.BandLegend(bands) + "\n")
	weak, err := weakestChars(ctx, tracker, events, weakest)
	if err != nil {
		return "", err
	}
	if weak != "" {
		row("Weakest", weak)
	}

	sessions, err := events.QuerySessionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return "", err
	}
	if recent := recentSessionRows(sessions, recentSessions); len(recent) > 0 {
		b.WriteString("\n" + heading.Render("Recent sessions") + "\n")
		for _, e := range recent {
			row(e.Timestamp.Local().Format("Jan 02 15:04"), fmt.Sprintf("%-8s %3d studied  %3d correct  %s",
				e.Mode, e.CardsStudied, e.Correct, (time.Duration(e.DurationSecs) * time.Second).String()))
		}
	}

	b.WriteString("\n" + heading.Render("Decks") + "\n")
	for _, d := range svc.Collection().Decks() {
		c := d.Counts(now)
		row(truncate(d.Name, 15), fmt.Sprintf("%d cards  %d new  %d due  %d learning  %d mature",
			len(d.Cards), c[spacedrep.ReviewNew], c[spacedrep.ReviewDue], c[spacedrep.ReviewLearning], c[spacedrep.ReviewMature]))
	}

	b.WriteString("\n" + heading.Render("Reviews due") + "\n")
	for i, n := range spacedrep.Forecast(svc.Collection().AllCards(), forecastDays, now) {
		day := now.AddDate(0, 0, i).Format("Mon Jan 02")
		if i == 0 {
			day = "Today"
		}
		row(day, fmt.Sprint(n))
	}
	return b.String(), nil
}

// recentSessionRows keeps the last n completed sessions from events ordered
// most recent first.
func recentSessionRows(events []store.SessionEvent, n int) []store.SessionEvent {
	var out []store.SessionEvent
	for _, e := range events {
		if len(out) == n {
			break
		}
		if e.Action == "end" {
			out = append(out, e)
		}
	}
	return out
}

// weakestChars lists the n practiced characters with the lowest expected
// recall, alongside their graded history from the event log.
func weakestChars(ctx context.Context, t *mastery.Tracker, events store.EventRepo, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	var seen []*mastery.Record
	for _, r := range t.Records() {
		if r.Seen() {
			seen = append(seen, r)
		}
	}
	slices.SortStableFunc(seen, func(a, b *mastery.Record) int {
		switch {
		case a.ExpectedValue() < b.ExpectedValue():
			return -1
		case a.ExpectedValue() > b.ExpectedValue():
			return 1
		}
		return 0
	})
	parts := make([]string, 0, n)
	for _, r := range seen[:min(n, len(seen))] {
		acc, graded, err := events.CharAccuracy(ctx, string(r.Char))
		if err != nil {
			return "", err
		}
		part := fmt.Sprintf("%s %.0f%%", r.Char, r.ExpectedValue()*100)
		if graded > 0 {
			part += fmt.Sprintf(" (%.0f%% of %d)", acc*100, graded)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "  "), nil
}

func init() {
	statsCmd.Flags().Int("weakest", 5, "number of weakest characters to list")
}
