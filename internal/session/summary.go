package session

import (
	"time"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// CharResult is one character's outcome within a session.
type CharResult struct {
	Char      hanzi.Char
	Attempted int
	Correct   int
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64
	Streak         int
	StreakDays     int
	CharResults    []CharResult
}

// BuildSummary creates a Summary for the session that just finished. stats
// is the finished tally; results are per-character outcomes in first-seen
// order.
func BuildSummary(stats Stats, results []CharResult, agg *Aggregator, now time.Time) *Summary {
	elapsed := stats.Elapsed
	if elapsed == 0 && !stats.Date.IsZero() {
		elapsed = now.Sub(stats.Date)
	}
	return &Summary{
		Duration:       elapsed,
		TotalQuestions: stats.CardsStudied,
		TotalCorrect:   stats.Correct,
		Accuracy:       stats.Accuracy(),
		Streak:         agg.Streak(),
		StreakDays:     agg.StreakDays(now),
		CharResults:    results,
	}
}

// Tally accumulates per-character results in first-seen order.
type Tally struct {
	order   []hanzi.Char
	results map[hanzi.Char]*CharResult
}

// Record counts one attempt at c.
func (t *Tally) Record(c hanzi.Char, correct bool) {
	if t.results == nil {
		t.results = make(map[hanzi.Char]*CharResult)
	}
	r, ok := t.results[c]
	if !ok {
		r = &CharResult{Char: c}
		t.results[c] = r
		t.order = append(t.order, c)
	}
	r.Attempted++
	if correct {
		r.Correct++
	}
}

// Results returns the per-character results.
func (t *Tally) Results() []CharResult {
	out := make([]CharResult, 0, len(t.order))
	for _, c := range t.order {
		out = append(out, *t.results[c])
	}
	return out
}
