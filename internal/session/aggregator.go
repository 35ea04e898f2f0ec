// Package session tracks practice sessions: running tallies, streaks and
// history, and builds the queue of prompts for a session.
package session

import (
	"sort"
	"time"
)

// Aggregator accumulates the in-progress session and the archive of past
// sessions. Mutations are expected from a single goroutine.
type Aggregator struct {
	current           Stats
	history           []Stats
	streak            int
	bestStreak        int
	questionsAnswered int
	correctAnswers    int
}

// NewAggregator creates an empty aggregator whose first session starts at now.
func NewAggregator(now time.Time) *Aggregator {
	return &Aggregator{current: Stats{Date: now}}
}

// StartNewSession archives the in-progress session if anything was studied,
// then begins a fresh one.
func (a *Aggregator) StartNewSession(now time.Time) {
	a.archive(now)
}

// EndSession has the same effect as StartNewSession. It marks natural
// completion of a session.
func (a *Aggregator) EndSession(now time.Time) {
	a.archive(now)
}

func (a *Aggregator) archive(now time.Time) {
	if !a.current.Empty() {
		done := a.current
		done.Elapsed = now.Sub(done.Date)
		if done.Elapsed < 0 {
			done.Elapsed = 0
		}
		a.history = append(a.history, done)
	}
	a.current = Stats{Date: now}
}

// RecordAnswer tallies one graded answer. isNew marks the first-ever review
// of a card.
func (a *Aggregator) RecordAnswer(correct, isNew bool) {
	a.current.CardsStudied++
	if isNew {
		a.current.NewCardsStudied++
	}
	a.questionsAnswered++
	if correct {
		a.current.Correct++
		a.correctAnswers++
		a.bumpStreak()
		return
	}
	a.current.Incorrect++
	a.streak = 0
}

// OverrideCorrect credits the learner's own claim that a graded-wrong answer
// was right. Only the running streak moves. Tallies and history are left
// alone, and callers must not replay the answer into mastery or scheduling.
func (a *Aggregator) OverrideCorrect() {
	a.bumpStreak()
}

func (a *Aggregator) bumpStreak() {
	a.streak++
	if a.streak > a.bestStreak {
		a.bestStreak = a.streak
	}
}

// Current returns the in-progress session tally.
func (a *Aggregator) Current() Stats { return a.current }

// Streak returns the running streak of correct answers.
func (a *Aggregator) Streak() int { return a.streak }

// BestStreak returns the longest streak ever reached.
func (a *Aggregator) BestStreak() int { return a.bestStreak }

// QuestionsAnswered returns the lifetime number of graded answers.
func (a *Aggregator) QuestionsAnswered() int { return a.questionsAnswered }

// CorrectAnswers returns the lifetime number of correct answers.
func (a *Aggregator) CorrectAnswers() int { return a.correctAnswers }

// History returns archived sessions, oldest first.
func (a *Aggregator) History() []Stats {
	out := make([]Stats, len(a.history))
	copy(out, a.history)
	return out
}

// Accuracy returns lifetime answer accuracy.
func (a *Aggregator) Accuracy() float64 {
	if a.questionsAnswered == 0 {
		return 0
	}
	return float64(a.correctAnswers) / float64(a.questionsAnswered)
}

// StreakDays counts consecutive calendar days with an archived session,
// walking back from today and stopping at the first day without one.
func (a *Aggregator) StreakDays(now time.Time) int {
	if len(a.history) == 0 {
		return 0
	}
	sorted := a.History()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	day := startOfDay(now)
	streak := 0
	for _, s := range sorted {
		d := startOfDay(s.Date.In(now.Location()))
		switch {
		case d.Equal(day):
			streak++
			day = day.AddDate(0, 0, -1)
		case d.After(day):
			// Another session on a day already counted, or a future date.
			continue
		default:
			return streak
		}
	}
	return streak
}

// Weekly returns the last seven calendar days ending today, oldest first.
// The in-progress session counts toward today.
func (a *Aggregator) Weekly(now time.Time) []DaySummary {
	today := startOfDay(now)
	days := make([]DaySummary, 7)
	for i := range days {
		days[i].Day = today.AddDate(0, 0, i-6)
	}

	add := func(s Stats) {
		d := startOfDay(s.Date.In(now.Location()))
		for i := range days {
			if days[i].Day.Equal(d) {
				days[i].Sessions++
				days[i].CardsStudied += s.CardsStudied
				days[i].Correct += s.Correct
				days[i].Elapsed += s.Elapsed
				return
			}
		}
	}
	for _, s := range a.history {
		add(s)
	}
	if !a.current.Empty() {
		cur := a.current
		cur.Elapsed = now.Sub(cur.Date)
		add(cur)
	}
	return days
}

// Totals sums every archived session.
func (a *Aggregator) Totals() Totals {
	var t Totals
	for _, s := range a.history {
		t.Sessions++
		t.CardsStudied += s.CardsStudied
		t.NewCards += s.NewCardsStudied
		t.Correct += s.Correct
		t.Elapsed += s.Elapsed
	}
	return t
}
