package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestAggregator_EmptySessionNotArchived(t *testing.T) {
	a := NewAggregator(t0)
	a.StartNewSession(t0.Add(time.Minute))
	a.EndSession(t0.Add(2 * time.Minute))
	assert.Empty(t, a.History())
}

func TestAggregator_ArchivesNonEmptySession(t *testing.T) {
	a := NewAggregator(t0)
	a.RecordAnswer(true, true)
	a.RecordAnswer(false, false)
	a.EndSession(t0.Add(10 * time.Minute))

	h := a.History()
	require.Len(t, h, 1)
	assert.Equal(t, 2, h[0].CardsStudied)
	assert.Equal(t, 1, h[0].NewCardsStudied)
	assert.Equal(t, 1, h[0].Correct)
	assert.Equal(t, 1, h[0].Incorrect)
	assert.Equal(t, 10*time.Minute, h[0].Elapsed)
	assert.Equal(t, 0.5, h[0].Accuracy())
	assert.True(t, a.Current().Empty())

	// StartNewSession behaves the same way.
	a.RecordAnswer(true, false)
	a.StartNewSession(t0.Add(20 * time.Minute))
	assert.Len(t, a.History(), 2)
}

func TestAggregator_Streak(t *testing.T) {
	a := NewAggregator(t0)
	for i := 0; i < 4; i++ {
		a.RecordAnswer(true, false)
	}
	assert.Equal(t, 4, a.Streak())

	a.RecordAnswer(false, false)
	assert.Equal(t, 0, a.Streak())
	assert.Equal(t, 4, a.BestStreak())
	assert.Equal(t, 5, a.QuestionsAnswered())
	assert.Equal(t, 4, a.CorrectAnswers())
}

func TestAggregator_OverrideOnlyMovesStreak(t *testing.T) {
	a := NewAggregator(t0)
	a.RecordAnswer(true, false)
	a.RecordAnswer(false, false)
	before := a.Current()

	a.OverrideCorrect()
	assert.Equal(t, 1, a.Streak())
	assert.Equal(t, before, a.Current())
	assert.Equal(t, 2, a.QuestionsAnswered())
	assert.Equal(t, 1, a.CorrectAnswers())
}

func TestStreakDays(t *testing.T) {
	session := func(daysAgo int, hour int) Stats {
		d := time.Date(2025, 3, 10-daysAgo, hour, 0, 0, 0, time.UTC)
		return Stats{Date: d, CardsStudied: 1, Correct: 1}
	}

	tests := []struct {
		name    string
		history []Stats
		want    int
	}{
		{"no history", nil, 0},
		{"today only", []Stats{session(0, 9)}, 1},
		{"three days running", []Stats{session(2, 9), session(1, 9), session(0, 9)}, 3},
		{"two sessions today", []Stats{session(0, 8), session(0, 9), session(1, 9)}, 2},
		{"gap stops count", []Stats{session(3, 9), session(1, 9), session(0, 9)}, 2},
		{"nothing today", []Stats{session(1, 9), session(2, 9)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAggregator(t0)
			a.Restore(&HistoryData{Sessions: tt.history}, nil)
			if got := a.StreakDays(t0); got != tt.want {
				t.Errorf("StreakDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekly(t *testing.T) {
	a := NewAggregator(t0)
	a.Restore(&HistoryData{Sessions: []Stats{
		{Date: t0.AddDate(0, 0, -1), CardsStudied: 4, Correct: 3, Elapsed: time.Minute},
		{Date: t0.AddDate(0, 0, -1).Add(time.Hour), CardsStudied: 6, Correct: 6, Elapsed: time.Minute},
		{Date: t0.AddDate(0, 0, -30), CardsStudied: 9, Correct: 9},
	}}, nil)
	a.StartNewSession(t0)
	a.RecordAnswer(true, false)

	week := a.Weekly(t0.Add(5 * time.Minute))
	require.Len(t, week, 7)
	assert.Equal(t, startOfDay(t0), week[6].Day)
	assert.Equal(t, 1, week[6].CardsStudied)
	assert.Equal(t, 2, week[5].Sessions)
	assert.Equal(t, 10, week[5].CardsStudied)
	assert.Equal(t, 0.9, week[5].Accuracy())
	assert.Equal(t, 0, week[0].CardsStudied)

	totals := a.Totals()
	assert.Equal(t, 3, totals.Sessions)
	assert.Equal(t, 19, totals.CardsStudied)
}

func TestRestore(t *testing.T) {
	a := NewAggregator(t0)
	a.RecordAnswer(true, true)
	a.RecordAnswer(true, false)
	a.EndSession(t0.Add(time.Minute))
	a.RecordAnswer(true, false)

	b := NewAggregator(t0)
	b.Restore(a.HistoryData(), a.ProgressData())
	assert.Equal(t, a.History(), b.History())
	assert.Equal(t, a.Streak(), b.Streak())
	assert.Equal(t, a.QuestionsAnswered(), b.QuestionsAnswered())
	assert.Equal(t, a.Current(), b.Current())

	c := NewAggregator(t0)
	c.Restore(nil, &ProgressData{Streak: -4, QuestionsAnswered: 2, CorrectAnswers: 9})
	assert.Equal(t, 0, c.Streak())
	assert.Equal(t, 2, c.CorrectAnswers())
}
