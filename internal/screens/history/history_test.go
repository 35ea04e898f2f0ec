package history

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzi/internal/mastery"
	"github.com/abhisek/hanzi/internal/router"
	"github.com/abhisek/hanzi/internal/session"
)

type fakeSource struct {
	agg     *session.Aggregator
	tracker *mastery.Tracker
	now     time.Time
}

func (f fakeSource) Aggregator() *session.Aggregator { return f.agg }
func (f fakeSource) Tracker() *mastery.Tracker       { return f.tracker }
func (f fakeSource) Now() time.Time                  { return f.now }

func newSource() fakeSource {
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	agg := session.NewAggregator(start)
	agg.RecordAnswer(true, true)
	agg.RecordAnswer(false, true)
	agg.EndSession(start.Add(10 * time.Minute))

	next := start.AddDate(0, 0, 1)
	agg.StartNewSession(next)
	agg.RecordAnswer(true, false)
	agg.EndSession(next.Add(5 * time.Minute))

	tracker := mastery.NewTracker(nil)
	tracker.RecordSuccess("水")
	return fakeSource{agg: agg, tracker: tracker, now: next.Add(time.Hour)}
}

func TestHistoryScreen_NewestFirst(t *testing.T) {
	s := New(newSource())
	if len(s.sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(s.sessions))
	}
	if !s.sessions[0].Date.After(s.sessions[1].Date) {
		t.Error("expected newest session first")
	}
	if s.streakDays != 2 {
		t.Errorf("streakDays = %d, want 2", s.streakDays)
	}
}

func TestHistoryScreen_View(t *testing.T) {
	view := New(newSource()).View(100, 30)
	for _, want := range []string{"2 sessions", "May 02, 2025", "strong 1", "2 days"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	src := fakeSource{
		agg:     session.NewAggregator(time.Now()),
		tracker: mastery.NewTracker(nil),
		now:     time.Now(),
	}
	view := New(src).View(100, 30)
	if !strings.Contains(view, "No sessions yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(newSource())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1 at bottom", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Error("expected session 1 expanded")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
