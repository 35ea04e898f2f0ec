package spacedrep

import (
	"testing"
	"time"
)

type item struct {
	id    string
	state State
}

func (i item) ReviewState() State { return i.state }

func dueItem(id string, next time.Time) item {
	return item{id: id, state: State{TotalReviews: 1, Interval: 1, NextReviewDate: next}}
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStudyQueue_DueBeforeNew(t *testing.T) {
	now := epoch
	items := []item{
		{id: "n1", state: NewState(now)},
		dueItem("d-late", now.Add(-time.Hour)),
		{id: "n2", state: NewState(now)},
		dueItem("d-early", now.Add(-48*time.Hour)),
		dueItem("future", now.Add(24*time.Hour)),
	}

	got := ids(StudyQueue(items, 10, 10, now))
	want := []string{"d-early", "d-late", "n1", "n2"}
	if !equalIDs(got, want) {
		t.Errorf("StudyQueue() = %v, want %v", got, want)
	}
}

func TestStudyQueue_IndependentLimits(t *testing.T) {
	now := epoch
	items := []item{
		{id: "n1", state: NewState(now)},
		{id: "n2", state: NewState(now)},
		{id: "n3", state: NewState(now)},
		dueItem("d1", now.Add(-3*time.Hour)),
		dueItem("d2", now.Add(-2*time.Hour)),
		dueItem("d3", now.Add(-1*time.Hour)),
	}

	tests := []struct {
		name     string
		newLimit int
		revLim   int
		want     []string
	}{
		{"both capped", 1, 2, []string{"d1", "d2", "n1"}},
		{"no reviews", 2, 0, []string{"n1", "n2"}},
		{"no new", 0, 5, []string{"d1", "d2", "d3"}},
		{"negative limits", -1, -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := StudyQueue(items, tt.newLimit, tt.revLim, now)
			if len(q) > max(tt.newLimit, 0)+max(tt.revLim, 0) {
				t.Errorf("len = %d exceeds limits", len(q))
			}
			if got := ids(q); !equalIDs(got, tt.want) {
				t.Errorf("StudyQueue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCounts(t *testing.T) {
	items := []item{
		{id: "n", state: NewState(epoch)},
		dueItem("d", epoch.Add(-time.Hour)),
		dueItem("f", epoch.Add(time.Hour)),
	}
	c := Counts(items, epoch)
	if c[ReviewNew] != 1 || c[ReviewDue] != 1 || c[ReviewLearning] != 1 {
		t.Errorf("Counts() = %v", c)
	}
}

func TestForecast(t *testing.T) {
	items := []item{
		{id: "n", state: NewState(epoch)},
		dueItem("overdue", epoch.AddDate(0, 0, -2)),
		dueItem("today", epoch.Add(2*time.Hour)),
		dueItem("tomorrow", epoch.AddDate(0, 0, 1)),
		dueItem("far", epoch.AddDate(0, 0, 30)),
	}
	got := Forecast(items, 3, epoch)
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Forecast()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if Forecast(items, 0, epoch) != nil {
		t.Error("expected nil forecast for zero days")
	}
}
