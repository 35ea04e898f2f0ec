package spacedrep

import (
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	s := NewState(epoch)
	if s.EaseFactor != DefaultEaseFactor {
		t.Errorf("EaseFactor = %f, want %f", s.EaseFactor, DefaultEaseFactor)
	}
	if s.Interval != 0 || s.Repetitions != 0 {
		t.Errorf("Interval, Repetitions = %d, %d, want 0, 0", s.Interval, s.Repetitions)
	}
	if !s.IsNew() {
		t.Error("expected fresh state to be new")
	}
	if s.IsDue(epoch.Add(48 * time.Hour)) {
		t.Error("expected new card never to be due")
	}
}

func TestReview_GoodGoodEasyLadder(t *testing.T) {
	s := NewState(epoch)

	s = Review(s, QualityGood, epoch)
	if s.Interval != 1 || s.Repetitions != 1 {
		t.Fatalf("after 1st good: interval=%d reps=%d, want 1, 1", s.Interval, s.Repetitions)
	}
	if math.Abs(s.EaseFactor-2.5) > 1e-9 {
		t.Errorf("EaseFactor = %f, want 2.5 (q=4 leaves it unchanged)", s.EaseFactor)
	}

	second := epoch.AddDate(0, 0, 1)
	s = Review(s, QualityGood, second)
	if s.Interval != 6 || s.Repetitions != 2 {
		t.Fatalf("after 2nd good: interval=%d reps=%d, want 6, 2", s.Interval, s.Repetitions)
	}

	third := second.AddDate(0, 0, 6)
	prevEF := s.EaseFactor
	s = Review(s, QualityEasy, third)
	if want := int(math.Round(6 * prevEF)); s.Interval != want {
		t.Errorf("after easy: interval=%d, want %d", s.Interval, want)
	}
	if s.EaseFactor <= 2.5 {
		t.Errorf("EaseFactor = %f, want > 2.5 after easy", s.EaseFactor)
	}
	if s.Repetitions != 3 {
		t.Errorf("Repetitions = %d, want 3", s.Repetitions)
	}
	if s.TotalReviews != 3 || s.CorrectReviews != 3 {
		t.Errorf("Total/Correct = %d/%d, want 3/3", s.TotalReviews, s.CorrectReviews)
	}
	if !s.NextReviewDate.Equal(third.AddDate(0, 0, s.Interval)) {
		t.Errorf("NextReviewDate = %v, want %v", s.NextReviewDate, third.AddDate(0, 0, s.Interval))
	}
}

func TestReview_FailureResets(t *testing.T) {
	s := NewState(epoch)
	s = Review(s, QualityGood, epoch)
	s = Review(s, QualityGood, epoch)
	ef := s.EaseFactor

	s = Review(s, QualityIncorrectEasy, epoch)
	if s.Repetitions != 0 {
		t.Errorf("Repetitions = %d, want 0", s.Repetitions)
	}
	if s.Interval != 1 {
		t.Errorf("Interval = %d, want 1", s.Interval)
	}
	if s.EaseFactor != ef {
		t.Errorf("EaseFactor = %f, want unchanged %f", s.EaseFactor, ef)
	}
	if s.TotalReviews != 3 || s.CorrectReviews != 2 {
		t.Errorf("Total/Correct = %d/%d, want 3/2", s.TotalReviews, s.CorrectReviews)
	}
	if s.LastReviewDate == nil || !s.LastReviewDate.Equal(epoch) {
		t.Errorf("LastReviewDate = %v, want %v", s.LastReviewDate, epoch)
	}
}

func TestReview_EaseFactorFloor(t *testing.T) {
	s := NewState(epoch)
	for i := 0; i < 20; i++ {
		s = Review(s, QualityHard, epoch)
		if s.EaseFactor < MinEaseFactor {
			t.Fatalf("review %d: EaseFactor = %f, below floor %f", i, s.EaseFactor, MinEaseFactor)
		}
	}
	if s.EaseFactor != MinEaseFactor {
		t.Errorf("EaseFactor = %f, want floor %f after repeated hard reviews", s.EaseFactor, MinEaseFactor)
	}
}

func TestReview_ClampsQuality(t *testing.T) {
	a := Review(NewState(epoch), Quality(9), epoch)
	b := Review(NewState(epoch), QualityEasy, epoch)
	if a.EaseFactor != b.EaseFactor || a.Interval != b.Interval {
		t.Errorf("quality 9 = %+v, want same as quality 5 %+v", a, b)
	}

	c := Review(NewState(epoch), Quality(-3), epoch)
	if c.CorrectReviews != 0 || c.Interval != 1 {
		t.Errorf("quality -3 should behave as blackout, got %+v", c)
	}
}

func TestIsDue(t *testing.T) {
	s := Review(NewState(epoch), QualityGood, epoch)
	if s.IsDue(epoch) {
		t.Error("expected not due before review date")
	}
	if !s.IsDue(epoch.AddDate(0, 0, 1)) {
		t.Error("expected due on review date")
	}
	if !s.IsDue(epoch.AddDate(0, 0, 3)) {
		t.Error("expected due after review date")
	}
}

func TestOverdueDays(t *testing.T) {
	s := State{TotalReviews: 1, NextReviewDate: epoch}
	if got := s.OverdueDays(epoch.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays() = %f, want 0", got)
	}
	got := s.OverdueDays(epoch.Add(3 * 24 * time.Hour))
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  ReviewStatus
	}{
		{"new", NewState(epoch), ReviewNew},
		{"due", State{TotalReviews: 1, Interval: 1, NextReviewDate: epoch}, ReviewDue},
		{"learning", State{TotalReviews: 2, Interval: 6, NextReviewDate: epoch.AddDate(0, 0, 6)}, ReviewLearning},
		{"mature", State{TotalReviews: 5, Interval: 40, NextReviewDate: epoch.AddDate(0, 0, 40)}, ReviewMature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Status(epoch); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysUntilReview(t *testing.T) {
	s := State{TotalReviews: 1, NextReviewDate: epoch.AddDate(0, 0, 6)}
	if got := s.DaysUntilReview(epoch); got != 6 {
		t.Errorf("DaysUntilReview() = %d, want 6", got)
	}
	if got := s.DaysUntilReview(epoch.AddDate(0, 0, 7)); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}

func TestAccuracy(t *testing.T) {
	if got := NewState(epoch).Accuracy(); got != 0 {
		t.Errorf("Accuracy() = %f, want 0", got)
	}
	s := State{TotalReviews: 4, CorrectReviews: 3}
	if got := s.Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %f, want 0.75", got)
	}
}
