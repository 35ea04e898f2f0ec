package spacedrep

import (
	"math"
	"time"
)

// State holds the SM-2 scheduling state of one card.
type State struct {
	EaseFactor     float64    `json:"ease_factor"`
	Interval       int        `json:"interval"`
	Repetitions    int        `json:"repetitions"`
	NextReviewDate time.Time  `json:"next_review_date"`
	LastReviewDate *time.Time `json:"last_review_date,omitempty"`
	TotalReviews   int        `json:"total_reviews"`
	CorrectReviews int        `json:"correct_reviews"`
}

// NewState returns the state of a card created at now.
func NewState(now time.Time) State {
	return State{
		EaseFactor:     DefaultEaseFactor,
		NextReviewDate: now,
	}
}

// Review applies one graded review at now and returns the new state.
// Qualities outside 0-5 are clamped.
func Review(s State, q Quality, now time.Time) State {
	q = q.clamp()
	if s.EaseFactor < MinEaseFactor {
		s.EaseFactor = MinEaseFactor
	}

	s.TotalReviews++
	reviewed := now
	s.LastReviewDate = &reviewed

	if q.Correct() {
		s.CorrectReviews++
		switch s.Repetitions {
		case 0:
			s.Interval = firstInterval
		case 1:
			s.Interval = secondInterval
		default:
			s.Interval = int(math.Round(float64(s.Interval) * s.EaseFactor))
		}
		s.Repetitions++

		d := float64(QualityEasy - q)
		s.EaseFactor = math.Max(MinEaseFactor, s.EaseFactor+(0.1-d*(0.08+d*0.02)))
	} else {
		s.Repetitions = 0
		s.Interval = firstInterval
	}

	s.NextReviewDate = now.AddDate(0, 0, s.Interval)
	return s
}

// IsNew reports whether the card has never been reviewed.
func (s State) IsNew() bool {
	return s.TotalReviews == 0
}

// IsDue returns true if the card has been reviewed before and is at or past
// its review date. New cards are never due.
func (s State) IsDue(now time.Time) bool {
	return !s.IsNew() && !now.Before(s.NextReviewDate)
}

// OverdueDays returns how many days past due the card is. Returns 0 if not yet due.
func (s State) OverdueDays(now time.Time) float64 {
	if now.Before(s.NextReviewDate) {
		return 0
	}
	return now.Sub(s.NextReviewDate).Hours() / 24.0
}

// Accuracy returns the fraction of reviews graded correct, or 0 if unreviewed.
func (s State) Accuracy() float64 {
	if s.TotalReviews == 0 {
		return 0
	}
	return float64(s.CorrectReviews) / float64(s.TotalReviews)
}

// ReviewStatus describes a card's review status for display.
type ReviewStatus string

const (
	ReviewNew      ReviewStatus = "new"
	ReviewLearning ReviewStatus = "learning"
	ReviewDue      ReviewStatus = "due"
	ReviewMature   ReviewStatus = "review"
)

// matureInterval is the interval, in days, from which a card counts as learned.
const matureInterval = 21

// Status returns the review status for UI display.
func (s State) Status(now time.Time) ReviewStatus {
	switch {
	case s.IsNew():
		return ReviewNew
	case s.IsDue(now):
		return ReviewDue
	case s.Interval < matureInterval:
		return ReviewLearning
	}
	return ReviewMature
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (s State) DaysUntilReview(now time.Time) int {
	if !now.Before(s.NextReviewDate) {
		return 0
	}
	return int(s.NextReviewDate.Sub(now).Hours()/24.0) + 1
}
