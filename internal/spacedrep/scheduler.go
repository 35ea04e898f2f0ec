package spacedrep

import (
	"math"
	"sort"
	"time"
)

// Scheduled is anything carrying an SM-2 state, typically a card.
type Scheduled interface {
	ReviewState() State
}

// StudyQueue returns the items to study at now: due items sorted by review
// date (earliest first) capped at reviewLimit, followed by never-reviewed
// items in their original order capped at newLimit. The two caps are
// independent.
func StudyQueue[T Scheduled](items []T, newLimit, reviewLimit int, now time.Time) []T {
	newLimit = max(newLimit, 0)
	reviewLimit = max(reviewLimit, 0)

	var due, fresh []T
	for _, it := range items {
		st := it.ReviewState()
		switch {
		case st.IsNew():
			fresh = append(fresh, it)
		case st.IsDue(now):
			due = append(due, it)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ReviewState().NextReviewDate.Before(due[j].ReviewState().NextReviewDate)
	})

	if len(due) > reviewLimit {
		due = due[:reviewLimit]
	}
	if len(fresh) > newLimit {
		fresh = fresh[:newLimit]
	}

	queue := make([]T, 0, len(due)+len(fresh))
	queue = append(queue, due...)
	return append(queue, fresh...)
}

// Counts tallies items by review status.
func Counts[T Scheduled](items []T, now time.Time) map[ReviewStatus]int {
	counts := make(map[ReviewStatus]int)
	for _, it := range items {
		counts[it.ReviewState().Status(now)]++
	}
	return counts
}

// Forecast returns, for each of the next days calendar days starting today,
// how many reviewed items fall due on that day. Items already overdue are
// counted on day 0.
func Forecast[T Scheduled](items []T, days int, now time.Time) []int {
	if days <= 0 {
		return nil
	}
	out := make([]int, days)
	today := truncateDay(now)
	for _, it := range items {
		st := it.ReviewState()
		if st.IsNew() {
			continue
		}
		d := int(math.Round(truncateDay(st.NextReviewDate).Sub(today).Hours() / 24))
		if d < 0 {
			d = 0
		}
		if d < days {
			out[d]++
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
