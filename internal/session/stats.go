package session

import "time"

// Stats is the tally for one practice session.
type Stats struct {
	Date            time.Time     `json:"date"`
	CardsStudied    int           `json:"cards_studied"`
	NewCardsStudied int           `json:"new_cards_studied"`
	Correct         int           `json:"correct"`
	Incorrect       int           `json:"incorrect"`
	Elapsed         time.Duration `json:"elapsed"`
}

// Accuracy returns Correct / CardsStudied, or 0 for an empty session.
func (s Stats) Accuracy() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.CardsStudied)
}

// Empty reports whether nothing was studied.
func (s Stats) Empty() bool {
	return s.CardsStudied == 0
}

// DaySummary totals every session on one calendar day.
type DaySummary struct {
	Day          time.Time
	Sessions     int
	CardsStudied int
	Correct      int
	Elapsed      time.Duration
}

// Accuracy returns the day's accuracy, or 0 when nothing was studied.
func (d DaySummary) Accuracy() float64 {
	if d.CardsStudied == 0 {
		return 0
	}
	return float64(d.Correct) / float64(d.CardsStudied)
}

// Totals are lifetime figures across every archived session.
type Totals struct {
	Sessions     int
	CardsStudied int
	NewCards     int
	Correct      int
	Elapsed      time.Duration
}

// Accuracy returns lifetime accuracy.
func (t Totals) Accuracy() float64 {
	if t.CardsStudied == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.CardsStudied)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
