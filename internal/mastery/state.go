package mastery

import (
	"time"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// Band buckets a character by its expected recall probability.
type Band string

const (
	BandWeak   Band = "weak"
	BandMedium Band = "medium"
	BandStrong Band = "strong"
)

// Band thresholds on the expected value.
const (
	WeakThreshold   = 0.33
	StrongThreshold = 0.66
)

// Record is the Beta(alpha, beta) posterior over one character's recall
// probability. Alpha counts successes plus one, Beta failures plus one.
type Record struct {
	Char          hanzi.Char
	Alpha         float64
	Beta          float64
	LastSeen      *time.Time
	LastSessionID int
}

func newRecord(c hanzi.Char) *Record {
	return &Record{Char: c, Alpha: 1, Beta: 1}
}

// ExpectedValue is the posterior mean alpha/(alpha+beta).
func (r *Record) ExpectedValue() float64 {
	return r.Alpha / (r.Alpha + r.Beta)
}

// Variance is the posterior variance.
func (r *Record) Variance() float64 {
	n := r.Alpha + r.Beta
	return r.Alpha * r.Beta / (n * n * (n + 1))
}

// Seen reports whether the character has ever been practiced.
func (r *Record) Seen() bool {
	return r.LastSeen != nil
}

// Attempts is the number of recorded outcomes.
func (r *Record) Attempts() int {
	return int(r.Alpha + r.Beta - 2)
}

// Band classifies the record by expected value.
func (r *Record) Band() Band {
	ev := r.ExpectedValue()
	switch {
	case ev < WeakThreshold:
		return BandWeak
	case ev < StrongThreshold:
		return BandMedium
	}
	return BandStrong
}
