// Package deck holds the deck collection: the aggregate root for cards and
// their scheduling state.
package deck

import (
	"encoding/json"
	"time"

	"github.com/abhisek/hanzi/internal/spacedrep"
)

// Default daily limits for a new deck.
const (
	DefaultNewPerDay     = 20
	DefaultReviewsPerDay = 200
)

// Deck is an ordered list of cards with its own daily limits.
type Deck struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Cards         []*Card `json:"cards"`
	NewPerDay     int     `json:"new_per_day"`
	ReviewsPerDay int     `json:"reviews_per_day"`
	Active        bool    `json:"active"`
}

// Card returns the card with the given id, or nil.
func (d *Deck) Card(id string) *Card {
	for _, c := range d.Cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (d *Deck) cardIndex(id string) int {
	for i, c := range d.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// StudyQueue returns due cards then new cards, within the deck's limits.
func (d *Deck) StudyQueue(now time.Time) []*Card {
	return spacedrep.StudyQueue(d.Cards, d.NewPerDay, d.ReviewsPerDay, now)
}

// Counts tallies the deck's cards by review status.
func (d *Deck) Counts(now time.Time) map[spacedrep.ReviewStatus]int {
	return spacedrep.Counts(d.Cards, now)
}

// UnmarshalJSON fills in default limits for documents that omit them.
func (d *Deck) UnmarshalJSON(b []byte) error {
	type plain Deck
	p := plain{NewPerDay: DefaultNewPerDay, ReviewsPerDay: DefaultReviewsPerDay}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = Deck(p)
	return nil
}
