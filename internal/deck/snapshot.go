package deck

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/hanzi/internal/spacedrep"
)

// SnapshotVersion is the current persisted format of the deck blob.
const SnapshotVersion = 1

// SnapshotData is the persisted form of a Collection.
type SnapshotData struct {
	Version int     `json:"version"`
	Decks   []*Deck `json:"decks"`
}

// SnapshotData exports the collection for persistence.
func (c *Collection) SnapshotData() *SnapshotData {
	return &SnapshotData{Version: SnapshotVersion, Decks: c.decks}
}

// FromSnapshot rebuilds a collection, repairing anything that would break
// scheduling: missing or duplicate card ids, ease factors under the floor,
// missing limits on legacy data. An empty snapshot yields just the default
// deck.
func FromSnapshot(data *SnapshotData, now time.Time) *Collection {
	c := &Collection{}
	if data != nil {
		seen := make(map[string]bool)
		for _, d := range data.Decks {
			if d == nil {
				continue
			}
			normalizeDeck(d, now)
			for _, card := range d.Cards {
				if seen[card.ID] {
					card.ID = uuid.NewString()
				}
				seen[card.ID] = true
			}
			c.decks = append(c.decks, d)
		}
	}
	c.ensureDefault()
	return c
}

func normalizeDeck(d *Deck, now time.Time) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.NewPerDay < 0 {
		d.NewPerDay = 0
	}
	if d.ReviewsPerDay < 0 {
		d.ReviewsPerDay = 0
	}
	cards := d.Cards[:0]
	for _, card := range d.Cards {
		if card == nil {
			continue
		}
		normalizeCard(card, now)
		cards = append(cards, card)
	}
	d.Cards = cards
}

func normalizeCard(card *Card, now time.Time) {
	if card.ID == "" {
		card.ID = uuid.NewString()
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	if card.SRS.EaseFactor == 0 {
		card.SRS.EaseFactor = spacedrep.DefaultEaseFactor
	}
	if card.SRS.EaseFactor < spacedrep.MinEaseFactor {
		card.SRS.EaseFactor = spacedrep.MinEaseFactor
	}
	if card.SRS.Interval < 0 {
		card.SRS.Interval = 0
	}
	if card.SRS.NextReviewDate.IsZero() {
		card.SRS.NextReviewDate = now
	}
}
