package session

import (
	"math/rand/v2"
	"time"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/mastery"
)

// Mode selects where a session's prompts come from.
type Mode string

const (
	// ModeDeck studies one deck on its SM-2 schedule.
	ModeDeck Mode = "deck"
	// ModeActive practices the active character pool by mastery urgency.
	ModeActive Mode = "active"
)

// ParseMode returns the mode named s, defaulting to ModeDeck.
func ParseMode(s string) Mode {
	if Mode(s) == ModeActive {
		return ModeActive
	}
	return ModeDeck
}

// Builder assembles study queues for either mode.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a builder. A nil rng uses a randomly seeded source.
func NewBuilder(rng *rand.Rand) *Builder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{rng: rng}
}

// DeckQueue returns the deck's due-then-new queue. A nil deck yields nothing.
func (b *Builder) DeckQueue(d *deck.Deck, now time.Time) []*deck.Card {
	if d == nil {
		return nil
	}
	return d.StudyQueue(now)
}

// ActivePool returns the cards in play for active practice: every active
// deck plus the selected deck. With no active deck, the selected deck alone.
// Cards appear once even if reachable through several decks.
func (b *Builder) ActivePool(c *deck.Collection, selectedDeckID string) []*deck.Card {
	selected := c.Deck(selectedDeckID)
	active := c.ActiveDecks()
	if len(active) == 0 {
		if selected == nil {
			return nil
		}
		return append([]*deck.Card(nil), selected.Cards...)
	}

	decks := active
	if selected != nil && !selected.Active {
		decks = append([]*deck.Deck{selected}, active...)
	}

	seen := make(map[string]bool)
	var pool []*deck.Card
	for _, d := range decks {
		for _, card := range d.Cards {
			if seen[card.ID] {
				continue
			}
			seen[card.ID] = true
			pool = append(pool, card)
		}
	}
	return pool
}

// ActiveQueue returns the active pool in random order.
func (b *Builder) ActiveQueue(c *deck.Collection, selectedDeckID string) []*deck.Card {
	pool := b.ActivePool(c, selectedDeckID)
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}

// ActiveChars flattens card terms and standalone characters into the
// distinct set of characters to practice.
func ActiveChars(pool []*deck.Card, singles []hanzi.Char) []hanzi.Char {
	var chars []hanzi.Char
	for _, card := range pool {
		for _, c := range hanzi.Split(card.Term) {
			if !hanzi.IsPunct(c) {
				chars = append(chars, c)
			}
		}
	}
	chars = append(chars, singles...)
	return hanzi.Distinct(chars)
}

// CharacterQueue builds the urgency-ranked character queue for active mode.
func (b *Builder) CharacterQueue(t *mastery.Tracker, chars []hanzi.Char, count int) []hanzi.Char {
	return t.StudyQueue(hanzi.Distinct(chars), count)
}
