package deck

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/hanzi/internal/spacedrep"
)

// DefaultDeckName names the deck that always exists.
const DefaultDeckName = "My Characters"

var validate = validator.New(validator.WithRequiredStructEnabled())

// DeckInput is the user-editable part of a deck.
type DeckInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=1000"`
}

// CardInput is the user-editable part of a card.
type CardInput struct {
	Term       string   `validate:"required,max=64"`
	Definition string   `validate:"max=2000"`
	Tags       []string `validate:"dive,required,max=40"`
	Notes      string   `validate:"max=4000"`
}

// Collection owns every deck. The first deck is the default working set and
// is never removed. Operations that name a deck or card id that does not
// exist do nothing.
type Collection struct {
	decks []*Deck
}

// NewCollection returns a collection holding only the default deck.
func NewCollection() *Collection {
	c := &Collection{}
	c.ensureDefault()
	return c
}

func (c *Collection) ensureDefault() {
	if len(c.decks) > 0 {
		return
	}
	c.decks = append(c.decks, &Deck{
		ID:            uuid.NewString(),
		Name:          DefaultDeckName,
		NewPerDay:     DefaultNewPerDay,
		ReviewsPerDay: DefaultReviewsPerDay,
	})
}

// Decks returns the decks in order. The slice must not be modified.
func (c *Collection) Decks() []*Deck {
	return c.decks
}

// Default returns the default deck.
func (c *Collection) Default() *Deck {
	return c.decks[0]
}

// Deck returns the deck with the given id, or nil.
func (c *Collection) Deck(id string) *Deck {
	for _, d := range c.decks {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// DeckByName returns the first deck whose name matches, ignoring case.
func (c *Collection) DeckByName(name string) *Deck {
	for _, d := range c.decks {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// Lookup resolves a deck by id, then by name.
func (c *Collection) Lookup(ref string) *Deck {
	if d := c.Deck(ref); d != nil {
		return d
	}
	return c.DeckByName(ref)
}

// AddDeck creates a deck with default limits.
func (c *Collection) AddDeck(in DeckInput) (*Deck, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}
	d := &Deck{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Description:   in.Description,
		NewPerDay:     DefaultNewPerDay,
		ReviewsPerDay: DefaultReviewsPerDay,
	}
	c.decks = append(c.decks, d)
	return d, nil
}

// UpdateDeck changes a deck's name and description.
func (c *Collection) UpdateDeck(id string, in DeckInput) (bool, error) {
	d := c.Deck(id)
	if d == nil {
		return false, nil
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return false, fmt.Errorf("invalid deck: %w", err)
	}
	d.Name = in.Name
	d.Description = in.Description
	return true, nil
}

// DeleteDeck removes a deck and its cards. The default deck stays.
func (c *Collection) DeleteDeck(id string) bool {
	i := slices.IndexFunc(c.decks, func(d *Deck) bool { return d.ID == id })
	if i <= 0 {
		return false
	}
	c.decks = slices.Delete(c.decks, i, i+1)
	return true
}

// SetActive flags a deck as part of the active practice pool.
func (c *Collection) SetActive(id string, active bool) bool {
	d := c.Deck(id)
	if d == nil {
		return false
	}
	d.Active = active
	return true
}

// SetLimits sets a deck's daily limits. Negative values are stored as zero.
func (c *Collection) SetLimits(id string, newPerDay, reviewsPerDay int) bool {
	d := c.Deck(id)
	if d == nil {
		return false
	}
	d.NewPerDay = max(newPerDay, 0)
	d.ReviewsPerDay = max(reviewsPerDay, 0)
	return true
}

// ActiveDecks returns the decks flagged active, in order.
func (c *Collection) ActiveDecks() []*Deck {
	var out []*Deck
	for _, d := range c.decks {
		if d.Active {
			out = append(out, d)
		}
	}
	return out
}

// AddCard appends a new card to a deck. Returns nil, nil for an unknown deck.
func (c *Collection) AddCard(deckID string, in CardInput, now time.Time) (*Card, error) {
	d := c.Deck(deckID)
	if d == nil {
		return nil, nil
	}
	in.Term = strings.TrimSpace(in.Term)
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid card: %w", err)
	}
	card := &Card{
		ID:         uuid.NewString(),
		Term:       in.Term,
		Definition: in.Definition,
		CreatedAt:  now,
		Tags:       in.Tags,
		Notes:      in.Notes,
		SRS:        spacedrep.NewState(now),
	}
	d.Cards = append(d.Cards, card)
	return card, nil
}

// UpdateCard edits a card's content. Scheduling state is untouched.
func (c *Collection) UpdateCard(cardID string, in CardInput) (bool, error) {
	_, card := c.FindCard(cardID)
	if card == nil {
		return false, nil
	}
	in.Term = strings.TrimSpace(in.Term)
	if err := validate.Struct(in); err != nil {
		return false, fmt.Errorf("invalid card: %w", err)
	}
	card.Term = in.Term
	card.Definition = in.Definition
	card.Tags = in.Tags
	card.Notes = in.Notes
	return true, nil
}

// DeleteCard removes a card from whichever deck holds it.
func (c *Collection) DeleteCard(cardID string) bool {
	d, _ := c.FindCard(cardID)
	if d == nil {
		return false
	}
	i := d.cardIndex(cardID)
	d.Cards = slices.Delete(d.Cards, i, i+1)
	return true
}

// MoveCard moves a card, with its scheduling state, to another deck.
func (c *Collection) MoveCard(cardID, toDeckID string) bool {
	to := c.Deck(toDeckID)
	from, card := c.FindCard(cardID)
	if to == nil || card == nil || from == to {
		return false
	}
	i := from.cardIndex(cardID)
	from.Cards = slices.Delete(from.Cards, i, i+1)
	to.Cards = append(to.Cards, card)
	return true
}

// FindCard returns the card with the given id and the deck holding it.
func (c *Collection) FindCard(cardID string) (*Deck, *Card) {
	for _, d := range c.decks {
		if card := d.Card(cardID); card != nil {
			return d, card
		}
	}
	return nil, nil
}

// Review records a graded review of a card. Returns the card, or nil if the
// card does not exist.
func (c *Collection) Review(cardID string, q spacedrep.Quality, now time.Time) *Card {
	_, card := c.FindCard(cardID)
	if card == nil {
		return nil
	}
	card.SRS = spacedrep.Review(card.SRS, q, now)
	return card
}

// AllCards returns every card across all decks.
func (c *Collection) AllCards() []*Card {
	var out []*Card
	for _, d := range c.decks {
		out = append(out, d.Cards...)
	}
	return out
}
