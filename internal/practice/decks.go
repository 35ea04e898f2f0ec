package practice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/gitsource"
	"github.com/abhisek/hanzi/internal/store"
)

// The deck mutators below persist the collection when something changed.
// Unknown ids are no-ops.

func (s *Service) AddDeck(ctx context.Context, in deck.DeckInput) (*deck.Deck, error) {
	d, err := s.decks.AddDeck(in)
	if err != nil {
		return nil, err
	}
	return d, s.save(ctx, store.KeyDecks)
}

func (s *Service) UpdateDeck(ctx context.Context, id string, in deck.DeckInput) (bool, error) {
	ok, err := s.decks.UpdateDeck(id, in)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.save(ctx, store.KeyDecks)
}

func (s *Service) DeleteDeck(ctx context.Context, id string) (bool, error) {
	return s.saveIf(ctx, s.decks.DeleteDeck(id))
}

func (s *Service) SetDeckActive(ctx context.Context, id string, active bool) (bool, error) {
	return s.saveIf(ctx, s.decks.SetActive(id, active))
}

func (s *Service) SetDeckLimits(ctx context.Context, id string, newPerDay, reviewsPerDay int) (bool, error) {
	return s.saveIf(ctx, s.decks.SetLimits(id, newPerDay, reviewsPerDay))
}

// AddCard returns nil, nil when deckID is unknown.
func (s *Service) AddCard(ctx context.Context, deckID string, in deck.CardInput) (*deck.Card, error) {
	card, err := s.decks.AddCard(deckID, in, s.now())
	if err != nil || card == nil {
		return card, err
	}
	return card, s.save(ctx, store.KeyDecks)
}

func (s *Service) UpdateCard(ctx context.Context, cardID string, in deck.CardInput) (bool, error) {
	ok, err := s.decks.UpdateCard(cardID, in)
	if err != nil || !ok {
		return ok, err
	}
	return true, s.save(ctx, store.KeyDecks)
}

func (s *Service) DeleteCard(ctx context.Context, cardID string) (bool, error) {
	return s.saveIf(ctx, s.decks.DeleteCard(cardID))
}

func (s *Service) MoveCard(ctx context.Context, cardID, toDeckID string) (bool, error) {
	return s.saveIf(ctx, s.decks.MoveCard(cardID, toDeckID))
}

func (s *Service) saveIf(ctx context.Context, changed bool) (bool, error) {
	if !changed {
		return false, nil
	}
	return true, s.save(ctx, store.KeyDecks)
}

// ExportDecks renders the given decks (all when none) as a deck document.
func (s *Service) ExportDecks(ids ...string) ([]byte, error) {
	return s.decks.Export(s.now(), ids...)
}

// ImportDecks merges a deck document into the collection.
func (s *Service) ImportDecks(ctx context.Context, raw []byte) (deck.ImportResult, error) {
	res, err := s.decks.Import(raw, s.now())
	if err != nil {
		return res, err
	}
	return res, s.save(ctx, store.KeyDecks)
}

// SyncSource clones or pulls a git repository of deck documents into
// cacheDir and imports every document in it. Unreadable documents are
// skipped and logged.
func (s *Service) SyncSource(ctx context.Context, url, cacheDir string) (deck.ImportResult, error) {
	var total deck.ImportResult

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return total, fmt.Errorf("create cache dir: %w", err)
	}
	local := gitsource.LocalPath(cacheDir, url)
	if err := gitsource.Sync(ctx, url, local, s.logger); err != nil {
		return total, err
	}

	files, err := gitsource.DeckFiles(local)
	if err != nil {
		return total, err
	}

	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			s.logger.Warn("skipping deck file", "file", f, "error", err)
			continue
		}
		res, err := s.decks.Import(raw, s.now())
		if err != nil {
			s.logger.Warn("skipping deck file", "file", filepath.Base(f), "error", err)
			continue
		}
		total.DecksAdded += res.DecksAdded
		total.DecksMerged += res.DecksMerged
		total.CardsAdded += res.CardsAdded
		total.CardsUpdated += res.CardsUpdated
		total.CardsReassigned += res.CardsReassigned
	}

	s.logger.Info("synced deck source", "url", url, "files", len(files),
		"decks_added", total.DecksAdded, "cards_added", total.CardsAdded)
	return total, s.save(ctx, store.KeyDecks)
}
