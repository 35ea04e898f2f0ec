// Package practice is the single mutation context for a learner's state.
// It owns the deck collection, mastery tracker and session aggregator,
// persists them after every change, and applies results from the grading
// and sentence services.
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/grading"
	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/mastery"
	"github.com/abhisek/hanzi/internal/sentence"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/store"
)

// Deps are the collaborators of a Service. Only Blobs is required.
type Deps struct {
	Blobs     store.BlobStore
	Events    store.EventRepo
	Grader    *grading.Grader
	Generator sentence.Generator
	Clock     func() time.Time
	Rand      *rand.Rand
	Logger    *slog.Logger

	// SentenceHistory bounds the list of sentences the generator is asked
	// not to repeat. Zero means 20.
	SentenceHistory int
}

// Service is not safe for concurrent use. Async work (grading, sentence
// generation) may run elsewhere, but its results must be applied here.
type Service struct {
	blobs     store.BlobStore
	events    store.EventRepo
	grader    *grading.Grader
	generator sentence.Generator
	now       func() time.Time
	logger    *slog.Logger

	decks   *deck.Collection
	tracker *mastery.Tracker
	agg     *session.Aggregator
	builder *session.Builder
	singles []hanzi.Char

	mode      session.Mode
	tally     session.Tally
	tokens    grading.Tokens
	history   *sentence.History
	inSession bool
}

// singlesData is the persisted list of standalone active characters.
type singlesData struct {
	Version int      `json:"version"`
	Chars   []string `json:"chars"`
}

// Open builds a Service from persisted state. Missing or unreadable blobs
// fall back to defaults and are logged; they never fail Open.
func Open(ctx context.Context, deps Deps) (*Service, error) {
	if deps.Blobs == nil {
		return nil, errors.New("practice: blob store is required")
	}
	s := &Service{
		blobs:     deps.Blobs,
		events:    deps.Events,
		grader:    deps.Grader,
		generator: deps.Generator,
		now:       deps.Clock,
		logger:    deps.Logger,
		mode:      session.ModeDeck,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.grader == nil {
		s.grader = grading.NewGrader(nil, nil, grading.WithLogger(s.logger))
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.builder = session.NewBuilder(rng)
	n := deps.SentenceHistory
	if n <= 0 {
		n = 20
	}
	s.history = sentence.NewHistory(n)

	now := s.now()

	var decks deck.SnapshotData
	if s.load(ctx, store.KeyDecks, &decks) {
		s.decks = deck.FromSnapshot(&decks, now)
	} else {
		s.decks = deck.NewCollection()
	}

	var snap mastery.SnapshotData
	var snapPtr *mastery.SnapshotData
	if s.load(ctx, store.KeyMastery, &snap) {
		snapPtr = &snap
	}
	s.tracker = mastery.NewTracker(snapPtr, mastery.WithClock(s.now), mastery.WithRand(rng))

	s.agg = session.NewAggregator(now)
	var hist session.HistoryData
	var prog session.ProgressData
	var histPtr *session.HistoryData
	var progPtr *session.ProgressData
	if s.load(ctx, store.KeyHistory, &hist) {
		histPtr = &hist
	}
	if s.load(ctx, store.KeyProgress, &prog) {
		progPtr = &prog
	}
	s.agg.Restore(histPtr, progPtr)

	var singles singlesData
	if s.load(ctx, store.KeySingles, &singles) {
		s.singles = parseSingles(singles.Chars)
	}

	return s, nil
}

// load decodes key into v and reports whether it succeeded.
func (s *Service) load(ctx context.Context, key string, v any) bool {
	err := store.LoadJSON(ctx, s.blobs, key, v)
	switch {
	case err == nil:
		return true
	case errors.Is(err, store.ErrNotFound):
		s.logger.Debug("no saved state, using defaults", "key", key)
	default:
		s.logger.Warn("saved state unreadable, using defaults", "key", key, "error", err)
	}
	return false
}

// save persists the named blobs. Every blob is attempted; failures are
// logged and joined.
func (s *Service) save(ctx context.Context, keys ...string) error {
	var errs []error
	for _, key := range keys {
		var v any
		switch key {
		case store.KeyDecks:
			v = s.decks.SnapshotData()
		case store.KeyMastery:
			v = s.tracker.SnapshotData()
		case store.KeyHistory:
			v = s.agg.HistoryData()
		case store.KeyProgress:
			v = s.agg.ProgressData()
		case store.KeySingles:
			v = singlesData{Version: 1, Chars: charStrings(s.singles)}
		default:
			continue
		}
		if err := store.SaveJSON(ctx, s.blobs, key, v); err != nil {
			s.logger.Error("failed to save state", "key", key, "error", err)
			errs = append(errs, fmt.Errorf("save %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func parseSingles(raw []string) []hanzi.Char {
	var out []hanzi.Char
	for _, r := range raw {
		for _, c := range hanzi.Split(r) {
			if !hanzi.IsPunct(c) {
				out = append(out, c)
			}
		}
	}
	return hanzi.Distinct(out)
}

func charStrings(chars []hanzi.Char) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = string(c)
	}
	return out
}

// Collection exposes the decks for read access.
func (s *Service) Collection() *deck.Collection { return s.decks }

// Tracker exposes the mastery tracker for read access.
func (s *Service) Tracker() *mastery.Tracker { return s.tracker }

// Aggregator exposes session progress for read access.
func (s *Service) Aggregator() *session.Aggregator { return s.agg }

// Singles returns the standalone active characters.
func (s *Service) Singles() []hanzi.Char {
	return append([]hanzi.Char(nil), s.singles...)
}

// Mode is the mode of the running session.
func (s *Service) Mode() session.Mode { return s.mode }

// Now reads the service clock.
func (s *Service) Now() time.Time { return s.now() }

// SetSingles replaces the standalone active characters with those in text.
// Whitespace and punctuation are ignored.
func (s *Service) SetSingles(ctx context.Context, text string) ([]hanzi.Char, error) {
	s.singles = parseSingles([]string{text})
	return s.Singles(), s.save(ctx, store.KeySingles)
}

// ResetMastery forgets the named characters, or every character when none
// are given.
func (s *Service) ResetMastery(ctx context.Context, chars ...hanzi.Char) error {
	if len(chars) == 0 {
		s.tracker.ResetAll()
		return s.save(ctx, store.KeyMastery)
	}
	changed := false
	for _, c := range chars {
		if s.tracker.Reset(c) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(ctx, store.KeyMastery)
}
