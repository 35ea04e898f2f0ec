package practice

import (
	"context"
	"errors"

	"github.com/abhisek/hanzi/internal/deck"
	"github.com/abhisek/hanzi/internal/hanzi"
	"github.com/abhisek/hanzi/internal/session"
	"github.com/abhisek/hanzi/internal/spacedrep"
	"github.com/abhisek/hanzi/internal/store"
)

// StartSession archives any unfinished session and begins a new one in
// mode. It returns the new study session id.
func (s *Service) StartSession(ctx context.Context, mode session.Mode) (int, error) {
	now := s.now()
	s.agg.StartNewSession(now)
	id := s.tracker.StartSession()
	s.mode = mode
	s.tally = session.Tally{}
	s.tokens.Invalidate()
	s.inSession = true

	s.appendSession(ctx, store.SessionEventData{SessionID: id, Action: "start", Mode: string(mode)})
	return id, s.save(ctx, store.KeyMastery, store.KeyHistory, store.KeyProgress)
}

// EndSession archives the running session and returns its summary.
func (s *Service) EndSession(ctx context.Context) (*session.Summary, error) {
	now := s.now()
	stats := s.agg.Current()
	s.agg.EndSession(now)
	s.tokens.Invalidate()
	s.inSession = false

	summary := session.BuildSummary(stats, s.tally.Results(), s.agg, now)
	s.appendSession(ctx, store.SessionEventData{
		SessionID:    s.tracker.SessionID(),
		Action:       "end",
		Mode:         string(s.mode),
		CardsStudied: stats.CardsStudied,
		Correct:      stats.Correct,
		DurationSecs: int(summary.Duration.Seconds()),
	})
	return summary, s.save(ctx, store.KeyHistory, store.KeyProgress)
}

// InSession reports whether a session has been started and not ended.
func (s *Service) InSession() bool { return s.inSession }

// ReviewCard grades a card of deckID. It is a no-op returning nil when the
// card is not in that deck.
func (s *Service) ReviewCard(ctx context.Context, deckID, cardID string, q spacedrep.Quality) (*deck.Card, error) {
	d, card := s.decks.FindCard(cardID)
	if card == nil || d.ID != deckID {
		return nil, nil
	}
	isNew := card.SRS.IsNew()
	card = s.decks.Review(cardID, q, s.now())
	correct := q.Correct()
	s.agg.RecordAnswer(correct, isNew)
	for _, c := range card.Chars() {
		s.tally.Record(c, correct)
	}

	if s.events != nil {
		err := s.events.AppendReview(ctx, store.ReviewEventData{
			DeckID:     deckID,
			CardID:     cardID,
			Term:       card.Term,
			Quality:    int(q),
			Correct:    correct,
			Interval:   card.SRS.Interval,
			EaseFactor: card.SRS.EaseFactor,
		})
		s.logEventErr("review", err)
	}
	return card, s.save(ctx, store.KeyDecks, store.KeyProgress)
}

// RecordCharacter applies an active-practice outcome for c.
func (s *Service) RecordCharacter(ctx context.Context, c hanzi.Char, correct bool) error {
	return s.recordCharacter(ctx, c, correct, true, nil)
}

func (s *Service) recordCharacter(ctx context.Context, c hanzi.Char, correct, graded bool, verdicts []string) error {
	isNew := !s.tracker.Get(c).Seen()
	s.tracker.Record(c, correct)
	s.agg.RecordAnswer(correct, isNew)
	s.tally.Record(c, correct)

	if s.events != nil {
		err := s.events.AppendAttempt(ctx, store.AttemptEventData{
			SessionID: s.tracker.SessionID(),
			Char:      string(c),
			Correct:   correct,
			Graded:    graded,
			Verdicts:  verdicts,
		})
		s.logEventErr("attempt", err)
	}
	return s.save(ctx, store.KeyMastery, store.KeyProgress)
}

// OverrideCorrect is the learner insisting an attempt at c was right. Only
// the answer streak moves; mastery and accuracy keep the graded outcome.
func (s *Service) OverrideCorrect(ctx context.Context, c hanzi.Char) error {
	s.agg.OverrideCorrect()
	if s.events != nil {
		err := s.events.AppendAttempt(ctx, store.AttemptEventData{
			SessionID:  s.tracker.SessionID(),
			Char:       string(c),
			Correct:    true,
			Graded:     false,
			Overridden: true,
		})
		s.logEventErr("attempt", err)
	}
	return s.save(ctx, store.KeyProgress)
}

func (s *Service) appendSession(ctx context.Context, data store.SessionEventData) {
	if s.events == nil {
		return
	}
	s.logEventErr("session", s.events.AppendSessionEvent(ctx, data))
}

func (s *Service) logEventErr(kind string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to record event", "kind", kind, "error", err)
	}
}
