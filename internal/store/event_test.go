package store

import (
	"context"
	"testing"
)

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prev := int64(0)
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if n <= prev {
			t.Fatalf("Next = %d, want > %d", n, prev)
		}
		prev = n
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "sentence-gen", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "sentence-gen", InputTokens: 50, OutputTokens: 10, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "hint", InputTokens: 10, OutputTokens: 5, LatencyMs: 50, Success: true, RequestBody: "[user]\nhi"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("AppendLLMRequest: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("QueryLLMEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Purpose != "hint" {
		t.Errorf("newest Purpose = %q, want hint", got[0].Purpose)
	}
	if got[1].ErrorMessage != "rate limited" {
		t.Errorf("ErrorMessage = %q, want rate limited", got[1].ErrorMessage)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "sentence-gen"})
	if err != nil {
		t.Fatalf("QueryLLMEvents(purpose): %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("filtered len = %d, want 2", len(filtered))
	}

	one, err := repo.GetLLMEvent(ctx, got[0].ID)
	if err != nil || one == nil {
		t.Fatalf("GetLLMEvent: %v, %v", one, err)
	}
	if one.RequestBody != "[user]\nhi" {
		t.Errorf("RequestBody = %q", one.RequestBody)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(missing) = %v, %v, want nil, nil", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByPurpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	sg := byPurpose[1]
	if sg.Purpose != "sentence-gen" || sg.Calls != 2 || sg.InputTokens != 150 || sg.AvgLatencyMs != 200 {
		t.Errorf("sentence-gen usage = %+v", sg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("LLMUsageByModel: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "claude-haiku-4-5" || byModel[0].OutputTokens != 30 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_ = repo.AppendSessionEvent(ctx, SessionEventData{SessionID: 1, Action: "start", Mode: "active"})
	_ = repo.AppendSessionEvent(ctx, SessionEventData{SessionID: 1, Action: "end", Mode: "active", CardsStudied: 12, Correct: 9, DurationSecs: 300})

	got, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("QuerySessionEvents: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != "end" || got[0].CardsStudied != 12 {
		t.Errorf("latest = %+v", got[0])
	}

	after, err := repo.QuerySessionEvents(ctx, QueryOpts{After: got[1].Sequence})
	if err != nil {
		t.Fatalf("QuerySessionEvents(after): %v", err)
	}
	if len(after) != 1 {
		t.Errorf("len(after) = %d, want 1", len(after))
	}
}

func TestCharAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	acc, n, err := repo.CharAccuracy(ctx, "水")
	if err != nil || acc != 0 || n != 0 {
		t.Fatalf("CharAccuracy(empty) = %v, %d, %v", acc, n, err)
	}

	attempts := []AttemptEventData{
		{SessionID: 1, Char: "水", Correct: true, Graded: true, Verdicts: []string{"correct"}},
		{SessionID: 1, Char: "水", Correct: false, Graded: true, Verdicts: []string{"incorrect", "correct"}},
		{SessionID: 1, Char: "水", Correct: true, Graded: false},
		{SessionID: 1, Char: "火", Correct: true, Graded: true},
	}
	for _, a := range attempts {
		if err := repo.AppendAttempt(ctx, a); err != nil {
			t.Fatalf("AppendAttempt: %v", err)
		}
	}
	if err := repo.AppendReview(ctx, ReviewEventData{DeckID: "d", CardID: "c", Term: "水", Quality: 4, Correct: true, Interval: 1, EaseFactor: 2.5}); err != nil {
		t.Fatalf("AppendReview: %v", err)
	}

	acc, n, err = repo.CharAccuracy(ctx, "水")
	if err != nil {
		t.Fatalf("CharAccuracy: %v", err)
	}
	if n != 2 || acc != 0.5 {
		t.Errorf("CharAccuracy = %v over %d, want 0.5 over 2 (ungraded excluded)", acc, n)
	}
}
