package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by BlobStore.Load when no blob has the key.
var ErrNotFound = errors.New("not found")

// Keys of the persisted state blobs.
const (
	KeyDecks    = "decks"
	KeyMastery  = "mastery"
	KeyHistory  = "history"
	KeyProgress = "progress"
	KeySingles  = "active_singles"
)

// BlobStore is a keyed store of opaque state blobs. Each Save overwrites
// the whole blob; the last writer wins.
type BlobStore interface {
	// Load returns the blob for key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores data under key, replacing any previous blob.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the blob for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys in sorted order.
	Keys(ctx context.Context) ([]string, error)
}

// LoadJSON decodes the blob for key into v. It returns ErrNotFound (wrapped)
// if the key is absent and the decode error if the blob is corrupt.
func LoadJSON(ctx context.Context, bs BlobStore, key string, v any) error {
	data, err := bs.Load(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, bs BlobStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return bs.Save(ctx, key, data)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Purpose filters LLM events by request purpose.
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// ReviewEventData records one graded card review.
type ReviewEventData struct {
	DeckID     string
	CardID     string
	Term       string
	Quality    int
	Correct    bool
	Interval   int
	EaseFactor float64
}

// AttemptEventData records one active-practice attempt at a character.
type AttemptEventData struct {
	SessionID  int
	Char       string
	Correct    bool
	Graded     bool
	Overridden bool
	Verdicts   []string
}

// SessionEventData records a session start or end.
type SessionEventData struct {
	SessionID    int
	Action       string // "start" or "end"
	Mode         string
	CardsStudied int
	Correct      int
	DurationSecs int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendReview records a graded card review.
	AppendReview(ctx context.Context, data ReviewEventData) error

	// AppendAttempt records an active-practice attempt.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QuerySessionEvents returns session events, most recent first.
	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// CharAccuracy returns the graded accuracy and attempt count for a character.
	CharAccuracy(ctx context.Context, char string) (float64, int, error)
}
