package mastery

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// Tracker owns the per-character mastery records and the study session
// identity used to judge recency. It is not safe for concurrent mutation;
// callers apply all updates from a single goroutine.
type Tracker struct {
	records      map[hanzi.Char]*Record
	sessionID    int
	sessionStart time.Time
	now          func() time.Time
	rng          *rand.Rand
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithRand fixes the random source used for sampling and shuffling.
func WithRand(r *rand.Rand) Option {
	return func(t *Tracker) { t.rng = r }
}

// NewTracker creates a tracker, loading records from the snapshot if non-nil.
func NewTracker(snap *SnapshotData, opts ...Option) *Tracker {
	t := &Tracker{
		records: make(map[hanzi.Char]*Record),
		now:     time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	t.sessionStart = t.now()
	if snap != nil {
		t.load(snap)
	}
	return t
}

// Get returns the record for c, creating a Beta(1,1) record if absent.
func (t *Tracker) Get(c hanzi.Char) *Record {
	if r, ok := t.records[c]; ok {
		return r
	}
	r := newRecord(c)
	t.records[c] = r
	return r
}

// RecordSuccess counts a correct answer for c.
func (t *Tracker) RecordSuccess(c hanzi.Char) {
	r := t.Get(c)
	r.Alpha++
	t.touch(r)
}

// RecordFailure counts an incorrect answer for c.
func (t *Tracker) RecordFailure(c hanzi.Char) {
	r := t.Get(c)
	r.Beta++
	t.touch(r)
}

// Record applies an outcome for c.
func (t *Tracker) Record(c hanzi.Char, correct bool) {
	if correct {
		t.RecordSuccess(c)
		return
	}
	t.RecordFailure(c)
}

func (t *Tracker) touch(r *Record) {
	now := t.now()
	r.LastSeen = &now
	r.LastSessionID = t.sessionID
}

// Reset forgets everything known about c. Returns false if c had no record.
func (t *Tracker) Reset(c hanzi.Char) bool {
	if _, ok := t.records[c]; !ok {
		return false
	}
	delete(t.records, c)
	return true
}

// ResetAll forgets every record. The session identity is kept.
func (t *Tracker) ResetAll() {
	t.records = make(map[hanzi.Char]*Record)
}

// StartSession advances the study session identity.
func (t *Tracker) StartSession() int {
	t.sessionID++
	t.sessionStart = t.now()
	return t.sessionID
}

// SessionID returns the current study session identity.
func (t *Tracker) SessionID() int {
	return t.sessionID
}

// SessionStart returns when the current study session began.
func (t *Tracker) SessionStart() time.Time {
	return t.sessionStart
}

// Urgency classifies c against the current session.
func (t *Tracker) Urgency(c hanzi.Char) Urgency {
	return UrgencyTier(t.Get(c), t.sessionID, t.sessionStart, t.now())
}

// LogitBias returns the sentence-generation bias for each active character.
func (t *Tracker) LogitBias(active []hanzi.Char) map[hanzi.Char]int {
	out := make(map[hanzi.Char]int, len(active))
	for _, c := range active {
		out[c] = t.Get(c).Band().LogitBias()
	}
	return out
}

// Records returns all records sorted by character.
func (t *Tracker) Records() []*Record {
	out := make([]*Record, 0, len(t.records))
	for _, r := range t.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// BandCounts tallies practiced characters by band.
func (t *Tracker) BandCounts() map[Band]int {
	out := make(map[Band]int)
	for _, r := range t.records {
		if r.Seen() {
			out[r.Band()]++
		}
	}
	return out
}
