package mastery

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanzi/internal/hanzi"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(nil, WithClock(clk.Now), WithRand(rand.New(rand.NewPCG(1, 2))))
	return tr, clk
}

func TestTracker_LazyRecord(t *testing.T) {
	tr, _ := newTestTracker(t)
	r := tr.Get("水")
	assert.Equal(t, 1.0, r.Alpha)
	assert.Equal(t, 1.0, r.Beta)
	assert.Equal(t, 0.5, r.ExpectedValue())
	assert.False(t, r.Seen())
	assert.Same(t, r, tr.Get("水"))
}

func TestTracker_ThreeFailures(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.StartSession()
	for i := 0; i < 3; i++ {
		tr.RecordFailure("火")
	}

	r := tr.Get("火")
	assert.Equal(t, 1.0, r.Alpha)
	assert.Equal(t, 4.0, r.Beta)
	assert.InDelta(t, 0.2, r.ExpectedValue(), 1e-9)
	assert.Equal(t, 1, r.LastSessionID)
	require.NotNil(t, r.LastSeen)
	assert.Equal(t, clk.Now(), *r.LastSeen)

	// Just practiced in this session.
	assert.Equal(t, UrgencyLow, tr.Urgency("火"))

	tr.StartSession()
	assert.Equal(t, UrgencyHigh, tr.Urgency("火"))
}

func TestRecord_Variance(t *testing.T) {
	r := &Record{Alpha: 2, Beta: 3}
	want := 6.0 / (25.0 * 6.0)
	if math.Abs(r.Variance()-want) > 1e-12 {
		t.Errorf("Variance() = %f, want %f", r.Variance(), want)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.RecordSuccess("山")
	assert.True(t, tr.Reset("山"))
	assert.False(t, tr.Reset("山"))
	assert.Equal(t, 1.0, tr.Get("山").Alpha)

	tr.RecordSuccess("川")
	tr.ResetAll()
	assert.Empty(t, tr.BandCounts())
}

func TestTracker_LogitBias(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.records["弱"] = &Record{Char: "弱", Alpha: 1, Beta: 5}
	tr.records["中"] = &Record{Char: "中", Alpha: 2, Beta: 2}
	tr.records["强"] = &Record{Char: "强", Alpha: 9, Beta: 1}

	got := tr.LogitBias([]hanzi.Char{"弱", "中", "强", "新"})
	assert.Equal(t, map[hanzi.Char]int{"弱": 5, "中": 3, "强": 1, "新": 3}, got)
}

func TestTracker_BandCounts(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.RecordFailure("一")
	tr.RecordFailure("一")
	tr.RecordFailure("一")
	tr.RecordSuccess("二")
	tr.RecordFailure("二")
	tr.Get("三") // never seen, not counted

	got := tr.BandCounts()
	assert.Equal(t, 1, got[BandWeak])
	assert.Equal(t, 1, got[BandMedium])
	assert.Equal(t, 0, got[BandStrong])
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr, clk := newTestTracker(t)
	tr.StartSession()
	tr.RecordSuccess("日")
	tr.RecordFailure("月")
	tr.Get("星")

	restored := NewTracker(tr.SnapshotData(), WithClock(clk.Now))
	assert.Equal(t, tr.SessionID(), restored.SessionID())
	for _, c := range []hanzi.Char{"日", "月", "星"} {
		want, got := tr.Get(c), restored.Get(c)
		assert.Equal(t, want.Alpha, got.Alpha, c)
		assert.Equal(t, want.Beta, got.Beta, c)
		assert.Equal(t, want.LastSessionID, got.LastSessionID, c)
		if want.LastSeen == nil {
			assert.Nil(t, got.LastSeen, c)
		} else {
			require.NotNil(t, got.LastSeen, c)
			assert.True(t, want.LastSeen.Equal(*got.LastSeen), c)
		}
	}
}

func TestSnapshotRoundTrip_KeepsSubSecondTimes(t *testing.T) {
	clk := &fakeClock{t: time.Date(2025, 3, 9, 8, 30, 15, 123456789, time.UTC)}
	tr := NewTracker(nil, WithClock(clk.Now))
	tr.StartSession()
	clk.Advance(1500 * time.Millisecond)
	tr.RecordSuccess("山")

	restored := NewTracker(tr.SnapshotData(), WithClock(clk.Now))
	if got, want := restored.SessionStart(), tr.SessionStart(); !got.Equal(want) {
		t.Errorf("SessionStart = %v, want %v", got, want)
	}
	got := restored.Get("山").LastSeen
	require.NotNil(t, got)
	assert.True(t, got.Equal(clk.Now()))
}

func TestSnapshotLoad_ClampsPrior(t *testing.T) {
	tr := NewTracker(&SnapshotData{Records: map[string]*RecordData{
		"坏": {Alpha: 0, Beta: -2},
		"空": nil,
	}})
	r := tr.Get("坏")
	assert.Equal(t, 1.0, r.Alpha)
	assert.Equal(t, 1.0, r.Beta)
}
