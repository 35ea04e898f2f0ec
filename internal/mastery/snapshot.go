package mastery

import (
	"time"

	"github.com/abhisek/hanzi/internal/hanzi"
)

// SnapshotVersion is the current persisted format of the mastery blob.
const SnapshotVersion = 1

// SnapshotData is the persisted form of a Tracker.
type SnapshotData struct {
	Version      int                    `json:"version"`
	SessionID    int                    `json:"session_id"`
	SessionStart string                 `json:"session_start,omitempty"`
	Records      map[string]*RecordData `json:"records"`
}

// RecordData is the persisted form of a Record.
type RecordData struct {
	Alpha         float64 `json:"alpha"`
	Beta          float64 `json:"beta"`
	LastSeen      *string `json:"last_seen,omitempty"`
	LastSessionID int     `json:"last_session_id"`
}

// SnapshotData exports the tracker state for persistence.
func (t *Tracker) SnapshotData() *SnapshotData {
	data := &SnapshotData{
		Version:      SnapshotVersion,
		SessionID:    t.sessionID,
		SessionStart: t.sessionStart.Format(time.RFC3339Nano),
		Records:      make(map[string]*RecordData, len(t.records)),
	}
	for c, r := range t.records {
		rd := &RecordData{
			Alpha:         r.Alpha,
			Beta:          r.Beta,
			LastSessionID: r.LastSessionID,
		}
		if r.LastSeen != nil {
			s := r.LastSeen.Format(time.RFC3339Nano)
			rd.LastSeen = &s
		}
		data.Records[string(c)] = rd
	}
	return data
}

func (t *Tracker) load(data *SnapshotData) {
	t.sessionID = data.SessionID
	if ts, err := time.Parse(time.RFC3339Nano, data.SessionStart); err == nil {
		t.sessionStart = ts
	}
	for key, rd := range data.Records {
		if rd == nil {
			continue
		}
		c := hanzi.Char(key)
		r := &Record{
			Char:          c,
			Alpha:         max(rd.Alpha, 1),
			Beta:          max(rd.Beta, 1),
			LastSessionID: rd.LastSessionID,
		}
		if rd.LastSeen != nil {
			if ts, err := time.Parse(time.RFC3339Nano, *rd.LastSeen); err == nil {
				r.LastSeen = &ts
			}
		}
		t.records[c] = r
	}
}
