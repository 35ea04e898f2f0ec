package mastery

import "time"

// Urgency ranks how badly a character needs practice right now.
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyLow
	UrgencyMedium
	UrgencyHigh
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	}
	return "none"
}

// Weight is the sampling weight for the tier. NONE is excluded from sampling.
func (u Urgency) Weight() float64 {
	switch u {
	case UrgencyHigh:
		return 10
	case UrgencyMedium:
		return 3
	case UrgencyLow:
		return 1
	}
	return 0
}

const (
	// recentWindow is how recently a weak character must have been seen
	// in the current session to drop to LOW.
	recentWindow = 5 * time.Minute

	// mediumHighGap and mediumLowGap are session gaps for medium characters.
	mediumHighGap = 3
	mediumLowGap  = 1

	// strongStaleDays is the idle time after which a strong character
	// comes back at MEDIUM.
	strongStaleDays = 10
)

// UrgencyTier classifies a record against the current session identity.
// It is a pure function of the record, the session and the time.
func UrgencyTier(r *Record, sessionID int, sessionStart, now time.Time) Urgency {
	switch r.Band() {
	case BandWeak:
		if !r.Seen() || r.LastSessionID < sessionID {
			return UrgencyHigh
		}
		// Recency is measured in session time only.
		seenAt := *r.LastSeen
		if seenAt.Before(sessionStart) {
			seenAt = sessionStart
		}
		if now.Sub(seenAt) <= recentWindow {
			return UrgencyLow
		}
		return UrgencyMedium

	case BandMedium:
		gap := sessionID - r.LastSessionID
		switch {
		case gap >= mediumHighGap:
			return UrgencyHigh
		case gap >= mediumLowGap:
			return UrgencyLow
		}
		return UrgencyNone
	}

	if !r.Seen() || now.Sub(*r.LastSeen) >= strongStaleDays*24*time.Hour {
		return UrgencyMedium
	}
	return UrgencyNone
}

// LogitBias maps a band to the token bias handed to sentence generation.
func (b Band) LogitBias() int {
	switch b {
	case BandWeak:
		return 5
	case BandMedium:
		return 3
	}
	return 1
}
