package session

// SnapshotVersion is the current persisted format of the session blobs.
const SnapshotVersion = 1

// HistoryData is the persisted session history.
type HistoryData struct {
	Version  int     `json:"version"`
	Sessions []Stats `json:"sessions"`
}

// ProgressData is the persisted running counters and in-progress session.
type ProgressData struct {
	Version           int   `json:"version"`
	Streak            int   `json:"streak"`
	BestStreak        int   `json:"best_streak"`
	QuestionsAnswered int   `json:"questions_answered"`
	CorrectAnswers    int   `json:"correct_answers"`
	Current           Stats `json:"current"`
}

// HistoryData exports archived sessions.
func (a *Aggregator) HistoryData() *HistoryData {
	return &HistoryData{Version: SnapshotVersion, Sessions: a.History()}
}

// ProgressData exports the counters.
func (a *Aggregator) ProgressData() *ProgressData {
	return &ProgressData{
		Version:           SnapshotVersion,
		Streak:            a.streak,
		BestStreak:        a.bestStreak,
		QuestionsAnswered: a.questionsAnswered,
		CorrectAnswers:    a.correctAnswers,
		Current:           a.current,
	}
}

// Restore loads persisted state. Either argument may be nil, in which case
// that part keeps its defaults. Negative counters are clamped to zero.
func (a *Aggregator) Restore(history *HistoryData, progress *ProgressData) {
	if history != nil {
		a.history = nil
		for _, s := range history.Sessions {
			if !s.Empty() {
				a.history = append(a.history, s)
			}
		}
	}
	if progress != nil {
		a.streak = max(progress.Streak, 0)
		a.bestStreak = max(progress.BestStreak, a.streak)
		a.questionsAnswered = max(progress.QuestionsAnswered, 0)
		a.correctAnswers = min(max(progress.CorrectAnswers, 0), a.questionsAnswered)
		if !progress.Current.Date.IsZero() {
			a.current = progress.Current
		}
	}
}
