package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out the sequence number stamped on every event
// row. Review, session and llm_request events live in separate tables, so
// only this shared counter orders them against each other.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(ctx context.Context, db *sql.DB) (*sequenceCounter, error) {
	query, args := builder().
		Insert(sequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the current value and advances the counter in one statement.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	q := fmt.Sprintf(`UPDATE %s SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`, sequenceTable.Name)
	if err := sc.db.QueryRowContext(ctx, q).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
