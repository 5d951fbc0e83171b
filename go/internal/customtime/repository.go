package customtime

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcdev12/matchclock/go/internal/sqlutil"
)

// Repository stores the per-match custom time limits.
type Repository struct {
	db      *sql.DB
	dialect sqlutil.Dialect
	queries *Queries
}

// NewRepository creates a repository over db.
func NewRepository(db *sql.DB, dialect sqlutil.Dialect) *Repository {
	return &Repository{
		db:      db,
		dialect: dialect,
		queries: NewQueries(db, dialect),
	}
}

// Get returns the stored "minutes:seconds" value for matchID. The boolean
// is false when no value is stored.
func (r *Repository) Get(ctx context.Context, matchID string) (string, bool, error) {
	v, err := r.queries.GetTrackTime(ctx, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get custom time: %w", err)
	}
	return v, true, nil
}

// Set stores value for matchID, updating existing rows or inserting one.
func (r *Repository) Set(ctx context.Context, matchID, value string) error {
	newQueries := func(tx *sql.Tx) *Queries { return NewQueries(tx, r.dialect) }

	err := sqlutil.Run(ctx, r.db, newQueries, func(q *Queries) error {
		n, err := q.CountTrackTimes(ctx, matchID)
		if err != nil {
			return err
		}
		if n > 0 {
			return q.UpdateTrackTime(ctx, matchID, value)
		}
		return q.InsertTrackTime(ctx, matchID, value)
	})
	if err != nil {
		return fmt.Errorf("failed to set custom time: %w", err)
	}
	return nil
}
