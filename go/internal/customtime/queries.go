package customtime

import (
	"context"
	"database/sql"

	"github.com/mcdev12/matchclock/go/internal/sqlutil"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// The table has no unique key on challenge_uid so it stays readable by
// tools that created it before this service existed.
const (
	getTrackTime    = `SELECT tracktime FROM custom_tracktimes WHERE challenge_uid = ? LIMIT 1`
	countTrackTimes = `SELECT COUNT(*) FROM custom_tracktimes WHERE challenge_uid = ?`
	updateTrackTime = `UPDATE custom_tracktimes SET tracktime = ? WHERE challenge_uid = ?`
	insertTrackTime = `INSERT INTO custom_tracktimes (challenge_uid, tracktime) VALUES (?, ?)`
)

// Queries runs the custom-time statements against a connection or tx.
type Queries struct {
	db      DBTX
	dialect sqlutil.Dialect
}

// NewQueries binds the statements to db.
func NewQueries(db DBTX, dialect sqlutil.Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

func (q *Queries) GetTrackTime(ctx context.Context, matchID string) (string, error) {
	var v string
	err := q.db.QueryRowContext(ctx, sqlutil.Rebind(q.dialect, getTrackTime), matchID).Scan(&v)
	return v, err
}

func (q *Queries) CountTrackTimes(ctx context.Context, matchID string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, sqlutil.Rebind(q.dialect, countTrackTimes), matchID).Scan(&n)
	return n, err
}

func (q *Queries) UpdateTrackTime(ctx context.Context, matchID, value string) error {
	_, err := q.db.ExecContext(ctx, sqlutil.Rebind(q.dialect, updateTrackTime), value, matchID)
	return err
}

func (q *Queries) InsertTrackTime(ctx context.Context, matchID, value string) error {
	_, err := q.db.ExecContext(ctx, sqlutil.Rebind(q.dialect, insertTrackTime), matchID, value)
	return err
}
