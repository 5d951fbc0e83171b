package players

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the directory uses.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
    login      VARCHAR(64)  PRIMARY KEY,
    nickname   VARCHAR(100) NOT NULL,
    updated_at TIMESTAMPTZ  NOT NULL DEFAULT now()
)`

// Directory maps player logins to their last known nickname.
type Directory struct {
	db Querier
}

func NewDirectory(db Querier) *Directory {
	return &Directory{db: db}
}

// InitSchema creates the players table if it does not exist.
func (d *Directory) InitSchema(ctx context.Context) error {
	if _, err := d.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create players table: %w", err)
	}
	return nil
}

// Nickname returns the stored nickname for login. An unknown login is
// reported as ok=false with a nil error.
func (d *Directory) Nickname(ctx context.Context, login string) (string, bool, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return "", false, ErrEmptyLogin
	}

	var nickname string
	err := d.db.QueryRow(ctx, `SELECT nickname FROM players WHERE login = $1`, login).Scan(&nickname)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up nickname for %s: %w", login, err)
	}
	return nickname, true, nil
}

// Upsert records the nickname a player is currently using. It reports
// whether a row was written.
func (d *Directory) Upsert(ctx context.Context, login, nickname string) (bool, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return false, ErrEmptyLogin
	}
	if nickname == "" {
		nickname = login
	}

	tag, err := d.db.Exec(ctx, `
        INSERT INTO players (login, nickname, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (login) DO UPDATE
        SET nickname = EXCLUDED.nickname, updated_at = now()
        WHERE players.nickname IS DISTINCT FROM EXCLUDED.nickname
    `, login, nickname)
	if err != nil {
		return false, fmt.Errorf("failed to upsert player %s: %w", login, err)
	}
	return tag.RowsAffected() == 1, nil
}
