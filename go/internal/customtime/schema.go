package customtime

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS custom_tracktimes (
		challenge_uid VARCHAR(64) NOT NULL,
		tracktime     VARCHAR(16) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_custom_tracktimes_uid ON custom_tracktimes (challenge_uid)`,
}

// InitSchema creates the custom-time table when it does not exist yet.
// The statements are valid for both Postgres and sqlite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize custom time schema: %w", err)
		}
	}
	return nil
}
