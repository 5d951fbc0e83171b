package sqlutil

import "github.com/jmoiron/sqlx"

// Dialect selects the SQL flavour a query is written for.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectSQLite {
		return "sqlite"
	}
	return "postgres"
}

func (d Dialect) bindType() int {
	if d == DialectSQLite {
		return sqlx.QUESTION
	}
	return sqlx.DOLLAR
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Postgres gets $1..$n, sqlite keeps '?'.
func Rebind(d Dialect, query string) string {
	return sqlx.Rebind(d.bindType(), query)
}
