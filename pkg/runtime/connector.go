// Package runtime applies generated DDL to a PostgreSQL database.
package runtime

import (
	"database/sql"
	"errors"
	"strings"

	_ "github.com/lib/pq"
)

var ErrEmptyDSN = errors.New("DSN is empty")

// Connect opens a database connection using the given DSN.
func Connect(dsn string) (*sql.DB, error) {
	dsn, err := normalizeDSN(dsn)
	if err != nil {
		return nil, err
	}
	return sql.Open("postgres", dsn)
}

// normalizeDSN disables SSL for URL style DSNs that do not choose a mode.
func normalizeDSN(dsn string) (string, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return "", ErrEmptyDSN
	}
	isURL := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if isURL && !strings.Contains(dsn, "sslmode=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "sslmode=disable"
	}
	return dsn, nil
}
