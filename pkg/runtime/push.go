package runtime

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Pusher applies a generated schema once per distinct DDL text.
type Pusher struct {
	db     *sql.DB
	logger *slog.Logger
}

// PushResult describes what Push did.
type PushResult struct {
	Hash       string
	Applied    bool
	Statements int
}

// AppliedSchema is one row of the version table.
type AppliedSchema struct {
	Hash      string
	Version   string
	AppliedAt time.Time
}

func NewPusher(db *sql.DB, logger *slog.Logger) *Pusher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pusher{db: db, logger: logger}
}

// Hash returns the hex sha256 of the statements in order.
func Hash(stmts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(stmts, "\n")))
	return hex.EncodeToString(sum[:])
}

// ensureVersionTable creates the cimgen_schema_versions table if it doesn't exist.
func (p *Pusher) ensureVersionTable(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS cimgen_schema_versions (
    hash TEXT PRIMARY KEY,
    version TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT now()
)`)
	return err
}

func (p *Pusher) applied(ctx context.Context, hash string) (bool, error) {
	var ok bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM cimgen_schema_versions WHERE hash = $1)`, hash).Scan(&ok)
	return ok, err
}

// Push executes stmts in one transaction and records their hash. A schema
// whose hash is already recorded is skipped.
func (p *Pusher) Push(ctx context.Context, version string, stmts []string) (*PushResult, error) {
	res := &PushResult{Hash: Hash(stmts), Statements: len(stmts)}
	if err := p.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensureVersionTable: %w", err)
	}
	done, err := p.applied(ctx, res.Hash)
	if err != nil {
		return nil, fmt.Errorf("check applied: %w", err)
	}
	if done {
		p.logger.Info("schema already applied", "hash", res.Hash[:12], "version", version)
		return res, nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cimgen_schema_versions(hash, version) VALUES($1, $2)`, res.Hash, version); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("record version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	res.Applied = true
	p.logger.Info("schema applied", "hash", res.Hash[:12], "version", version, "statements", len(stmts))
	return res, nil
}

// Status lists the recorded schemas, oldest first.
func (p *Pusher) Status(ctx context.Context) ([]AppliedSchema, error) {
	if err := p.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensureVersionTable: %w", err)
	}
	rows, err := p.db.QueryContext(ctx,
		`SELECT hash, version, applied_at FROM cimgen_schema_versions ORDER BY applied_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AppliedSchema
	for rows.Next() {
		var s AppliedSchema
		if err := rows.Scan(&s.Hash, &s.Version, &s.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
