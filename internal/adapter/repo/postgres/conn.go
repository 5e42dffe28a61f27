// Package postgres implements the persistence ports on PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is a minimal subset of pgxpool used by the repos for easy testing.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// NewPool creates a pgx connection pool from the provided DSN. Queries are
// traced through the otelpgx instrumentation.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.parse_config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.ConnConfig.Tracer = otelpgx.NewTracer()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("op=postgres.new_pool: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name          TEXT NOT NULL,
    role          TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS learning_entries (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL REFERENCES users(id),
    topic      TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    question   TEXT NOT NULL,
    response   TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_learning_user_created ON learning_entries(user_id, created_at);
CREATE TABLE IF NOT EXISTS code_evaluations (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL REFERENCES users(id),
    problem_id       TEXT NOT NULL,
    code             TEXT NOT NULL,
    language         TEXT NOT NULL,
    evaluation       TEXT NOT NULL,
    passed           BOOLEAN NOT NULL,
    score            INT NOT NULL,
    quality          INT NOT NULL,
    time_complexity  TEXT NOT NULL DEFAULT '',
    space_complexity TEXT NOT NULL DEFAULT '',
    suggestions      TEXT NOT NULL DEFAULT '',
    created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_codeeval_user ON code_evaluations(user_id);
CREATE TABLE IF NOT EXISTS resume_analyses (
    id                TEXT PRIMARY KEY,
    user_id           TEXT NOT NULL REFERENCES users(id),
    filename          TEXT NOT NULL,
    text_content      TEXT NOT NULL,
    credibility_score INT NOT NULL,
    fake_skills       TEXT[] NOT NULL DEFAULT '{}',
    suggestions       TEXT[] NOT NULL DEFAULT '{}',
    analysis          TEXT NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resume_user ON resume_analyses(user_id);
CREATE TABLE IF NOT EXISTS interview_evaluations (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL REFERENCES users(id),
    interview_type  TEXT NOT NULL,
    questions       JSONB NOT NULL,
    answers         JSONB NOT NULL,
    evaluation      TEXT NOT NULL,
    readiness_score INT NOT NULL,
    strengths       TEXT[] NOT NULL DEFAULT '{}',
    weaknesses      TEXT[] NOT NULL DEFAULT '{}',
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interview_user ON interview_evaluations(user_id);
`

// EnsureSchema creates the tables if they do not exist yet. Safe to call on
// every startup.
func EnsureSchema(ctx context.Context, pool PgxPool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("op=postgres.ensure_schema: %w", err)
	}
	return nil
}
