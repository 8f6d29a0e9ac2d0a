// Package store persists session snapshots write-through, so a draft can be
// reloaded after a process restart. The engine itself stays storage-free.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"github.com/lib/pq"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"
)

// ErrNoSnapshot is returned by LoadLatest when no snapshot has been saved.
var ErrNoSnapshot = errors.New("no snapshot stored")

const schema = `
CREATE TABLE IF NOT EXISTS session_snapshots (
	id           BIGSERIAL PRIMARY KEY,
	taken_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	pointer      INTEGER NOT NULL,
	participants TEXT[] NOT NULL,
	state        JSONB NOT NULL
)`

// PostgresStore writes one row per snapshot; LoadLatest returns the newest.
// Each save prunes the table down to keep rows, so a long session does not
// grow the table without bound.
type PostgresStore struct {
	db   *sql.DB
	keep int
}

// Open connects to Postgres via the pgx stdlib driver and ensures the
// snapshot table exists. keep bounds retention: after every save only the
// newest keep rows survive; zero or negative disables pruning.
func Open(ctx context.Context, dsn string, keep int) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure snapshot schema: %w", err)
	}

	return &PostgresStore{db: db, keep: keep}, nil
}

// Save appends a snapshot row.
func (s *PostgresStore) Save(ctx context.Context, state models.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	labels := make([]string, len(state.Participants))
	for i, p := range state.Participants {
		labels[i] = p.Label
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_snapshots (pointer, participants, state) VALUES ($1, $2, $3)`,
		state.Pointer,
		pq.Array(labels),
		pqtype.NullRawMessage{RawMessage: payload, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	// Retention rides on the write path. The snapshot itself is already
	// durable, so a failed prune is logged, not surfaced.
	if s.keep > 0 {
		if err := s.Prune(ctx, s.keep); err != nil {
			log.Warn().Err(err).Msg("failed to prune snapshots after save")
		}
	}
	return nil
}

// LoadLatest returns the most recently saved snapshot.
func (s *PostgresStore) LoadLatest(ctx context.Context) (models.SessionState, error) {
	var raw pqtype.NullRawMessage
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM session_snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SessionState{}, ErrNoSnapshot
	}
	if err != nil {
		return models.SessionState{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if !raw.Valid {
		return models.SessionState{}, ErrNoSnapshot
	}

	var state models.SessionState
	if err := json.Unmarshal(raw.RawMessage, &state); err != nil {
		return models.SessionState{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return state, nil
}

// Prune keeps the newest keep rows and deletes the rest.
func (s *PostgresStore) Prune(ctx context.Context, keep int) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM session_snapshots
		 WHERE id NOT IN (SELECT id FROM session_snapshots ORDER BY id DESC LIMIT $1)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Debug().Int64("pruned", n).Msg("pruned old snapshots")
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
