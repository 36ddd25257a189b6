package journey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"importintel/internal/intelligence"
)

// PostgresStore persists sessions in a journey_sessions table. Vehicle
// identity and journey state are stored as jsonb: they are opaque to every
// query the store runs, so columns would buy nothing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the sessions table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS journey_sessions (
			token            TEXT PRIMARY KEY,
			original_query   TEXT NOT NULL,
			vehicle          JSONB NOT NULL,
			confidence_score INT NOT NULL,
			current_step     TEXT NOT NULL,
			destination      TEXT NOT NULL DEFAULT '',
			state            JSONB,
			active           BOOLEAN NOT NULL DEFAULT TRUE,
			created_at       TIMESTAMPTZ NOT NULL,
			last_accessed    TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS journey_sessions_recent_idx
			ON journey_sessions (last_accessed DESC) WHERE active;
	`)
	if err != nil {
		return fmt.Errorf("migrating journey_sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, session Session) error {
	vehicle, err := json.Marshal(session.Vehicle)
	if err != nil {
		return fmt.Errorf("encoding vehicle: %w", err)
	}
	var state []byte
	if session.State != nil {
		if state, err = json.Marshal(session.State); err != nil {
			return fmt.Errorf("encoding journey state: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO journey_sessions
			(token, original_query, vehicle, confidence_score, current_step,
			 destination, state, active, created_at, last_accessed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (token) DO UPDATE SET
			current_step  = EXCLUDED.current_step,
			destination   = EXCLUDED.destination,
			state         = EXCLUDED.state,
			active        = EXCLUDED.active,
			last_accessed = EXCLUDED.last_accessed
	`,
		session.Token, session.OriginalQuery, vehicle, session.ConfidenceScore,
		session.CurrentStep, session.Destination, state, session.Active,
		session.CreatedAt, session.LastAccessed,
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByToken(ctx context.Context, token string) (Session, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT token, original_query, vehicle, confidence_score, current_step,
		       destination, state, active, created_at, last_accessed
		FROM journey_sessions
		WHERE token = $1
	`, token)

	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("finding session: %w", err)
	}
	return session, nil
}

func (s *PostgresStore) ListRecentActive(ctx context.Context, limit int) ([]Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT token, original_query, vehicle, confidence_score, current_step,
		       destination, state, active, created_at, last_accessed
		FROM journey_sessions
		WHERE active
		ORDER BY last_accessed DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}

func (s *PostgresStore) DeactivateIdle(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE journey_sessions
		SET active = FALSE
		WHERE active AND last_accessed < $1
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deactivating idle sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanSession(row pgx.Row) (Session, error) {
	var (
		session Session
		vehicle []byte
		state   []byte
	)
	err := row.Scan(
		&session.Token, &session.OriginalQuery, &vehicle, &session.ConfidenceScore,
		&session.CurrentStep, &session.Destination, &state, &session.Active,
		&session.CreatedAt, &session.LastAccessed,
	)
	if err != nil {
		return Session{}, err
	}

	if err := json.Unmarshal(vehicle, &session.Vehicle); err != nil {
		return Session{}, fmt.Errorf("decoding vehicle: %w", err)
	}
	if len(state) > 0 {
		session.State = new(intelligence.Intelligence)
		if err := json.Unmarshal(state, session.State); err != nil {
			return Session{}, fmt.Errorf("decoding journey state: %w", err)
		}
	}
	return session, nil
}
