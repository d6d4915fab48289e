package analytics

import (
	"context"
	_ "embed"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Store persists search events in PostgreSQL.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the search_events table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, e SearchEvent) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO search_events (id, query, bias_applied, result_count, outcome, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Query, e.BiasApplied, e.ResultCount, e.Outcome, e.LatencyMs, e.CreatedAt,
	)
	return err
}

// Recent returns the newest events first.
func (s *Store) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, query, bias_applied, result_count, outcome, latency_ms, created_at
		FROM search_events
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]SearchEvent, 0, limit)
	for rows.Next() {
		var e SearchEvent
		if err := rows.Scan(&e.ID, &e.Query, &e.BiasApplied, &e.ResultCount, &e.Outcome, &e.LatencyMs, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
