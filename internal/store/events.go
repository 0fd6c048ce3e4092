package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

// Event is one recorded analytics event.
type Event struct {
	ID        int64
	Name      string
	Payload   map[string]any
	CreatedAt time.Time
}

// EventRepo provides append and read access to the event log.
type EventRepo interface {
	// Append records a named event with a flat payload.
	Append(ctx context.Context, name string, payload map[string]any) error

	// Recent returns up to limit events, newest first, optionally
	// filtered by name ("" means all).
	Recent(ctx context.Context, limit int, name string) ([]Event, error)

	// CountByName returns event counts keyed by event name.
	CountByName(ctx context.Context) (map[string]int, error)

	// Purge deletes all recorded events.
	Purge(ctx context.Context) error
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, name string, payload map[string]any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", name, err)
	}

	query, args, err := sqlBuilder.
		Insert("events").
		Columns("name", "payload", "created_at").
		Values(name, string(body), time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build event insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append event %s: %w", name, err)
	}
	return nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int, name string) ([]Event, error) {
	q := sqlBuilder.
		Select("id", "name", "payload", "created_at").
		From("events").
		OrderBy("id DESC")
	if name != "" {
		q = q.Where(squirrel.Eq{"name": name})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e    Event
			body string
		)
		if err := rows.Scan(&e.ID, &e.Name, &body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &e.Payload); err != nil {
			// A single bad row shouldn't hide the rest of the log.
			e.Payload = map[string]any{}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) CountByName(ctx context.Context) (map[string]int, error) {
	query, args, err := sqlBuilder.
		Select("name", "COUNT(*)").
		From("events").
		GroupBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build event count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			count int
		)
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		counts[name] = count
	}
	return counts, rows.Err()
}

func (r *eventRepo) Purge(ctx context.Context) error {
	query, args, err := sqlBuilder.Delete("events").ToSql()
	if err != nil {
		return fmt.Errorf("build event purge: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("purge events: %w", err)
	}
	return nil
}
