package snapshots

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/tarest/internal/db"
	"github.com/example/tarest/internal/restaurants"
)

// Meta describes a stored snapshot without its restaurants.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	FetchedAt time.Time `json:"fetchedAt"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}

type Repo struct{ db db.Querier }

func NewRepo(d db.Querier) *Repo { return &Repo{db: d} }

// Save stores snap; source names where the feed came from (file path, "api").
func (r *Repo) Save(ctx context.Context, snap restaurants.Snapshot, source string) error {
	if snap.ID == uuid.Nil {
		return fmt.Errorf("snapshot id required")
	}
	body, err := json.Marshal(snap.Restaurants)
	if err != nil {
		return fmt.Errorf("encode restaurants: %w", err)
	}
	err = r.db.Exec(ctx, `
INSERT INTO snapshots(id, fetched_at, source, count, restaurants)
VALUES ($1,$2,$3,$4,$5)`,
		snap.ID, snap.FetchedAt, source, len(snap.Restaurants), string(body))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently fetched snapshot, or db.ErrNotFound.
func (r *Repo) Latest(ctx context.Context) (restaurants.Snapshot, error) {
	var (
		snap restaurants.Snapshot
		body []byte
	)
	err := r.db.QueryRow(ctx, `
SELECT id, fetched_at, restaurants
FROM snapshots
ORDER BY fetched_at DESC
LIMIT 1`).Scan(&snap.ID, &snap.FetchedAt, &body)
	if err != nil {
		return restaurants.Snapshot{}, db.WrapNotFound(err)
	}
	if err := json.Unmarshal(body, &snap.Restaurants); err != nil {
		return restaurants.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	return snap, nil
}

// List returns up to limit snapshots, newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]Meta, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(ctx, `
SELECT id, fetched_at, source, count, created_at
FROM snapshots
ORDER BY fetched_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.ID, &m.FetchedAt, &m.Source, &m.Count, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
