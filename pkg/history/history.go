// package history persists a trail of the lookups the relay serves. It is
// telemetry, not a cache: nothing is ever read back into a response.
//
// Expected schema:
//
//	CREATE TABLE lookups (
//	    id         SERIAL PRIMARY KEY,
//	    kind       TEXT NOT NULL,
//	    query      TEXT,
//	    latitude   DOUBLE PRECISION,
//	    longitude  DOUBLE PRECISION,
//	    results    INT NOT NULL DEFAULT 0,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	KindSearch = "search"
	KindDetect = "detect"
)

type Lookup struct {
	Kind      string
	Query     string
	Latitude  *float64
	Longitude *float64
	Results   int
	CreatedAt time.Time
}

type dbLookup struct {
	Kind      string    `db:"kind"`
	Query     *string   `db:"query"`
	Latitude  *float64  `db:"latitude"`
	Longitude *float64  `db:"longitude"`
	Results   int       `db:"results"`
	CreatedAt time.Time `db:"created_at"`
}

type Repository interface {
	RecordSearch(ctx context.Context, query string, results int) error
	RecordDetection(ctx context.Context, lat, lng float64, results int) error
	ListRecent(ctx context.Context, limit int) ([]Lookup, error)
}

type pgRepo struct {
	db *sqlx.DB
}

var _ Repository = (*pgRepo)(nil)

func NewPgRepository(db *sql.DB) *pgRepo {
	return &pgRepo{db: sqlx.NewDb(db, "postgres")}
}

func (r *pgRepo) RecordSearch(ctx context.Context, query string, results int) error {
	q := `INSERT INTO lookups (kind, query, results) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, q, KindSearch, query, results)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}

	return nil
}

func (r *pgRepo) RecordDetection(ctx context.Context, lat, lng float64, results int) error {
	q := `INSERT INTO lookups (kind, latitude, longitude, results) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, KindDetect, lat, lng, results)
	if err != nil {
		return fmt.Errorf("record detection: %w", err)
	}

	return nil
}

func (r *pgRepo) ListRecent(ctx context.Context, limit int) ([]Lookup, error) {
	q := `
		SELECT kind, query, latitude, longitude, results, created_at
		FROM lookups
		ORDER BY created_at DESC
		LIMIT $1`

	var rows []dbLookup
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, fmt.Errorf("list recent lookups: %w", err)
	}

	lookups := make([]Lookup, 0, len(rows))
	for _, row := range rows {
		l := Lookup{
			Kind:      row.Kind,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Results:   row.Results,
			CreatedAt: row.CreatedAt,
		}

		if row.Query != nil {
			l.Query = *row.Query
		}

		lookups = append(lookups, l)
	}

	return lookups, nil
}
