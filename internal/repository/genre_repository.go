package repository

import (
	"context"
	"database/sql"
)

// GenreRepo serves read access to the genre catalogue.  Writes go through
// the get-or-create resolver during venue and artist mutations.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo constructs a GenreRepo with the provided DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// ListNames returns every genre name, sorted, for form population.
func (r *GenreRepo) ListNames(ctx context.Context) ([]string, error) {
	return listNames(ctx, r.db, `SELECT name FROM genres ORDER BY name`)
}

// listNames runs a single-column name query shared by the genre and state
// repos.
func listNames(ctx context.Context, db *sql.DB, q string) ([]string, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
