// This file defines the show repository.  A Show links one existing artist
// to one existing venue at a start time.  Unlike venues and artists, show
// creation never falls back to get-or-create: both references must already
// exist by id, and a missing reference aborts the transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"stagelist/internal/model"
)

// OptionRow is an id/name pair used to populate selection forms.
type OptionRow struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ShowRow is a show in list and search responses, with the linked artist
// and venue denormalized for display.
type ShowRow struct {
	ID              uint64    `json:"id"`
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ShowRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new show after verifying inside the transaction that
// both the artist and the venue exist.  A missing reference returns
// ErrArtistNotFound or ErrVenueNotFound and rolls back, leaving the store
// without a new show row.
func (r *ShowRepo) Create(ctx context.Context, artistID, venueID uint64, startTime time.Time) (*model.Show, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = ?`, artistID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return nil, err
	}
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, venueID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO shows (start_time, artist_id, venue_id) VALUES (?, ?, ?)`,
		startTime, artistID, venueID,
	)
	if err != nil {
		return nil, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &model.Show{
		ID:        uint64(newID),
		StartTime: startTime,
		ArtistID:  artistID,
		VenueID:   venueID,
	}, nil
}

// ListAll returns every show with the linked artist and venue names,
// ordered by start time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowRow, error) {
	const q = `SELECT sh.id, sh.venue_id, v.name, sh.artist_id, a.name, a.image_link, sh.start_time
	           FROM shows sh
	           JOIN venues v  ON v.id = sh.venue_id
	           JOIN artists a ON a.id = sh.artist_id
	           ORDER BY sh.start_time ASC`
	return r.queryRows(ctx, q)
}

// Search returns every show whose linked artist name or venue name contains
// the trimmed term, case-insensitively.
func (r *ShowRepo) Search(ctx context.Context, term string) ([]ShowRow, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	const q = `SELECT sh.id, sh.venue_id, v.name, sh.artist_id, a.name, a.image_link, sh.start_time
	           FROM shows sh
	           JOIN venues v  ON v.id = sh.venue_id
	           JOIN artists a ON a.id = sh.artist_id
	           WHERE LOWER(a.name) LIKE ? OR LOWER(v.name) LIKE ?
	           ORDER BY sh.start_time ASC`
	return r.queryRows(ctx, q, pattern, pattern)
}

func (r *ShowRepo) queryRows(ctx context.Context, q string, args ...any) ([]ShowRow, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ShowRow{}
	for rows.Next() {
		var s ShowRow
		if err := rows.Scan(&s.ID, &s.VenueID, &s.VenueName, &s.ArtistID, &s.ArtistName, &s.ArtistImageLink, &s.StartTime); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// listOptions runs an id/name query shared by the venue and artist repos.
func listOptions(ctx context.Context, db *sql.DB, q string) ([]OptionRow, error) {
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OptionRow{}
	for rows.Next() {
		var o OptionRow
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
