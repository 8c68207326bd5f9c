// This file defines the artist repository.  It mirrors the venue
// repository: one city per artist, a replaceable genre set, shows
// partitioned into past and upcoming at read time, and mutations that run
// the get-or-create resolver for dependent entities inside one transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"stagelist/internal/model"
)

// ArtistUpsert carries the validated input of an artist create or update.
type ArtistUpsert struct {
	Name               string
	City               string
	State              string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingVenue       bool
	SeekingDescription string
	Genres             []string
}

// ArtistSummary is an artist row in list and search responses.
type ArtistSummary struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	UpcomingShows int    `json:"num_upcoming_shows"`
}

// ArtistShow is a show as seen from an artist's detail page: the linked
// venue plus the start time.
type ArtistShow struct {
	VenueID        uint64    `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// ArtistDetail is the full artist record with joined city/state names,
// genre names and the time-partitioned shows.
type ArtistDetail struct {
	ID                 uint64       `json:"id"`
	Name               string       `json:"name"`
	Genres             []string     `json:"genres"`
	City               string       `json:"city"`
	State              string       `json:"state"`
	Phone              string       `json:"phone"`
	Website            string       `json:"website"`
	FacebookLink       string       `json:"facebook_link"`
	ImageLink          string       `json:"image_link"`
	SeekingVenue       bool         `json:"seeking_venue"`
	SeekingDescription string       `json:"seeking_description"`
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// DB exposes the underlying sql.DB.
func (r *ArtistRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new artist, resolving its state, city and genres through
// the get-or-create resolver inside the same transaction.
func (r *ArtistRepo) Create(ctx context.Context, in ArtistUpsert) (*model.Artist, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cityID, err := resolveCity(ctx, tx, in.City, in.State)
	if err != nil {
		return nil, err
	}

	a := &model.Artist{
		Name:               in.Name,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
		CityID:             cityID,
	}
	const q = `INSERT INTO artists
	           (name, phone, image_link, facebook_link, website, seeking_venue, seeking_description, city_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.Name, a.Phone, a.ImageLink, a.FacebookLink, a.Website,
		a.SeekingVenue, a.SeekingDescription, a.CityID,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	a.ID = uint64(id)

	if err = replaceArtistGenres(ctx, tx, a.ID, in.Genres); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

// Update rewrites an existing artist loaded strictly by id; only the
// dependent city, state and genres go through the get-or-create resolver.
// The genre set is replaced wholesale.  Returns ErrArtistNotFound when the
// id does not exist.
func (r *ArtistRepo) Update(ctx context.Context, id uint64, in ArtistUpsert) (*model.Artist, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return nil, err
	}

	cityID, err := resolveCity(ctx, tx, in.City, in.State)
	if err != nil {
		return nil, err
	}

	const q = `UPDATE artists
	           SET name = ?, phone = ?, image_link = ?, facebook_link = ?, website = ?,
	               seeking_venue = ?, seeking_description = ?, city_id = ?
	           WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		in.Name, in.Phone, in.ImageLink, in.FacebookLink, in.Website,
		in.SeekingVenue, in.SeekingDescription, cityID, id,
	); err != nil {
		return nil, err
	}

	if err = replaceArtistGenres(ctx, tx, id, in.Genres); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &model.Artist{
		ID:                 id,
		Name:               in.Name,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingVenue:       in.SeekingVenue,
		SeekingDescription: in.SeekingDescription,
		CityID:             cityID,
	}, nil
}

// replaceArtistGenres replaces an artist's genre links with the resolved
// set.  Full replacement, not a merge.
func replaceArtistGenres(ctx context.Context, tx *sql.Tx, artistID uint64, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM artist_genres WHERE artist_id = ?`, artistID); err != nil {
		return err
	}
	ids, err := resolveGenres(ctx, tx, names)
	if err != nil {
		return err
	}
	for _, gid := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO artist_genres (artist_id, genre_id) VALUES (?, ?)`, artistID, gid); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the full artist record with its shows partitioned into
// past and upcoming relative to now; a show starting exactly at now belongs
// to neither set.  Returns ErrArtistNotFound when no row matches.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64, now time.Time) (*ArtistDetail, error) {
	const q = `SELECT a.id, a.name, a.phone, a.image_link, a.facebook_link, a.website,
	                  a.seeking_venue, a.seeking_description, c.name, s.name
	           FROM artists a
	           JOIN cities c ON c.id = a.city_id
	           JOIN states s ON s.id = c.state_id
	           WHERE a.id = ?`
	d := &ArtistDetail{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Phone, &d.ImageLink, &d.FacebookLink, &d.Website,
		&d.SeekingVenue, &d.SeekingDescription, &d.City, &d.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}

	if d.Genres, err = artistGenreNames(ctx, r.db, id); err != nil {
		return nil, err
	}

	const qShows = `SELECT sh.venue_id, v.name, v.image_link, sh.start_time
	                FROM shows sh
	                JOIN venues v ON v.id = sh.venue_id
	                WHERE sh.artist_id = ?
	                ORDER BY sh.start_time ASC`
	rows, err := r.db.QueryContext(ctx, qShows, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d.PastShows = []ArtistShow{}
	d.UpcomingShows = []ArtistShow{}
	for rows.Next() {
		var as ArtistShow
		if err := rows.Scan(&as.VenueID, &as.VenueName, &as.VenueImageLink, &as.StartTime); err != nil {
			return nil, err
		}
		switch {
		case as.StartTime.After(now):
			d.UpcomingShows = append(d.UpcomingShows, as)
		case as.StartTime.Before(now):
			d.PastShows = append(d.PastShows, as)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d, nil
}

// artistGenreNames loads the genre names linked to an artist, sorted.
func artistGenreNames(ctx context.Context, db *sql.DB, artistID uint64) ([]string, error) {
	const q = `SELECT g.name
	           FROM genres g
	           JOIN artist_genres ag ON ag.genre_id = g.id
	           WHERE ag.artist_id = ?
	           ORDER BY g.name`
	rows, err := db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// ListAll returns every artist as an id/name pair, ordered by name.  The
// result set is unbounded by design.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]OptionRow, error) {
	return listOptions(ctx, r.db, `SELECT id, name FROM artists ORDER BY name`)
}

// Options is an alias of ListAll for populating the show creation form.
func (r *ArtistRepo) Options(ctx context.Context) ([]OptionRow, error) {
	return r.ListAll(ctx)
}

// Search returns every artist whose name contains the trimmed term,
// case-insensitively.  An empty term matches all artists.
func (r *ArtistRepo) Search(ctx context.Context, term string, now time.Time) ([]ArtistSummary, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	const q = `SELECT a.id, a.name,
	                  (SELECT COUNT(*) FROM shows sh WHERE sh.artist_id = a.id AND sh.start_time > ?)
	           FROM artists a
	           WHERE LOWER(a.name) LIKE ?
	           ORDER BY a.name`
	rows, err := r.db.QueryContext(ctx, q, now, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ArtistSummary{}
	for rows.Next() {
		var as ArtistSummary
		if err := rows.Scan(&as.ID, &as.Name, &as.UpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, as)
	}
	return out, rows.Err()
}

// Delete removes an artist together with its genre links and shows inside
// one transaction.  Returns ErrArtistNotFound when the id does not exist;
// the store is left unchanged in that case.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var existing uint64
	err = tx.QueryRowContext(ctx, `SELECT id FROM artists WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrArtistNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artist_genres WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE artist_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM artists WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
