// This file defines the venue repository.  A Venue is a place artists play
// at; it belongs to one city, carries a set of genres and has many shows.
// Mutations resolve the venue's city, state and genres through the
// get-or-create resolver and persist everything inside one transaction, so
// a failed write never leaves partial state behind.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"stagelist/internal/model"
)

// VenueUpsert carries the validated input of a venue create or update.
// City, State and Genres are natural keys resolved (and created when
// absent) during the mutation; the remaining fields are written as-is.
type VenueUpsert struct {
	Name               string
	City               string
	State              string
	Address            string
	Phone              string
	ImageLink          string
	FacebookLink       string
	Website            string
	SeekingTalent      bool
	SeekingDescription string
	Genres             []string
}

// VenueSummary is a venue row in list and search responses.  The upcoming
// show count is computed at read time against the caller's clock.
type VenueSummary struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	UpcomingShows int    `json:"num_upcoming_shows"`
}

// CityVenues groups the venues of one city for the hierarchical browse page.
type CityVenues struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenueShow is a show as seen from a venue's detail page: the linked artist
// plus the start time.
type VenueShow struct {
	ArtistID        uint64    `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// VenueDetail is the full venue record with joined city/state names, genre
// names and the time-partitioned shows.
type VenueDetail struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	Genres             []string    `json:"genres"`
	Address            string      `json:"address"`
	City               string      `json:"city"`
	State              string      `json:"state"`
	Phone              string      `json:"phone"`
	Website            string      `json:"website"`
	FacebookLink       string      `json:"facebook_link"`
	ImageLink          string      `json:"image_link"`
	SeekingTalent      bool        `json:"seeking_talent"`
	SeekingDescription string      `json:"seeking_description"`
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// VenueRepo encapsulates all database queries related to venues.  It depends
// on a sql.DB connection injected at startup (and in tests).
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin transactions
// spanning multiple repositories.
func (r *VenueRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new venue.  The venue's state, city and genres are
// resolved through the get-or-create resolver inside the same transaction;
// nothing is durable until the final commit.  On success the generated ID is
// populated on the returned model.
func (r *VenueRepo) Create(ctx context.Context, in VenueUpsert) (*model.Venue, error) {
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

	v := &model.Venue{
		Name:               in.Name,
		Address:            in.Address,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
		CityID:             cityID,
	}
	const q = `INSERT INTO venues
	           (name, address, phone, image_link, facebook_link, website, seeking_talent, seeking_description, city_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		v.Name, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Website,
		v.SeekingTalent, v.SeekingDescription, v.CityID,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	v.ID = uint64(id)

	if err = replaceVenueGenres(ctx, tx, v.ID, in.Genres); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return v, nil
}

// Update rewrites an existing venue.  The target is loaded strictly by id
// (renaming a venue therefore mutates the original instead of creating a
// second record); only the dependent city, state and genres go through the
// get-or-create resolver.  The genre set is replaced wholesale with the
// resolved list.  Returns ErrVenueNotFound when the id does not exist.
func (r *VenueRepo) Update(ctx context.Context, id uint64, in VenueUpsert) (*model.Venue, error) {
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
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return nil, err
	}

	cityID, err := resolveCity(ctx, tx, in.City, in.State)
	if err != nil {
		return nil, err
	}

	const q = `UPDATE venues
	           SET name = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?, website = ?,
	               seeking_talent = ?, seeking_description = ?, city_id = ?
	           WHERE id = ?`
	if _, err = tx.ExecContext(ctx, q,
		in.Name, in.Address, in.Phone, in.ImageLink, in.FacebookLink, in.Website,
		in.SeekingTalent, in.SeekingDescription, cityID, id,
	); err != nil {
		return nil, err
	}

	if err = replaceVenueGenres(ctx, tx, id, in.Genres); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &model.Venue{
		ID:                 id,
		Name:               in.Name,
		Address:            in.Address,
		Phone:              in.Phone,
		ImageLink:          in.ImageLink,
		FacebookLink:       in.FacebookLink,
		Website:            in.Website,
		SeekingTalent:      in.SeekingTalent,
		SeekingDescription: in.SeekingDescription,
		CityID:             cityID,
	}, nil
}

// replaceVenueGenres replaces a venue's genre links with the resolved set.
// Full replacement, not a merge: links absent from names are removed.
func replaceVenueGenres(ctx context.Context, tx *sql.Tx, venueID uint64, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM venue_genres WHERE venue_id = ?`, venueID); err != nil {
		return err
	}
	ids, err := resolveGenres(ctx, tx, names)
	if err != nil {
		return err
	}
	for _, gid := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO venue_genres (venue_id, genre_id) VALUES (?, ?)`, venueID, gid); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns the full venue record: scalar fields, joined city and
// state names, genre names, and its shows partitioned into past and
// upcoming relative to now.  A show starting exactly at now belongs to
// neither set.  Returns ErrVenueNotFound when no row matches.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64, now time.Time) (*VenueDetail, error) {
	const q = `SELECT v.id, v.name, v.address, v.phone, v.image_link, v.facebook_link, v.website,
	                  v.seeking_talent, v.seeking_description, c.name, s.name
	           FROM venues v
	           JOIN cities c ON c.id = v.city_id
	           JOIN states s ON s.id = c.state_id
	           WHERE v.id = ?`
	d := &VenueDetail{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.Address, &d.Phone, &d.ImageLink, &d.FacebookLink, &d.Website,
		&d.SeekingTalent, &d.SeekingDescription, &d.City, &d.State,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	if d.Genres, err = venueGenreNames(ctx, r.db, id); err != nil {
		return nil, err
	}

	const qShows = `SELECT sh.artist_id, a.name, a.image_link, sh.start_time
	                FROM shows sh
	                JOIN artists a ON a.id = sh.artist_id
	                WHERE sh.venue_id = ?
	                ORDER BY sh.start_time ASC`
	rows, err := r.db.QueryContext(ctx, qShows, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	d.PastShows = []VenueShow{}
	d.UpcomingShows = []VenueShow{}
	for rows.Next() {
		var vs VenueShow
		if err := rows.Scan(&vs.ArtistID, &vs.ArtistName, &vs.ArtistImageLink, &vs.StartTime); err != nil {
			return nil, err
		}
		switch {
		case vs.StartTime.After(now):
			d.UpcomingShows = append(d.UpcomingShows, vs)
		case vs.StartTime.Before(now):
			d.PastShows = append(d.PastShows, vs)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d, nil
}

// venueGenreNames loads the genre names linked to a venue, sorted by name.
func venueGenreNames(ctx context.Context, db *sql.DB, venueID uint64) ([]string, error) {
	const q = `SELECT g.name
	           FROM genres g
	           JOIN venue_genres vg ON vg.genre_id = g.id
	           WHERE vg.venue_id = ?
	           ORDER BY g.name`
	rows, err := db.QueryContext(ctx, q, venueID)
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

// ListGrouped returns every venue grouped hierarchically by state and city
// for the browse page, each venue annotated with its upcoming show count.
// The result set is unbounded; the catalogue is expected to stay small.
func (r *VenueRepo) ListGrouped(ctx context.Context, now time.Time) ([]CityVenues, error) {
	const q = `SELECT c.id, c.name, s.name, v.id, v.name,
	                  (SELECT COUNT(*) FROM shows sh WHERE sh.venue_id = v.id AND sh.start_time > ?)
	           FROM venues v
	           JOIN cities c ON c.id = v.city_id
	           JOIN states s ON s.id = c.state_id
	           ORDER BY s.name, c.name, v.name`
	rows, err := r.db.QueryContext(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []CityVenues{}
	lastCity := uint64(0)
	for rows.Next() {
		var (
			cityID              uint64
			cityName, stateName string
			vs                  VenueSummary
		)
		if err := rows.Scan(&cityID, &cityName, &stateName, &vs.ID, &vs.Name, &vs.UpcomingShows); err != nil {
			return nil, err
		}
		if len(groups) == 0 || cityID != lastCity {
			groups = append(groups, CityVenues{City: cityName, State: stateName})
			lastCity = cityID
		}
		g := &groups[len(groups)-1]
		g.Venues = append(g.Venues, vs)
	}
	return groups, rows.Err()
}

// Search returns every venue whose name contains the trimmed term,
// case-insensitively.  An empty term matches all venues.
func (r *VenueRepo) Search(ctx context.Context, term string, now time.Time) ([]VenueSummary, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	const q = `SELECT v.id, v.name,
	                  (SELECT COUNT(*) FROM shows sh WHERE sh.venue_id = v.id AND sh.start_time > ?)
	           FROM venues v
	           WHERE LOWER(v.name) LIKE ?
	           ORDER BY v.name`
	rows, err := r.db.QueryContext(ctx, q, now, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VenueSummary{}
	for rows.Next() {
		var vs VenueSummary
		if err := rows.Scan(&vs.ID, &vs.Name, &vs.UpcomingShows); err != nil {
			return nil, err
		}
		out = append(out, vs)
	}
	return out, rows.Err()
}

// Options returns id/name pairs for all venues, for populating the show
// creation form.
func (r *VenueRepo) Options(ctx context.Context) ([]OptionRow, error) {
	return listOptions(ctx, r.db, `SELECT id, name FROM venues ORDER BY name`)
}

// Delete removes a venue together with its genre links and shows.  The
// cascade runs explicitly inside one transaction so no orphaned show rows
// can survive the venue.  Returns ErrVenueNotFound when the id does not
// exist; the store is left unchanged in that case.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
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
	err = tx.QueryRowContext(ctx, `SELECT id FROM venues WHERE id = ?`, id).Scan(&existing)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrVenueNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venue_genres WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
