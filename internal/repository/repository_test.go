package repository

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stagelist/internal/database"
)

// testDB opens the MySQL instance named by TEST_DATABASE_URL (a go-sql-driver
// DSN, e.g. "user:pass@tcp(localhost:3306)/stagelist_test"), runs the schema
// migration and empties every table.  Tests are skipped when the variable is
// unset so the suite can run without a database around.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?charset=utf8mb4&parseTime=true&loc=UTC"
	}
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.Migrate(ctx, db))

	// Child tables first so the foreign keys do not get in the way.
	for _, table := range []string{
		"venue_genres", "artist_genres", "shows",
		"venues", "artists", "cities", "genres", "states",
	} {
		_, err := db.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err)
	}
	return db
}

func TestGetOrCreateGenreIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	first, err := GetOrCreateGenre(ctx, tx, "Jazz")
	require.NoError(t, err)
	second, err := GetOrCreateGenre(ctx, tx, "Jazz")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.NoError(t, tx.Commit())

	// The row is durable only after the caller commits, and a later
	// transaction still resolves to the same record.
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	third, err := GetOrCreateGenre(ctx, tx, "Jazz")
	require.NoError(t, err)
	require.Equal(t, first.ID, third.ID)
	require.NoError(t, tx.Rollback())
}

func TestGetOrCreateResolverStagesUntilCommit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = GetOrCreateState(ctx, tx, "Nevada")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM states WHERE name = ?`, "Nevada").Scan(&n))
	require.Zero(t, n, "rolled back resolver insert must not persist")
}

func TestVenueCreateResolvesCityAndState(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	_, err := venues.Create(ctx, VenueUpsert{Name: "The Fillmore", City: "San Francisco", State: "California"})
	require.NoError(t, err)
	_, err = venues.Create(ctx, VenueUpsert{Name: "Great American Music Hall", City: "San Francisco", State: "California"})
	require.NoError(t, err)

	var cities, states int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cities`).Scan(&cities))
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM states`).Scan(&states))
	require.Equal(t, 1, cities, "same city must resolve to one row")
	require.Equal(t, 1, states, "same state must resolve to one row")
}

func TestVenueGenresAreReplacedNotMerged(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	v, err := venues.Create(ctx, VenueUpsert{
		Name: "The Fillmore", City: "San Francisco", State: "California",
		Genres: []string{"Rock", "Jazz"},
	})
	require.NoError(t, err)

	d, err := venues.GetByID(ctx, v.ID, now)
	require.NoError(t, err)
	require.Equal(t, []string{"Jazz", "Rock"}, d.Genres)

	_, err = venues.Update(ctx, v.ID, VenueUpsert{
		Name: "The Fillmore", City: "San Francisco", State: "California",
		Genres: []string{"Rock"},
	})
	require.NoError(t, err)

	d, err = venues.GetByID(ctx, v.ID, now)
	require.NoError(t, err)
	require.Equal(t, []string{"Rock"}, d.Genres, "genre set is a full replacement, not a union")
}

func TestVenueUpdateByIDRenamesInPlace(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, VenueUpsert{Name: "Old Name", City: "Austin", State: "Texas"})
	require.NoError(t, err)

	_, err = venues.Update(ctx, v.ID, VenueUpsert{Name: "New Name", City: "Austin", State: "Texas"})
	require.NoError(t, err)

	var total int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&total))
	require.Equal(t, 1, total, "renaming must mutate the original, not create a second record")

	d, err := venues.GetByID(ctx, v.ID, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, "New Name", d.Name)

	_, err = venues.Update(ctx, 424242, VenueUpsert{Name: "X", City: "Austin", State: "Texas"})
	require.ErrorIs(t, err, ErrVenueNotFound)
}

func TestShowTimePartitioning(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, VenueUpsert{Name: "The Fillmore", City: "San Francisco", State: "California"})
	require.NoError(t, err)
	a, err := artists.Create(ctx, ArtistUpsert{Name: "Guns N Petals", City: "San Francisco", State: "California"})
	require.NoError(t, err)

	// MySQL DATETIME has second precision; use a whole-second pivot.
	now := time.Now().UTC().Truncate(time.Second)
	_, err = shows.Create(ctx, a.ID, v.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	_, err = shows.Create(ctx, a.ID, v.ID, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = shows.Create(ctx, a.ID, v.ID, now)
	require.NoError(t, err)

	vd, err := venues.GetByID(ctx, v.ID, now)
	require.NoError(t, err)
	require.Equal(t, 1, vd.PastShowsCount)
	require.Equal(t, 1, vd.UpcomingShowsCount)

	ad, err := artists.GetByID(ctx, a.ID, now)
	require.NoError(t, err)
	require.Equal(t, 1, ad.PastShowsCount)
	require.Equal(t, 1, ad.UpcomingShowsCount, "a show starting exactly now belongs to neither set")
}

func TestVenueSearch(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := venues.Create(ctx, VenueUpsert{Name: "Jazz Club", City: "New York", State: "New York"})
	require.NoError(t, err)
	_, err = venues.Create(ctx, VenueUpsert{Name: "Blues Bar", City: "New York", State: "New York"})
	require.NoError(t, err)

	hits, err := venues.Search(ctx, "Jazz", now)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	require.Equal(t, "Jazz Club", hits[0].Name)

	// Case-folded substring, with surrounding whitespace trimmed.
	hits, err = venues.Search(ctx, "  jAzZ  ", now)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	// The empty term matches every venue.
	hits, err = venues.Search(ctx, "", now)
	require.NoError(t, err)
	require.Len(t, hits, 2)
}

func TestShowSearchMatchesEitherName(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, VenueUpsert{Name: "Jazz Club", City: "New York", State: "New York"})
	require.NoError(t, err)
	a, err := artists.Create(ctx, ArtistUpsert{Name: "The Wild Saxophones", City: "New York", State: "New York"})
	require.NoError(t, err)
	_, err = shows.Create(ctx, a.ID, v.ID, time.Now().UTC().Add(time.Hour).Truncate(time.Second))
	require.NoError(t, err)

	byVenue, err := shows.Search(ctx, "jazz")
	require.NoError(t, err)
	require.Len(t, byVenue, 1)

	byArtist, err := shows.Search(ctx, "saxo")
	require.NoError(t, err)
	require.Len(t, byArtist, 1)

	none, err := shows.Search(ctx, "polka")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeleteVenueMissingLeavesStoreUnchanged(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	_, err := venues.Create(ctx, VenueUpsert{Name: "Jazz Club", City: "New York", State: "New York"})
	require.NoError(t, err)

	err = venues.Delete(ctx, 999999)
	require.ErrorIs(t, err, ErrVenueNotFound)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestDeleteVenueRemovesShowsAndLinks(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()

	v, err := venues.Create(ctx, VenueUpsert{Name: "Jazz Club", City: "New York", State: "New York", Genres: []string{"Jazz"}})
	require.NoError(t, err)
	a, err := artists.Create(ctx, ArtistUpsert{Name: "Band", City: "New York", State: "New York"})
	require.NoError(t, err)
	_, err = shows.Create(ctx, a.ID, v.ID, time.Now().UTC().Add(time.Hour).Truncate(time.Second))
	require.NoError(t, err)

	require.NoError(t, venues.Delete(ctx, v.ID))

	for _, q := range []string{
		`SELECT COUNT(*) FROM venues`,
		`SELECT COUNT(*) FROM venue_genres`,
		`SELECT COUNT(*) FROM shows`,
	} {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, q).Scan(&n))
		require.Zero(t, n, q)
	}

	// The artist and the genre catalogue entry survive the venue.
	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n))
	require.Equal(t, 1, n)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestCreateShowMissingReferenceRollsBack(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	artists := NewArtistRepo(db)
	shows := NewShowRepo(db)
	ctx := context.Background()
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	v, err := venues.Create(ctx, VenueUpsert{Name: "Jazz Club", City: "New York", State: "New York"})
	require.NoError(t, err)
	a, err := artists.Create(ctx, ArtistUpsert{Name: "Band", City: "New York", State: "New York"})
	require.NoError(t, err)

	_, err = shows.Create(ctx, 999999, v.ID, start)
	require.ErrorIs(t, err, ErrArtistNotFound)
	_, err = shows.Create(ctx, a.ID, 999999, start)
	require.ErrorIs(t, err, ErrVenueNotFound)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows`).Scan(&n))
	require.Zero(t, n, "a failed show create must not leave a row behind")
}

func TestListGroupedOrdersByStateCityVenue(t *testing.T) {
	db := testDB(t)
	venues := NewVenueRepo(db)
	ctx := context.Background()

	for _, in := range []VenueUpsert{
		{Name: "The Fillmore", City: "San Francisco", State: "California"},
		{Name: "Bottom of the Hill", City: "San Francisco", State: "California"},
		{Name: "Jazz Club", City: "New York", State: "New York"},
	} {
		_, err := venues.Create(ctx, in)
		require.NoError(t, err)
	}

	groups, err := venues.ListGrouped(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "San Francisco", groups[0].City)
	require.Equal(t, "California", groups[0].State)
	require.Len(t, groups[0].Venues, 2)
	require.Equal(t, "Bottom of the Hill", groups[0].Venues[0].Name)
	require.Equal(t, "New York", groups[1].City)
}

func TestArtistLifecycle(t *testing.T) {
	db := testDB(t)
	artists := NewArtistRepo(db)
	ctx := context.Background()
	now := time.Now().UTC()

	a, err := artists.Create(ctx, ArtistUpsert{
		Name: "Guns N Petals", City: "San Francisco", State: "California",
		Genres: []string{"Rock"}, SeekingVenue: true, SeekingDescription: "Looking for gigs",
	})
	require.NoError(t, err)

	d, err := artists.GetByID(ctx, a.ID, now)
	require.NoError(t, err)
	require.Equal(t, "San Francisco", d.City)
	require.Equal(t, "California", d.State)
	require.Equal(t, []string{"Rock"}, d.Genres)
	require.True(t, d.SeekingVenue)

	require.NoError(t, artists.Delete(ctx, a.ID))
	_, err = artists.GetByID(ctx, a.ID, now)
	require.ErrorIs(t, err, ErrArtistNotFound)

	err = artists.Delete(ctx, a.ID)
	require.ErrorIs(t, err, ErrArtistNotFound)
}
