package model

// Genre represents a musical genre.  Genres are shared between
// venues and artists through the venue_genres and artist_genres
// link tables and are unique by name across the whole catalogue.
// This struct corresponds to a row in the `genres` table.
//
// Fields:
//
//	ID   – primary key identifier.
//	Name – unique genre name (e.g. "Jazz").
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
}
