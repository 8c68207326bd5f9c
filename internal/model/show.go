package model

import "time"

// Show represents a scheduled performance linking one artist to
// one venue at a start time.  Whether a show is "upcoming" or
// "past" is derived at read time from StartTime, never stored.
// This struct corresponds to a row in the `shows` table.
//
// Fields:
//
//	ID        – primary key identifier.
//	StartTime – when the show begins (stored as DATETIME, UTC).
//	ArtistID  – foreign key into the artists table.
//	VenueID   – foreign key into the venues table.
type Show struct {
	ID        uint64    // shows.id
	StartTime time.Time // shows.start_time
	ArtistID  uint64    // shows.artist_id
	VenueID   uint64    // shows.venue_id
}
