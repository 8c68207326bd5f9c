package model

// City represents a city within a state.  Venues and artists
// belong to exactly one city.  Cities are created lazily during
// venue/artist mutations and are unique per (name, state) pair.
// This struct corresponds to a row in the `cities` table.
//
// Fields:
//
//	ID      – primary key identifier.
//	Name    – city name, unique within its state.
//	StateID – foreign key into the states table.
type City struct {
	ID      uint64 // cities.id
	Name    string // cities.name
	StateID uint64 // cities.state_id
}
