package model

// Venue represents a performance venue that artists can play at.
// A venue belongs to one city, carries any number of genres via
// the venue_genres link table and has many shows.  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//
//	ID                 – primary key identifier.
//	Name               – venue name (required).
//	Address            – street address (optional).
//	Phone              – contact phone number (optional).
//	ImageLink          – URL of a venue image (optional).
//	FacebookLink       – URL of the venue's Facebook page (optional).
//	Website            – URL of the venue's own website (optional).
//	SeekingTalent      – whether the venue is looking for artists to book.
//	SeekingDescription – free text shown when SeekingTalent is set.
//	CityID             – foreign key into the cities table.
type Venue struct {
	ID                 uint64 // venues.id
	Name               string // venues.name
	Address            string // venues.address
	Phone              string // venues.phone
	ImageLink          string // venues.image_link
	FacebookLink       string // venues.facebook_link
	Website            string // venues.website
	SeekingTalent      bool   // venues.seeking_talent
	SeekingDescription string // venues.seeking_description
	CityID             uint64 // venues.city_id
}
