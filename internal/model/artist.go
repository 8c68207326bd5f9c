package model

// Artist represents a performing artist or band.  An artist is
// based in one city, carries any number of genres via the
// artist_genres link table and has many shows.  This struct
// corresponds to a row in the `artists` table.
//
// Fields:
//
//	ID                 – primary key identifier.
//	Name               – artist name (required).
//	Phone              – contact phone number (optional).
//	ImageLink          – URL of an artist image (optional).
//	FacebookLink       – URL of the artist's Facebook page (optional).
//	Website            – URL of the artist's own website (optional).
//	SeekingVenue       – whether the artist is looking for venues to play.
//	SeekingDescription – free text shown when SeekingVenue is set.
//	CityID             – foreign key into the cities table.
type Artist struct {
	ID                 uint64 // artists.id
	Name               string // artists.name
	Phone              string // artists.phone
	ImageLink          string // artists.image_link
	FacebookLink       string // artists.facebook_link
	Website            string // artists.website
	SeekingVenue       bool   // artists.seeking_venue
	SeekingDescription string // artists.seeking_description
	CityID             uint64 // artists.city_id
}
