package model

// Artist represents a performer who can be booked for shows. An artist
// owns zero or more shows via shows.artist_id.
type Artist struct {
	ID                 uint64   // artists.id
	Name               string   // artists.name
	City               string   // artists.city
	State              string   // artists.state
	Phone              string   // artists.phone
	Genres             []string // artists.genres (JSON array)
	ImageLink          string   // artists.image_link
	FacebookLink       string   // artists.facebook_link
	Website            string   // artists.website
	SeekingVenue       bool     // artists.seeking_venue
	SeekingDescription string   // artists.seeking_description
}
