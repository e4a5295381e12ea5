package model

// Venue represents a location that can host shows. A venue owns zero or
// more shows via shows.venue_id; deleting a venue removes its shows first
// because the schema does not cascade.
//
// Fields:
//  ID                 – primary key identifier.
//  Name               – venue name, shown in listings and search results.
//  City, State        – location pair used for grouped listings.
//  Address            – street address.
//  Phone              – contact number.
//  Genres             – ordered list of genre labels (stored as JSON).
//  ImageLink          – URL of the venue image.
//  FacebookLink       – URL of the venue's Facebook page.
//  Website            – venue website URL.
//  SeekingTalent      – whether the venue is looking for artists to book.
//  SeekingDescription – free-form pitch shown when SeekingTalent is set.
type Venue struct {
	ID                 uint64   // venues.id
	Name               string   // venues.name
	City               string   // venues.city
	State              string   // venues.state
	Address            string   // venues.address
	Phone              string   // venues.phone
	Genres             []string // venues.genres (JSON array)
	ImageLink          string   // venues.image_link
	FacebookLink       string   // venues.facebook_link
	Website            string   // venues.website
	SeekingTalent      bool     // venues.seeking_talent
	SeekingDescription string   // venues.seeking_description
}
