package model

import "time"

// Show is a scheduled booking linking one venue and one artist at a start
// time. It is a pure association record: both foreign keys are required
// and enforced by the database. Shows are never edited; a reschedule is a
// delete followed by a new booking.
type Show struct {
	ID        uint64    // shows.id
	VenueID   uint64    // shows.venue_id (FK venues.id)
	ArtistID  uint64    // shows.artist_id (FK artists.id)
	StartTime time.Time // shows.start_time
}
