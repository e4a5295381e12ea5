// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the show.audit queue.
const (
	KindListed    = "listed"
	KindCancelled = "cancelled"
)

// ShowEvent is published when a show is booked or cancelled. It carries
// enough denormalized information for downstream consumers to log or
// notify without querying the primary database.
type ShowEvent struct {
	Kind       string `json:"kind"`
	ShowID     uint64 `json:"show_id"`
	VenueID    uint64 `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	ArtistID   uint64 `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	StartTime  string `json:"start_time"`
	OccurredAt string `json:"occurred_at"`
}
