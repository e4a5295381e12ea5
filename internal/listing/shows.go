package listing

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/showbill/internal/model"
)

// ErrCounterpartMissing is returned when a show references a venue or
// artist id absent from the preloaded lookup maps. The schema's foreign
// keys make this unreachable in normal operation, but the aggregation
// checks anyway instead of trusting the reference.
var ErrCounterpartMissing = errors.New("show counterpart not found")

// Perspective selects which side of a show is the counterpart: a venue
// page lists the booked artists, an artist page lists the hosting venues.
type Perspective int

const (
	FromVenue  Perspective = iota // counterpart is the artist
	FromArtist                    // counterpart is the venue
)

// Counterpart is the denormalized info shown for the entity on the other
// side of a show.
type Counterpart struct {
	ID        uint64
	Name      string
	ImageLink string
}

// ShowRow is one line on a venue or artist detail page.
type ShowRow struct {
	CounterpartID    uint64
	CounterpartName  string
	CounterpartImage string
	StartTime        time.Time
}

// SplitShowsByTime partitions shows into past (start before now) and
// upcoming (start at or after now), resolving each show's counterpart from
// the preloaded map. Rows keep the retrieval order of the input within
// each partition. A show whose counterpart is missing from the map yields
// ErrCounterpartMissing.
func SplitShowsByTime(shows []model.Show, counterparts map[uint64]Counterpart, p Perspective, now time.Time) (past, upcoming []ShowRow, err error) {
	for _, s := range shows {
		id := s.ArtistID
		if p == FromArtist {
			id = s.VenueID
		}
		cp, ok := counterparts[id]
		if !ok {
			return nil, nil, fmt.Errorf("show %d: %w (id %d)", s.ID, ErrCounterpartMissing, id)
		}
		row := ShowRow{
			CounterpartID:    cp.ID,
			CounterpartName:  cp.Name,
			CounterpartImage: cp.ImageLink,
			StartTime:        s.StartTime,
		}
		if s.StartTime.Before(now) {
			past = append(past, row)
		} else {
			upcoming = append(upcoming, row)
		}
	}
	return past, upcoming, nil
}

// BoardRow is one line on the global shows page, combining the show with
// its venue and artist names.
type BoardRow struct {
	ShowID      uint64
	VenueID     uint64
	VenueName   string
	ArtistID    uint64
	ArtistName  string
	ArtistImage string
	StartTime   time.Time
}

// DenormalizeShows builds the global show board from preloaded id maps.
// Materializing both tables once keeps this at one scan per table instead
// of two lookups per show. A dangling venue or artist reference yields
// ErrCounterpartMissing.
func DenormalizeShows(shows []model.Show, artists map[uint64]model.Artist, venues map[uint64]model.Venue) ([]BoardRow, error) {
	rows := make([]BoardRow, 0, len(shows))
	for _, s := range shows {
		v, ok := venues[s.VenueID]
		if !ok {
			return nil, fmt.Errorf("show %d: %w (venue %d)", s.ID, ErrCounterpartMissing, s.VenueID)
		}
		a, ok := artists[s.ArtistID]
		if !ok {
			return nil, fmt.Errorf("show %d: %w (artist %d)", s.ID, ErrCounterpartMissing, s.ArtistID)
		}
		rows = append(rows, BoardRow{
			ShowID:      s.ID,
			VenueID:     v.ID,
			VenueName:   v.Name,
			ArtistID:    a.ID,
			ArtistName:  a.Name,
			ArtistImage: a.ImageLink,
			StartTime:   s.StartTime,
		})
	}
	return rows, nil
}

// IndexArtists materializes artists into an id-keyed map.
func IndexArtists(artists []model.Artist) map[uint64]model.Artist {
	m := make(map[uint64]model.Artist, len(artists))
	for _, a := range artists {
		m[a.ID] = a
	}
	return m
}

// IndexVenues materializes venues into an id-keyed map.
func IndexVenues(venues []model.Venue) map[uint64]model.Venue {
	m := make(map[uint64]model.Venue, len(venues))
	for _, v := range venues {
		m[v.ID] = v
	}
	return m
}

// ArtistCounterparts projects artists into counterpart rows for venue pages.
func ArtistCounterparts(artists []model.Artist) map[uint64]Counterpart {
	m := make(map[uint64]Counterpart, len(artists))
	for _, a := range artists {
		m[a.ID] = Counterpart{ID: a.ID, Name: a.Name, ImageLink: a.ImageLink}
	}
	return m
}

// VenueCounterparts projects venues into counterpart rows for artist pages.
func VenueCounterparts(venues []model.Venue) map[uint64]Counterpart {
	m := make(map[uint64]Counterpart, len(venues))
	for _, v := range venues {
		m[v.ID] = Counterpart{ID: v.ID, Name: v.Name, ImageLink: v.ImageLink}
	}
	return m
}
