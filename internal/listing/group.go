// Package listing computes the read-side aggregations behind the directory
// pages: venues grouped by location, a venue's or artist's shows split into
// past and upcoming, and the denormalized global show board. Everything
// operates on rows already fetched by the repositories so the logic stays
// independent of the database.
package listing

import "github.com/iliyamo/showbill/internal/model"

// Area is one distinct (city, state) location with the venues found there.
type Area struct {
	City   string
	State  string
	Venues []model.Venue
}

// GroupVenuesByLocation partitions venues into areas keyed by the
// (city, state) pair. Areas appear in the order their location is first
// seen in the input, and venues keep their input order within an area, so
// every venue lands in exactly one area.
func GroupVenuesByLocation(venues []model.Venue) []Area {
	index := make(map[string]int, len(venues))
	var areas []Area
	for _, v := range venues {
		key := v.City + "\x00" + v.State
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State})
		}
		areas[i].Venues = append(areas[i].Venues, v)
	}
	return areas
}
