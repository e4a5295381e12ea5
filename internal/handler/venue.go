package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showbill/internal/listing"
	"github.com/iliyamo/showbill/internal/model"
	"github.com/iliyamo/showbill/internal/repository"
	"github.com/iliyamo/showbill/internal/view"
)

// ListVenues handles GET /venues and renders venues grouped by location.
func (h *Handler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.ListAll(c.Request().Context())
	if err != nil {
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "venues.html", echo.Map{
		"Areas": listing.GroupVenuesByLocation(venues),
	})
}

// SearchVenues handles POST /venues/search. Matching is case-insensitive
// substring containment; an empty term matches every venue.
func (h *Handler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Venues.SearchByName(c.Request().Context(), term)
	if err != nil {
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "search_venues.html", echo.Map{
		"SearchTerm": term,
		"Count":      len(results),
		"Results":    results,
	})
}

// ShowVenue handles GET /venues/:id and renders the venue detail page with
// its shows split into past and upcoming.
func (h *Handler) ShowVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	ctx := c.Request().Context()

	venue, err := h.Venues.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return h.notFound(c)
		}
		return h.serverError(c)
	}
	shows, err := h.Shows.ListByVenue(ctx, id)
	if err != nil {
		return h.serverError(c)
	}
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return h.serverError(c)
	}
	past, upcoming, err := listing.SplitShowsByTime(shows, listing.ArtistCounterparts(artists), listing.FromVenue, time.Now())
	if err != nil {
		// A dangling artist reference is treated as a missing record.
		return h.notFound(c)
	}
	return h.render(c, http.StatusOK, "show_venue.html", echo.Map{
		"Venue":         venue,
		"PastShows":     past,
		"UpcomingShows": upcoming,
		"PastCount":     len(past),
		"UpcomingCount": len(upcoming),
	})
}

// NewVenueForm handles GET /venues/create. The seeking-talent box starts
// checked so the effective default for new venues stays true.
func (h *Handler) NewVenueForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_venue.html", echo.Map{
		"Venue": &model.Venue{SeekingTalent: true},
	})
}

// venueFromForm builds a venue from the submitted form fields.
func venueFromForm(c echo.Context) *model.Venue {
	return &model.Venue{
		Name:               strings.TrimSpace(c.FormValue("name")),
		City:               strings.TrimSpace(c.FormValue("city")),
		State:              strings.TrimSpace(c.FormValue("state")),
		Address:            strings.TrimSpace(c.FormValue("address")),
		Phone:              strings.TrimSpace(c.FormValue("phone")),
		Genres:             genreValues(c),
		ImageLink:          strings.TrimSpace(c.FormValue("image_link")),
		FacebookLink:       strings.TrimSpace(c.FormValue("facebook_link")),
		Website:            strings.TrimSpace(c.FormValue("website")),
		SeekingTalent:      parseFlag(c, "seeking_talent"),
		SeekingDescription: strings.TrimSpace(c.FormValue("seeking_description")),
	}
}

// CreateVenue handles POST /venues/create.
func (h *Handler) CreateVenue(c echo.Context) error {
	venue := venueFromForm(c)
	if missing := missingRequired(c, "name", "city", "state", "address"); len(missing) > 0 {
		return h.render(c, http.StatusBadRequest, "new_venue.html", echo.Map{
			"Venue": venue,
			"Flash": "Please fill in: " + strings.Join(missing, ", "),
		})
	}
	if err := h.Venues.Create(c.Request().Context(), venue); err != nil {
		view.Flash(c, fmt.Sprintf("An error occurred. Venue %s could not be listed.", venue.Name))
		return c.Redirect(http.StatusFound, "/")
	}
	view.Flash(c, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
	return c.Redirect(http.StatusFound, "/")
}

// DeleteVenue handles POST /venues/:id. The venue's shows go first, then
// the venue, all in one transaction.
func (h *Handler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	if err := h.Venues.DeleteWithShows(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return h.notFound(c)
		}
		view.Flash(c, "An error occurred. Venue could not be deleted.")
		return c.Redirect(http.StatusFound, "/venues")
	}
	view.Flash(c, "Venue was successfully deleted!")
	return c.Redirect(http.StatusFound, "/venues")
}

// EditVenueForm handles GET /venues/:id/edit.
func (h *Handler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	venue, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return h.notFound(c)
		}
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "edit_venue.html", echo.Map{"Venue": venue})
}

// UpdateVenue handles POST /venues/:id/edit. Every editable field is
// replaced with the submitted value.
func (h *Handler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	venue := venueFromForm(c)
	venue.ID = id
	if missing := missingRequired(c, "name", "city", "state", "address"); len(missing) > 0 {
		return h.render(c, http.StatusBadRequest, "edit_venue.html", echo.Map{
			"Venue": venue,
			"Flash": "Please fill in: " + strings.Join(missing, ", "),
		})
	}
	if err := h.Venues.Update(c.Request().Context(), venue); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return h.notFound(c)
		}
		view.Flash(c, "An error occurred. Venue could not be changed.")
		return c.Redirect(http.StatusFound, fmt.Sprintf("/venues/%d", id))
	}
	view.Flash(c, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	return c.Redirect(http.StatusFound, fmt.Sprintf("/venues/%d", id))
}
