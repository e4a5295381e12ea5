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

// ListArtists handles GET /artists and renders the flat artist listing.
func (h *Handler) ListArtists(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "artists.html", echo.Map{"Artists": artists})
}

// SearchArtists handles POST /artists/search.
func (h *Handler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	results, err := h.Artists.SearchByName(c.Request().Context(), term)
	if err != nil {
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "search_artists.html", echo.Map{
		"SearchTerm": term,
		"Count":      len(results),
		"Results":    results,
	})
}

// ShowArtist handles GET /artists/:id and renders the artist detail page
// with its shows split into past and upcoming.
func (h *Handler) ShowArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	ctx := c.Request().Context()

	artist, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return h.notFound(c)
		}
		return h.serverError(c)
	}
	shows, err := h.Shows.ListByArtist(ctx, id)
	if err != nil {
		return h.serverError(c)
	}
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return h.serverError(c)
	}
	past, upcoming, err := listing.SplitShowsByTime(shows, listing.VenueCounterparts(venues), listing.FromArtist, time.Now())
	if err != nil {
		return h.notFound(c)
	}
	return h.render(c, http.StatusOK, "show_artist.html", echo.Map{
		"Artist":        artist,
		"PastShows":     past,
		"UpcomingShows": upcoming,
		"PastCount":     len(past),
		"UpcomingCount": len(upcoming),
	})
}

// NewArtistForm handles GET /artists/create.
func (h *Handler) NewArtistForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_artist.html", echo.Map{
		"Artist": &model.Artist{},
	})
}

// artistFromForm builds an artist from the submitted form fields.
func artistFromForm(c echo.Context) *model.Artist {
	return &model.Artist{
		Name:               strings.TrimSpace(c.FormValue("name")),
		City:               strings.TrimSpace(c.FormValue("city")),
		State:              strings.TrimSpace(c.FormValue("state")),
		Phone:              strings.TrimSpace(c.FormValue("phone")),
		Genres:             genreValues(c),
		ImageLink:          strings.TrimSpace(c.FormValue("image_link")),
		FacebookLink:       strings.TrimSpace(c.FormValue("facebook_link")),
		Website:            strings.TrimSpace(c.FormValue("website")),
		SeekingVenue:       parseFlag(c, "seeking_venue"),
		SeekingDescription: strings.TrimSpace(c.FormValue("seeking_description")),
	}
}

// CreateArtist handles POST /artists/create.
func (h *Handler) CreateArtist(c echo.Context) error {
	artist := artistFromForm(c)
	if missing := missingRequired(c, "name", "city", "state"); len(missing) > 0 {
		return h.render(c, http.StatusBadRequest, "new_artist.html", echo.Map{
			"Artist": artist,
			"Flash":  "Please fill in: " + strings.Join(missing, ", "),
		})
	}
	if err := h.Artists.Create(c.Request().Context(), artist); err != nil {
		view.Flash(c, fmt.Sprintf("An error occurred. Artist %s could not be listed.", artist.Name))
		return c.Redirect(http.StatusFound, "/")
	}
	view.Flash(c, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
	return c.Redirect(http.StatusFound, "/")
}

// DeleteArtist handles POST /artists/:id, removing the artist and its
// shows in one transaction, mirroring the venue delete.
func (h *Handler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	if err := h.Artists.DeleteWithShows(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return h.notFound(c)
		}
		view.Flash(c, "An error occurred. Artist could not be deleted.")
		return c.Redirect(http.StatusFound, "/artists")
	}
	view.Flash(c, "Artist was successfully deleted!")
	return c.Redirect(http.StatusFound, "/artists")
}

// EditArtistForm handles GET /artists/:id/edit.
func (h *Handler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	artist, err := h.Artists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return h.notFound(c)
		}
		return h.serverError(c)
	}
	return h.render(c, http.StatusOK, "edit_artist.html", echo.Map{"Artist": artist})
}

// UpdateArtist handles POST /artists/:id/edit.
func (h *Handler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	artist := artistFromForm(c)
	artist.ID = id
	if missing := missingRequired(c, "name", "city", "state"); len(missing) > 0 {
		return h.render(c, http.StatusBadRequest, "edit_artist.html", echo.Map{
			"Artist": artist,
			"Flash":  "Please fill in: " + strings.Join(missing, ", "),
		})
	}
	if err := h.Artists.Update(c.Request().Context(), artist); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return h.notFound(c)
		}
		view.Flash(c, "An error occurred. Artist could not be changed.")
		return c.Redirect(http.StatusFound, fmt.Sprintf("/artists/%d", id))
	}
	view.Flash(c, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	return c.Redirect(http.StatusFound, fmt.Sprintf("/artists/%d", id))
}
