package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showbill/internal/listing"
	"github.com/iliyamo/showbill/internal/model"
	"github.com/iliyamo/showbill/internal/queue"
	"github.com/iliyamo/showbill/internal/repository"
	"github.com/iliyamo/showbill/internal/view"
)

// ListShows handles GET /shows. Artist and venue tables are materialized
// into id-keyed maps once, then each show row joins against them in
// memory: one scan per table instead of two lookups per show.
func (h *Handler) ListShows(c echo.Context) error {
	ctx := c.Request().Context()

	shows, err := h.Shows.ListAll(ctx)
	if err != nil {
		return h.serverError(c)
	}
	artists, err := h.Artists.ListAll(ctx)
	if err != nil {
		return h.serverError(c)
	}
	venues, err := h.Venues.ListAll(ctx)
	if err != nil {
		return h.serverError(c)
	}
	rows, err := listing.DenormalizeShows(shows, listing.IndexArtists(artists), listing.IndexVenues(venues))
	if err != nil {
		return h.notFound(c)
	}
	return h.render(c, http.StatusOK, "shows.html", echo.Map{"Shows": rows})
}

// NewShowForm handles GET /shows/create.
func (h *Handler) NewShowForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "new_show.html", nil)
}

// CreateShow handles POST /shows/create. The ids are not validated up
// front; the insert fails on the foreign-key constraint if either side
// does not exist, and the user sees a generic failure.
func (h *Handler) CreateShow(c echo.Context) error {
	ctx := c.Request().Context()

	artistID, aErr := parseID64(c.FormValue("artist_id"))
	venueID, vErr := parseID64(c.FormValue("venue_id"))
	startTime, tErr := parseStartTime(c.FormValue("start_time"))
	if aErr != nil || vErr != nil || tErr != nil {
		return h.render(c, http.StatusBadRequest, "new_show.html", echo.Map{
			"Flash": "Please provide a valid artist ID, venue ID and start time.",
		})
	}

	show := &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: startTime}
	if err := h.Shows.Create(ctx, show); err != nil {
		view.Flash(c, "An error occurred. Show could not be listed.")
		return c.Redirect(http.StatusFound, "/")
	}
	h.publishShowEvent(c, queue.KindListed, show)
	view.Flash(c, "Show was successfully listed!")
	return c.Redirect(http.StatusFound, "/")
}

// DeleteShow handles POST /shows/delete/:id. Shows are never edited; a
// reschedule is this delete followed by a new booking.
func (h *Handler) DeleteShow(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.notFound(c)
	}
	ctx := c.Request().Context()

	show, err := h.Shows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return h.notFound(c)
		}
		return h.serverError(c)
	}
	if err := h.Shows.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return h.notFound(c)
		}
		view.Flash(c, "An error occurred. Show could not be deleted.")
		return c.Redirect(http.StatusFound, "/shows")
	}
	h.publishShowEvent(c, queue.KindCancelled, show)
	view.Flash(c, "Show was successfully deleted!")
	return c.Redirect(http.StatusFound, "/shows")
}

// publishShowEvent sends a show event to the broker, enriched with venue
// and artist names when they can still be resolved. Broker or lookup
// failures are logged and ignored; the mutation already committed.
func (h *Handler) publishShowEvent(c echo.Context, kind string, show *model.Show) {
	if h.Publish == nil {
		return
	}
	ctx := c.Request().Context()
	ev := queue.ShowEvent{
		Kind:       kind,
		ShowID:     show.ID,
		VenueID:    show.VenueID,
		ArtistID:   show.ArtistID,
		StartTime:  show.StartTime.UTC().Format(time.RFC3339),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if v, err := h.Venues.GetByID(ctx, show.VenueID); err == nil {
		ev.VenueName = v.Name
	}
	if a, err := h.Artists.GetByID(ctx, show.ArtistID); err == nil {
		ev.ArtistName = a.Name
	}
	if err := h.Publish(ctx, ev); err != nil {
		log.Printf("show event publish failed: %v", err)
	}
}
