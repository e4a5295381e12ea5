// Package handler contains the HTTP handlers behind the directory pages.
// Handlers bind and validate form input, call the repositories, and map
// results onto rendered pages: reads return the page directly, mutations
// leave a flash message and redirect. Storage failures never surface
// details to the client; the user sees a generic message and prior state
// is untouched.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showbill/internal/model"
	"github.com/iliyamo/showbill/internal/queue"
	"github.com/iliyamo/showbill/internal/view"
)

// VenueStore is the persistence surface the venue pages need. It is
// implemented by repository.VenueRepo; tests substitute an in-memory fake.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListAll(ctx context.Context) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	DeleteWithShows(ctx context.Context, id uint64) error
}

// ArtistStore is the persistence surface the artist pages need.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	DeleteWithShows(ctx context.Context, id uint64) error
}

// ShowStore is the persistence surface the show pages need.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	GetByID(ctx context.Context, id uint64) (*model.Show, error)
	ListAll(ctx context.Context) ([]model.Show, error)
	ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error)
	ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error)
	Delete(ctx context.Context, id uint64) error
}

// PublishFunc sends a show event to the broker. Nil disables publishing.
type PublishFunc func(ctx context.Context, ev queue.ShowEvent) error

// Handler bundles the stores behind every page handler.
type Handler struct {
	Venues  VenueStore
	Artists ArtistStore
	Shows   ShowStore
	Publish PublishFunc
}

// New constructs a Handler over the given stores.
func New(venues VenueStore, artists ArtistStore, shows ShowStore, publish PublishFunc) *Handler {
	return &Handler{Venues: venues, Artists: artists, Shows: shows, Publish: publish}
}

// render executes a page template, injecting the pending flash message
// unless the caller already set one (validation errors re-render the form
// with an inline flash instead of a cookie round-trip).
func (h *Handler) render(c echo.Context, code int, name string, data echo.Map) error {
	if data == nil {
		data = echo.Map{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = view.TakeFlash(c)
	}
	return c.Render(code, name, data)
}

func (h *Handler) notFound(c echo.Context) error {
	return h.render(c, http.StatusNotFound, "error404.html", nil)
}

func (h *Handler) serverError(c echo.Context) error {
	return h.render(c, http.StatusInternalServerError, "error500.html", nil)
}

// Home handles GET / and renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, "home.html", nil)
}

// Health handles GET /healthz for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
