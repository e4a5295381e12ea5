// Package router defines how HTTP routes are registered for the directory.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/showbill/internal/handler"
)

// RegisterRoutes maps every page route onto the handler set. The cache
// middleware wraps the read-heavy listing pages and the limit middleware
// wraps the mutating form endpoints; either may be a pass-through when
// Redis is unavailable.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, cache, limit echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.GET("/", h.Home)

	// Venues
	e.GET("/venues", h.ListVenues, cache)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue, limit)
	e.GET("/venues/:id", h.ShowVenue)
	e.POST("/venues/:id", h.DeleteVenue, limit)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue, limit)

	// Artists
	e.GET("/artists", h.ListArtists, cache)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist, limit)
	e.GET("/artists/:id", h.ShowArtist)
	e.POST("/artists/:id", h.DeleteArtist, limit)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist, limit)

	// Shows
	e.GET("/shows", h.ListShows, cache)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow, limit)
	e.POST("/shows/delete/:id", h.DeleteShow, limit)
}
