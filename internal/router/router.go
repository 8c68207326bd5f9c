package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"stagelist/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers the health check on the provided Echo instance.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterVenues registers the venue endpoints: hierarchical browse,
// substring search, detail, create, edit and delete.  The literal
// "/venues/create" routes are registered before the parameterized
// "/venues/:id" ones; Echo matches static segments first either way.
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler) {
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue)
	e.GET("/venues/:id", h.GetVenue)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue)
	e.DELETE("/venues/:id", h.DeleteVenue)
}

// RegisterArtists registers the artist endpoints, mirroring the venue ones.
func RegisterArtists(e *echo.Echo, h *handler.ArtistHandler) {
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist)
	e.GET("/artists/:id", h.GetArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist)
	e.DELETE("/artists/:id", h.DeleteArtist)
}

// RegisterShows registers the show endpoints: list, creation form, create
// and search by the linked artist or venue name.
func RegisterShows(e *echo.Echo, h *handler.ShowHandler) {
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow)
	e.POST("/shows/search", h.SearchShows)
}
