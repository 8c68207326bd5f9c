// This file implements the show endpoints: list, create and search by the
// linked artist or venue name.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stagelist/internal/repository"
)

// ShowHandler aggregates the repositories needed by the show endpoints.
type ShowHandler struct {
	ShowRepo   *repository.ShowRepo
	ArtistRepo *repository.ArtistRepo // artist options for the creation form
	VenueRepo  *repository.VenueRepo  // venue options for the creation form
}

// showForm binds the show creation input.  Both references are opaque ids;
// a show never creates its artist or venue on the fly.
type showForm struct {
	ArtistID  uint64 `json:"artist_id" form:"artist_id"`
	VenueID   uint64 `json:"venue_id" form:"venue_id"`
	StartTime string `json:"start_time" form:"start_time"`
}

// ListShows handles GET /shows and returns every show with the linked
// artist and venue names, ordered by start time.
func (h *ShowHandler) ListShows(c echo.Context) error {
	items, err := h.ShowRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// NewShowForm handles GET /shows/create and returns the selectable artists
// and venues for the creation form.
func (h *ShowHandler) NewShowForm(c echo.Context) error {
	ctx := c.Request().Context()
	artists, err := h.ArtistRepo.Options(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	venues, err := h.VenueRepo.Options(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists, "venues": venues})
}

// CreateShow handles POST /shows/create.  Both the artist and the venue
// must already exist by id; a missing reference fails the request and the
// transaction is rolled back, so no show row is left behind.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var f showForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if f.ArtistID == 0 || f.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id and venue_id are required"})
	}
	if strings.TrimSpace(f.StartTime) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time is required"})
	}
	start, err := parseStartTime(f.StartTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
	}
	s, err := h.ShowRepo.Create(c.Request().Context(), f.ArtistID, f.VenueID, start)
	if err != nil {
		switch err {
		case repository.ErrArtistNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist not found"})
		case repository.ErrVenueNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "show could not be added"})
		}
	}
	publishChange(c.Request().Context(), "show", "created", s.ID, "")
	return c.JSON(http.StatusCreated, echo.Map{
		"id":         s.ID,
		"artist_id":  s.ArtistID,
		"venue_id":   s.VenueID,
		"start_time": s.StartTime.Format(time.RFC3339),
	})
}

// SearchShows handles POST /shows/search.  The term is matched against the
// linked artist's or venue's name.
func (h *ShowHandler) SearchShows(c echo.Context) error {
	term := c.FormValue("search_term")
	data, err := h.ShowRepo.Search(c.Request().Context(), term)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(data),
		"data":        data,
		"search_term": term,
	})
}
