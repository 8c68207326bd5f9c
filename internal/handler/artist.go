// This file implements the artist endpoints: list, substring search,
// detail, create, edit and delete.  They mirror the venue endpoints.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stagelist/internal/repository"
)

// ArtistHandler aggregates the repositories needed by the artist endpoints.
type ArtistHandler struct {
	ArtistRepo *repository.ArtistRepo // artist queries and mutations
	GenreRepo  *repository.GenreRepo  // genre names for form population
	StateRepo  *repository.StateRepo  // state names for form population
}

// artistForm binds the artist create/edit input.
type artistForm struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Phone              string   `json:"phone" form:"phone"`
	Genres             []string `json:"genres" form:"genres"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingVenue       bool     `json:"seeking_venue" form:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

func (f *artistForm) validate() string {
	f.Name = strings.TrimSpace(f.Name)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	switch {
	case f.Name == "":
		return "name is required"
	case f.City == "":
		return "city is required"
	case f.State == "":
		return "state is required"
	}
	return ""
}

func (f *artistForm) upsert() repository.ArtistUpsert {
	return repository.ArtistUpsert{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// ListArtists handles GET /artists and returns every artist name.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	items, err := h.ArtistRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// SearchArtists handles POST /artists/search with the same substring
// semantics as the venue search.
func (h *ArtistHandler) SearchArtists(c echo.Context) error {
	term := c.FormValue("search_term")
	data, err := h.ArtistRepo.Search(c.Request().Context(), term, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(data),
		"data":        data,
		"search_term": term,
	})
}

// GetArtist handles GET /artists/:id and returns the full artist record
// with its past and upcoming shows.
func (h *ArtistHandler) GetArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.ArtistRepo.GetByID(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// NewArtistForm handles GET /artists/create and returns the selectable
// genre and state names for populating a blank artist form.
func (h *ArtistHandler) NewArtistForm(c echo.Context) error {
	ctx := c.Request().Context()
	genres, err := h.GenreRepo.ListNames(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	states, err := h.StateRepo.ListNames(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"genres": genres, "states": states})
}

// CreateArtist handles POST /artists/create.
func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var f artistForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := f.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a, err := h.ArtistRepo.Create(c.Request().Context(), f.upsert())
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "artist could not be listed: duplicate entry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "artist " + f.Name + " could not be listed"})
	}
	publishChange(c.Request().Context(), "artist", "created", a.ID, a.Name)
	return c.JSON(http.StatusCreated, a)
}

// EditArtistForm handles GET /artists/:id/edit and returns the current
// field values for prefilling the edit form.
func (h *ArtistHandler) EditArtistForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.ArtistRepo.GetByID(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                  d.ID,
		"name":                d.Name,
		"city":                d.City,
		"state":               d.State,
		"phone":               d.Phone,
		"genres":              d.Genres,
		"image_link":          d.ImageLink,
		"facebook_link":       d.FacebookLink,
		"website_link":        d.Website,
		"seeking_venue":       d.SeekingVenue,
		"seeking_description": d.SeekingDescription,
	})
}

// UpdateArtist handles POST /artists/:id/edit; the target artist is
// resolved strictly by id.
func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var f artistForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := f.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	a, err := h.ArtistRepo.Update(c.Request().Context(), id, f.upsert())
	if err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "artist " + f.Name + " could not be updated"})
	}
	publishChange(c.Request().Context(), "artist", "updated", a.ID, a.Name)
	return c.JSON(http.StatusOK, a)
}

// DeleteArtist handles DELETE /artists/:id.
func (h *ArtistHandler) DeleteArtist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.ArtistRepo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrArtistNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "artist could not be deleted"})
	}
	publishChange(c.Request().Context(), "artist", "deleted", id, "")
	return c.NoContent(http.StatusNoContent)
}
