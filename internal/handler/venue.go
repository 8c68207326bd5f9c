// This file implements the venue endpoints: hierarchical browse, substring
// search, detail, create, edit and delete.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"stagelist/internal/repository"
)

// VenueHandler aggregates the repositories needed by the venue endpoints.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo // venue queries and mutations
	GenreRepo *repository.GenreRepo // genre names for form population
	StateRepo *repository.StateRepo // state names for form population
}

// venueForm binds the venue create/edit input.  The same field names are
// accepted as form values and as JSON.
type venueForm struct {
	Name               string   `json:"name" form:"name"`
	City               string   `json:"city" form:"city"`
	State              string   `json:"state" form:"state"`
	Address            string   `json:"address" form:"address"`
	Phone              string   `json:"phone" form:"phone"`
	Genres             []string `json:"genres" form:"genres"`
	ImageLink          string   `json:"image_link" form:"image_link"`
	FacebookLink       string   `json:"facebook_link" form:"facebook_link"`
	WebsiteLink        string   `json:"website_link" form:"website_link"`
	SeekingTalent      bool     `json:"seeking_talent" form:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" form:"seeking_description"`
}

// validate trims the natural-key fields and reports the first missing
// required field.  Validation runs before any transaction is started.
func (f *venueForm) validate() string {
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

func (f *venueForm) upsert() repository.VenueUpsert {
	return repository.VenueUpsert{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
		Genres:             f.Genres,
	}
}

// ListVenues handles GET /venues and returns all venues grouped by state
// and city, each with its upcoming show count.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	groups, err := h.VenueRepo.ListGrouped(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": groups})
}

// SearchVenues handles POST /venues/search.  The search_term form value is
// matched case-insensitively as a substring of the venue name; an empty
// term matches every venue.
func (h *VenueHandler) SearchVenues(c echo.Context) error {
	term := c.FormValue("search_term")
	data, err := h.VenueRepo.Search(c.Request().Context(), term, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":       len(data),
		"data":        data,
		"search_term": term,
	})
}

// GetVenue handles GET /venues/:id and returns the full venue record with
// its past and upcoming shows.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.VenueRepo.GetByID(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}

// NewVenueForm handles GET /venues/create and returns the selectable genre
// and state names for populating a blank venue form.
func (h *VenueHandler) NewVenueForm(c echo.Context) error {
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

// CreateVenue handles POST /venues/create.  The venue's city, state and
// genres are created on first reference; everything is persisted in one
// transaction.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var f venueForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := f.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	v, err := h.VenueRepo.Create(c.Request().Context(), f.upsert())
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "venue could not be listed: duplicate entry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "venue " + f.Name + " could not be listed"})
	}
	publishChange(c.Request().Context(), "venue", "created", v.ID, v.Name)
	return c.JSON(http.StatusCreated, v)
}

// EditVenueForm handles GET /venues/:id/edit and returns the current field
// values for prefilling the edit form.
func (h *VenueHandler) EditVenueForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	d, err := h.VenueRepo.GetByID(c.Request().Context(), id, time.Now().UTC())
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":                  d.ID,
		"name":                d.Name,
		"city":                d.City,
		"state":               d.State,
		"address":             d.Address,
		"phone":               d.Phone,
		"genres":              d.Genres,
		"image_link":          d.ImageLink,
		"facebook_link":       d.FacebookLink,
		"website_link":        d.Website,
		"seeking_talent":      d.SeekingTalent,
		"seeking_description": d.SeekingDescription,
	})
}

// UpdateVenue handles POST /venues/:id/edit.  The target venue is resolved
// strictly by id; renaming it mutates the record in place.  The genre set
// is replaced with exactly the submitted list.
func (h *VenueHandler) UpdateVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var f venueForm
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := f.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	v, err := h.VenueRepo.Update(c.Request().Context(), id, f.upsert())
	if err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "venue " + f.Name + " could not be updated"})
	}
	publishChange(c.Request().Context(), "venue", "updated", v.ID, v.Name)
	return c.JSON(http.StatusOK, v)
}

// DeleteVenue handles DELETE /venues/:id.  The venue's genre links and
// shows are removed in the same transaction.  Returns 204 on success and
// 404 when the id does not exist, leaving the store unchanged.
func (h *VenueHandler) DeleteVenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.VenueRepo.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrVenueNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "venue could not be deleted"})
	}
	publishChange(c.Request().Context(), "venue", "deleted", id, "")
	return c.NoContent(http.StatusNoContent)
}
