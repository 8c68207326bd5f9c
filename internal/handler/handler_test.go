package handler

// These tests cover the request validation that runs before any repository
// or transaction is touched, so they need no database.

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateVenueRequiresNameCityState(t *testing.T) {
	h := &VenueHandler{}

	cases := []url.Values{
		{"city": {"San Francisco"}, "state": {"California"}},
		{"name": {"The Fillmore"}, "state": {"California"}},
		{"name": {"The Fillmore"}, "city": {"San Francisco"}},
		{"name": {"   "}, "city": {"San Francisco"}, "state": {"California"}},
	}
	for _, form := range cases {
		c, rec := postForm(t, "/venues/create", form)
		require.NoError(t, h.CreateVenue(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, form.Encode())
	}
}

func TestCreateArtistRequiresNameCityState(t *testing.T) {
	h := &ArtistHandler{}

	c, rec := postForm(t, "/artists/create", url.Values{"name": {""}, "city": {"Austin"}, "state": {"Texas"}})
	require.NoError(t, h.CreateArtist(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateShowValidation(t *testing.T) {
	h := &ShowHandler{}

	// Missing references.
	c, rec := postForm(t, "/shows/create", url.Values{"start_time": {"2026-09-01 20:00:00"}})
	require.NoError(t, h.CreateShow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing start time.
	c, rec = postForm(t, "/shows/create", url.Values{"artist_id": {"1"}, "venue_id": {"2"}})
	require.NoError(t, h.CreateShow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unparseable start time.
	c, rec = postForm(t, "/shows/create", url.Values{
		"artist_id": {"1"}, "venue_id": {"2"}, "start_time": {"next tuesday"},
	})
	require.NoError(t, h.CreateShow(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetVenueRejectsNonNumericID(t *testing.T) {
	h := &VenueHandler{}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/venues/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.GetVenue(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseStartTimeLayouts(t *testing.T) {
	for _, in := range []string{
		"2026-09-01T20:00:00Z",
		"2026-09-01 20:00:00",
		"2026-09-01T20:00",
	} {
		got, err := parseStartTime(in)
		require.NoError(t, err, in)
		require.Equal(t, time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC), got, in)
	}

	_, err := parseStartTime("09/01/2026")
	require.Error(t, err)
}
