package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"stagelist/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{
		"Content-Type": {"application/json"},
		"X-Custom":     {"a", "b"},
	}
	body := []byte(`{"items":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, hdr, gotHdr)
	require.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, []byte("not a payload")} {
		_, _, _, ok := decodePayload(bs)
		require.False(t, ok)
	}
}

func TestCacheKeyDependsOnStrategy(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/venues")
		return c
	}

	a := cacheKeyFrom(cfg, ctxFor("/venues?page=1"))
	b := cacheKeyFrom(cfg, ctxFor("/venues?page=1"))
	cKey := cacheKeyFrom(cfg, ctxFor("/venues?page=2"))
	require.Equal(t, a, b, "same request must hash to the same key")
	require.NotEqual(t, a, cKey, "query must contribute under route_query")

	cfg.KeyStrategy = "route"
	d := cacheKeyFrom(cfg, ctxFor("/venues?page=1"))
	f := cacheKeyFrom(cfg, ctxFor("/venues?page=2"))
	require.Equal(t, d, f, "query must not contribute under route")
}

func TestDisabledCacheIsPassthrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/venues", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)
	require.NoError(t, err)
	require.True(t, called)
	require.Empty(t, rec.Header().Get("X-Cache"))
}
