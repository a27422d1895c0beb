package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/session"
	"github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

func newRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func whoAmI(c echo.Context) error {
	if _, ok := UserID(c); ok {
		return c.String(http.StatusOK, "user")
	}
	return c.String(http.StatusOK, "anon")
}

func TestLoadSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sid, err := store.Create(context.Background(), 42)
	require.NoError(t, err)
	good, err := utils.NewSessionToken("secret", sid, time.Hour)
	require.NoError(t, err)
	forged, err := utils.NewSessionToken("other", sid, time.Hour)
	require.NoError(t, err)
	orphan, err := utils.NewSessionToken("secret", "no-such-session", time.Hour)
	require.NoError(t, err)

	e := echo.New()
	e.Use(LoadSession("secret", store, logger.Discard()))
	e.GET("/", whoAmI)

	cases := []struct {
		name, cookie, body string
		cleared          bool
	}{
		{"no cookie", "", "anon", false},
		{"valid", good.Token, "user", false},
		{"forged", forged.Token, "anon", true},
		{"unknown session", orphan.Token, "anon", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
			assert.Equal(t, tc.cleared, rec.Header().Get("Set-Cookie") != "")
		})
	}
}

func TestLoadSessionSetsIDs(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	sid, err := store.Create(context.Background(), 7)
	require.NoError(t, err)
	tok, err := utils.NewSessionToken("secret", sid, time.Hour)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := LoadSession("secret", store, logger.Discard())(func(c echo.Context) error { return nil })
	require.NoError(t, h(c))

	uid, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), uid)
	got, ok := SessionID(c)
	assert.True(t, ok)
	assert.Equal(t, sid, got)
	assert.Equal(t, "7", userKey(c))
}

func TestTokenBucket(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Minute,
		TTL:            10 * time.Minute,
		KeyStrategy:    "ip_route",
		Prefix:         "rl",
	}
	e := echo.New()
	e.POST("/users/login", func(c echo.Context) error { return c.String(http.StatusOK, "ok") },
		NewTokenBucket(cfg, rdb, logger.Discard()))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if i == 2 {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenBucketDisabledWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute}
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, NewTokenBucket(cfg, nil, logger.Discard()))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestFileCache(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.FileCacheConfig{Enabled: true, TTL: time.Minute, Prefix: "poster", MaxBodyBytes: 1024}

	calls := 0
	e := echo.New()
	e.GET("/files/:id", func(c echo.Context) error {
		calls++
		if c.Param("id") == "2" {
			return c.String(http.StatusNotFound, "not found")
		}
		return c.Blob(http.StatusOK, "image/jpeg", []byte{1, 2, 3, 4, 5})
	}, NewFileCache(cfg, rdb))

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	first := get("/files/1")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := get("/files/1")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, "image/jpeg", second.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, second.Body.Bytes())
	assert.Equal(t, 1, calls)

	get("/files/2")
	missing := get("/files/2")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, 3, calls)
}

func TestFileCacheSkipsOversizedBodies(t *testing.T) {
	rdb := newRedis(t)
	cfg := config.FileCacheConfig{Enabled: true, TTL: time.Minute, Prefix: "poster", MaxBodyBytes: 3}

	calls := 0
	e := echo.New()
	e.GET("/files/:id", func(c echo.Context) error {
		calls++
		return c.Blob(http.StatusOK, "image/jpeg", []byte{1, 2, 3, 4, 5})
	}, NewFileCache(cfg, rdb))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/1", nil))
		assert.Len(t, rec.Body.Bytes(), 5)
	}
	assert.Equal(t, 2, calls)
}

func TestRequestLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(logger.Discard()))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

// brokenStore fails every lookup as an unreachable backend would.
type brokenStore struct{ session.Store }

func (brokenStore) Get(context.Context, string) (uint64, error) {
	return 0, errors.New("connection refused")
}

func TestLoadSessionKeepsCookieOnStoreFailure(t *testing.T) {
	tok, err := utils.NewSessionToken("secret", "live-session", time.Hour)
	require.NoError(t, err)

	e := echo.New()
	e.Use(LoadSession("secret", brokenStore{}, logger.Discard()))
	e.GET("/", whoAmI)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "anon", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Set-Cookie"))
}
