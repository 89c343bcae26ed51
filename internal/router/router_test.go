package router_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/router"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDeps(t *testing.T) router.Deps {
	return router.Deps{
		Config: &config.Config{
			ServiceName:   "router_test",
			CORSOrigins:   "*",
			DBType:        "sqlite",
			DBDatabase:    ":memory:",
			AuthRateLimit: 2,
		},
		DB:          testutil.NewDB(t),
		Credentials: services.NewCredentials("router-secret", bcrypt.MinCost, time.Hour),
	}
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestHealth(t *testing.T) {
	app := router.New(newDeps(t))

	resp := testutil.Do(t, app, http.MethodGet, "/health", nil, "")
	body := testutil.Body(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "disabled", body["redis"])
}

func TestHealthWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deps := newDeps(t)
	blacklist := services.NewRedisBlacklist(client, "router")
	deps.Blacklist = blacklist
	deps.Redis = blacklist
	app := router.New(deps)

	resp := testutil.Do(t, app, http.MethodGet, "/health", nil, "")
	body := testutil.Body(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["redis"])

	mr.Close()
	resp = testutil.Do(t, app, http.MethodGet, "/health", nil, "")
	body = testutil.Body(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "unreachable", body["redis"])
}

func TestMetricsAndDocs(t *testing.T) {
	app := router.New(newDeps(t))

	// one request so the counters have a sample
	testutil.Do(t, app, http.MethodGet, "/health", nil, "")

	resp := testutil.Do(t, app, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	metrics := readAll(t, resp)
	assert.Contains(t, metrics, "http_requests_total")
	assert.Contains(t, metrics, `service="router_test"`)

	resp = testutil.Do(t, app, http.MethodGet, "/swagger/doc.json", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readAll(t, resp), "/assignment/update")
}

func TestUnknownRoute(t *testing.T) {
	app := router.New(newDeps(t))

	resp := testutil.Do(t, app, http.MethodGet, "/nowhere", nil, "")
	body := testutil.Body(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "notFound", body["type"])
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "/nowhere", body["url"])
}

func TestSessionRoutesRequireToken(t *testing.T) {
	app := router.New(newDeps(t))

	for _, target := range []string{"/user/profile", "/customer/all", "/address/all", "/commission/all", "/assignment/all"} {
		resp := testutil.Do(t, app, http.MethodGet, target, nil, "")
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, target)
	}
}

func TestUnknownRouteUnderSessionPrefix(t *testing.T) {
	app := router.New(newDeps(t))

	for _, target := range []string{"/customer/nope", "/address/nope", "/commission/nope", "/assignment/nope"} {
		resp := testutil.Do(t, app, http.MethodGet, target, nil, "")
		body := testutil.Body(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
		assert.Equal(t, "notFound", body["type"], target)
	}

	// a known route under the same prefix still wants a session
	resp := testutil.Do(t, app, http.MethodGet, "/customer/all", nil, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	app := router.New(newDeps(t))

	req := httptest.NewRequest(http.MethodOptions, "/customer/all", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(resp.Header.Get("Access-Control-Allow-Headers"), "Authorization"))
}

func TestCredentialRoutesAreRateLimited(t *testing.T) {
	app := router.New(newDeps(t))

	for i := 0; i < 2; i++ {
		resp := testutil.Do(t, app, http.MethodPost, "/user/login", map[string]any{}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	resp := testutil.Do(t, app, http.MethodPost, "/user/login", map[string]any{}, "")
	body := testutil.Body(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "rateLimit", body["type"])
}
