package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(max int) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: utils.SendError})
	app.Post("/login", AuthRateLimit(max), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func post(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestAuthRateLimit(t *testing.T) {
	app := limitedApp(3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, post(t, app).StatusCode)
	}

	resp := post(t, app)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body := map[string]any{}
	require.NoError(t, decode(resp, &body))
	assert.Equal(t, "rateLimit", body["type"])
}

func TestAuthRateLimitDisabled(t *testing.T) {
	app := limitedApp(0)
	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, post(t, app).StatusCode)
	}
}
