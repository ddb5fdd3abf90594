package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCORS_UsesDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("ACCESS_CONTROL_ALLOW_ORIGIN")

	app := fiber.New()
	app.Use(WithCORS())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://example.test")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWithCORS_RespectsEnvOverride(t *testing.T) {
	os.Setenv("ACCESS_CONTROL_ALLOW_ORIGIN", "https://allowed.test")
	defer os.Unsetenv("ACCESS_CONTROL_ALLOW_ORIGIN")

	app := fiber.New()
	app.Use(WithCORS())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "https://allowed.test")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "https://allowed.test", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAllowFullOptionsWithCORS_RespondsToOptionsWithNoContent(t *testing.T) {
	app := fiber.New()
	AllowFullOptionsWithCORS(app)

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	req.Header.Set("Origin", "https://example.test")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
