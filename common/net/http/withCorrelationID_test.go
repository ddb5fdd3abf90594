package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCorrelationID_SetsHeaderOnResponseAndRequest(t *testing.T) {
	var seenOnRequest string

	app := fiber.New()
	app.Use(WithCorrelationID())
	app.Get("/test", func(c *fiber.Ctx) error {
		seenOnRequest = c.Get(headerCorrelationID)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.NotEmpty(t, seenOnRequest)
	assert.NotEmpty(t, resp.Header.Get(headerCorrelationID))
}

func TestWithCorrelationID_GeneratesDistinctIDsPerRequest(t *testing.T) {
	var ids []string

	app := fiber.New()
	app.Use(WithCorrelationID())
	app.Get("/test", func(c *fiber.Ctx) error {
		ids = append(ids, c.Get(headerCorrelationID))
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		_, err := app.Test(req, -1)
		require.NoError(t, err)
	}

	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
