package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLogsErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		level  string
	}{
		{"not found", apperr.NotFound("product not found"), 404, "WARN"},
		{"invalid argument", apperr.InvalidArgument("bad"), 400, "WARN"},
		{"fiber error", fiber.ErrUpgradeRequired, 426, "WARN"},
		{"internal", apperr.Internal("database error", errors.New("boom")), 500, "ERROR"},
		{"unknown", errors.New("boom"), 500, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, "info", "json")

			app := fiber.New(fiber.Config{
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					return c.SendStatus(apperr.HTTPStatus(err))
				},
			})
			app.Use(log.Middleware())
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			resp.Body.Close()

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, float64(tt.status), line["status"])
			assert.Equal(t, tt.level, line["level"])
		})
	}
}
