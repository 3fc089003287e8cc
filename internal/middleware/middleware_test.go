package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var secret = []byte("test-secret")

func sign(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperr.HTTPStatus(err))
		},
	})
	app.Get("/me", Auth(secret), func(c *fiber.Ctx) error {
		caller, ok := CallerFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(caller.UserID.Hex() + ":" + caller.Role)
	})
	app.Get("/admin", Auth(secret), RequireAdmin, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newApp()
	uid := primitive.NewObjectID()
	valid := sign(t, secret, jwt.MapClaims{"user_id": uid.Hex(), "role": "user", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"empty bearer", "Bearer ", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
		{"wrong key", "Bearer " + sign(t, []byte("other"), jwt.MapClaims{"user_id": uid.Hex(), "role": "user"}), fiber.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": uid.Hex(), "role": "user", "exp": time.Now().Add(-time.Hour).Unix()}), fiber.StatusUnauthorized},
		{"missing role", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": uid.Hex()}), fiber.StatusUnauthorized},
		{"bad user id", "Bearer " + sign(t, secret, jwt.MapClaims{"user_id": "nope", "role": "user"}), fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
		{"valid without prefix", valid, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	app := newApp()
	uid := primitive.NewObjectID().Hex()

	for role, status := range map[string]int{"user": fiber.StatusForbidden, "admin": fiber.StatusOK} {
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+sign(t, secret, jwt.MapClaims{"user_id": uid, "role": role}))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, status, resp.StatusCode, role)
	}
}
