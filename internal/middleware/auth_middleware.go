package middleware

import (
	"strings"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	localUserID = "user_id"
	localRole   = "role"
)

// Auth validates the bearer token and stores the caller in the request
// locals.
func Auth(secret []byte) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		// Get the Authorization header
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return apperr.Unauthorized("missing token")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			return apperr.Unauthorized("invalid token format")
		}

		token, err := parser.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			return apperr.Unauthorized("invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperr.Unauthorized("invalid token claims")
		}

		userID, userExists := claims["user_id"].(string)
		role, roleExists := claims["role"].(string)
		if !userExists || !roleExists {
			return apperr.Unauthorized("invalid token payload")
		}

		id, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return apperr.Unauthorized("invalid token payload")
		}

		c.Locals(localUserID, id)
		c.Locals(localRole, role)
		return c.Next()
	}
}

// CallerFrom returns the identity Auth stored on c.
func CallerFrom(c *fiber.Ctx) (models.Caller, bool) {
	id, ok := c.Locals(localUserID).(primitive.ObjectID)
	if !ok {
		return models.Caller{}, false
	}
	role, _ := c.Locals(localRole).(string)
	return models.Caller{UserID: id, Role: role}, true
}
