// Package handlers adapts HTTP requests onto the services and renders the
// JSON envelope every endpoint answers with.
package handlers

import (
	"errors"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/middleware"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message, Data: data})
}

func respondList[T any](c *fiber.Ctx, message string, items []T) error {
	n := len(items)
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: items, Count: &n})
}

// ErrorHandler renders any error returned by a handler or middleware.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	log = log.WithComponent("http")
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(Envelope{Success: false, Message: fe.Message})
		}

		status := apperr.HTTPStatus(err)
		message, detail := apperr.Message(err)
		body := Envelope{Success: false, Message: message}
		if status >= fiber.StatusInternalServerError {
			body.Error = detail
			log.Error("request failed", "path", c.Path(), "error", err)
		}
		return c.Status(status).JSON(body)
	}
}

func callerOf(c *fiber.Ctx) (models.Caller, error) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		return models.Caller{}, apperr.Unauthorized("unauthorized")
	}
	return caller, nil
}

func paramID(c *fiber.Ctx, name, what string) (primitive.ObjectID, error) {
	return services.ParseID(c.Params(name), what)
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.InvalidArgument("invalid request body")
	}
	return nil
}
