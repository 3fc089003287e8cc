// Package services holds the storefront business rules. Every operation
// returns *apperr.Error values for failures a client can act on.
package services

import (
	"errors"
	"strings"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct tag validation and turns the first failure into
// an InvalidArgument error.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.InvalidArgument("invalid input")
	}

	fe := verrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return apperr.InvalidArgument("%s is required", field)
	case "email":
		return apperr.InvalidArgument("%s must be a valid email", field)
	case "min", "gte":
		return apperr.InvalidArgument("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return apperr.InvalidArgument("%s must be at most %s", field, fe.Param())
	case "gt":
		return apperr.InvalidArgument("%s must be greater than %s", field, fe.Param())
	default:
		return apperr.InvalidArgument("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// storeErr maps a store failure onto the client-facing error. ErrNotFound
// becomes NotFound with the given message.
func storeErr(err error, notFound string, args ...any) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(notFound, args...)
	default:
		return apperr.Internal("database error", err)
	}
}

// ParseID converts a hex id from a request into an ObjectID.
func ParseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidArgument("invalid %s id", what)
	}
	return id, nil
}

func ratingInRange(r float64) error {
	if r < 1 || r > 5 {
		return apperr.InvalidArgument("rating must be between 1 and 5")
	}
	return nil
}

