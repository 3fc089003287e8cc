package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidArgument("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusBadRequest},
		{InvalidState("empty"), http.StatusBadRequest},
		{NotFound("gone"), http.StatusNotFound},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{Internal("db", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("checkout: %w", InvalidState("cart is empty"))
	assert.True(t, Is(err, KindInvalidState))
	assert.False(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindInternal))
}

func TestMessage(t *testing.T) {
	msg, detail := Message(Internal("failed to save order", errors.New("connection reset")))
	assert.Equal(t, "failed to save order", msg)
	assert.Equal(t, "connection reset", detail)

	msg, detail = Message(NotFound("order not found"))
	assert.Equal(t, "order not found", msg)
	assert.Empty(t, detail)

	msg, detail = Message(errors.New("raw"))
	assert.Equal(t, "internal server error", msg)
	assert.Equal(t, "raw", detail)
}
