package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndMessage(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"bad request", BadRequest("lesson topic is required"), http.StatusBadRequest, "lesson topic is required"},
		{"wrapped app error", fmt.Errorf("ranker: %w", Forbidden("nope")), http.StatusForbidden, "nope"},
		{"internal keeps cause", Internal(dbErr), http.StatusInternalServerError, "connection refused"},
		{"plain error", dbErr, http.StatusInternalServerError, "connection refused"},
		{"wrap without message", Wrap(http.StatusTooManyRequests, "", dbErr), http.StatusTooManyRequests, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, StatusOf(tt.err))
			assert.Equal(t, tt.wantMessage, MessageOf(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(http.StatusBadGateway, "upstream", cause)
	assert.ErrorIs(t, err, cause)
}
