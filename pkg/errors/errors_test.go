package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("report", nil).HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad input", nil).HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized(nil).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Upstream("upstream down", nil).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Parse("bad payload", nil).HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Internal(nil).HTTPStatus())
}

func TestIsMatchesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("context: %w", NotFound("report", errors.New("no rows")))

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrBadRequest))
	assert.False(t, Is(errors.New("plain"), ErrNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("no rows")
	err := NotFound("report", cause)

	assert.ErrorIs(t, err, cause)
}
