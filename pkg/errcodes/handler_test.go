package errcodes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, err error) (int, Payload) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHandler().Handle(err, c)

	var body Payload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHandle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", NotFound("Book"), http.StatusNotFound, "not_found", "Book not found."},
		{"wrapped forbidden", errors.WithStack(Forbidden("Requesting your own book")), http.StatusForbidden, "forbidden", "Requesting your own book is not allowed."},
		{"conflict", Conflict("Author"), http.StatusConflict, "conflict", "Author already exists."},
		{"duplicate request", DuplicateRequest(), http.StatusBadRequest, "duplicate_request", "Request already exists."},
		{"in use", InUse("Genre"), http.StatusConflict, "in_use", "Genre is still referenced by other records."},
		{"invalid transition", errors.Wrap(InvalidTransition("Book request has already been accepted."), "accepting"), http.StatusConflict, "invalid_transition", "Book request has already been accepted."},
		{"echo error with non-string message", echo.NewHTTPError(http.StatusTooManyRequests, errors.New("Too Many Requests")), http.StatusTooManyRequests, "too_many_requests", "Too Many Requests"},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), http.StatusMethodNotAllowed, "method_not_allowed", "Method Not Allowed"},
		{"generic error", errors.New("boom"), http.StatusInternalServerError, "internal_server_error", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, body := handle(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.status, body.Error.StatusCode)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.message, body.Error.Message)
		})
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := errors.Wrap(NotFound("Genre"), "retrieving genre")
	assert.ErrorIs(t, err, NotFound("Genre"))
	assert.NotErrorIs(t, err, NotFound("Author"))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusNotFound, e.HTTPCode)
}
