package pickups

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bookswap/bookswap/internal/testgen"
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/binder"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type testServer struct {
	e           *echo.Echo
	authService *auth.Service
}

func newTestServer(t *testing.T, db *bun.DB) *testServer {
	t.Helper()
	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	authService := auth.NewService(db, auth.Options{JWTSecret: "test-secret", TokenLifetime: time.Hour})
	RegisterRoutesWithGroup(e.Group("/pickup-locations"), db, auth.NewMiddleware(authService))
	return &testServer{e, authService}
}

func (s *testServer) do(t *testing.T, method, path, body string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != nil {
		token, err := s.authService.GenerateToken(user)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}


func TestPickupRoutes(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	stranger := testgen.CreateUser(t, db, testgen.UserOptions{})
	book := testgen.CreateBook(t, db, owner, testgen.BookOptions{})
	library := testgen.CreateLocation(t, db, "Central Library")
	body := `{"book_id":` + strconv.Itoa(book.ID) + `,"location_id":` + strconv.Itoa(library.ID) + `}`

	rec := srv.do(t, http.MethodPost, "/pickup-locations", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/pickup-locations", body, stranger)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, "/pickup-locations", body, owner)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pickup models.BookLocation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pickup))
	assert.Equal(t, book.ID, pickup.BookID)
	require.NotNil(t, pickup.Location)
	assert.Equal(t, "Central Library", pickup.Location.Name)

	rec = srv.do(t, http.MethodPost, "/pickup-locations", body, owner)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, "/pickup-locations", `{"book_id":`+strconv.Itoa(book.ID)+`,"location_id":999}`, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/pickup-locations?book_id="+strconv.Itoa(book.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var list struct {
		PickupLocations []models.BookLocation `json:"pickup_locations"`
		Total           int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)
}
