package locations

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
	RegisterRoutesWithGroup(e.Group("/locations"), db, auth.NewMiddleware(authService))
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

func TestListLocations(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	testgen.CreateLocation(t, db, "Central Library")
	testgen.CreateLocation(t, db, "Old Town Cafe")
	testgen.CreateLocation(t, db, "Harbour Kiosk")

	rec := srv.do(t, http.MethodGet, "/locations?offset=1&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Locations []models.Location `json:"locations"`
		Total  int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Locations, 1)
	assert.Equal(t, "Old Town Cafe", body.Locations[0].Name)

	rec = srv.do(t, http.MethodGet, "/locations?limit=101", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRetrieveLocation_NotFound(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)

	rec := srv.do(t, http.MethodGet, "/locations/42", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/locations/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocationWrites_RequireSuperuser(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	user := testgen.CreateUser(t, db, testgen.UserOptions{})

	rec := srv.do(t, http.MethodPost, "/locations", `{"name":"Central Library"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/locations", `{"name":"Central Library"}`, user)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLocationLifecycle(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	admin := testgen.CreateUser(t, db, testgen.UserOptions{Superuser: true})

	rec := srv.do(t, http.MethodPost, "/locations", `{"name":"  Central Library "}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var location models.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &location))
	assert.Equal(t, "Central Library", location.Name)

	rec = srv.do(t, http.MethodPost, "/locations", `{"name":"Central Library"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	path := "/locations/" + strconv.Itoa(location.ID)
	rec = srv.do(t, http.MethodPatch, path, `{"address":"2 Harbour Road"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &location))
	assert.Equal(t, "Central Library", location.Name)
	assert.Equal(t, "2 Harbour Road", location.Address)

	rec = srv.do(t, http.MethodPut, path, `{"name":"Old Town Cafe"}`, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &location))
	assert.Equal(t, "Old Town Cafe", location.Name)
	assert.Equal(t, "2 Harbour Road", location.Address)

	rec = srv.do(t, http.MethodDelete, path, "", admin)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = srv.do(t, http.MethodDelete, path, "", admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLocation_InUse(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	admin := testgen.CreateUser(t, db, testgen.UserOptions{Superuser: true})
	book := testgen.CreateBook(t, db, admin, testgen.BookOptions{})
	library := testgen.CreateLocation(t, db, "")
	testgen.CreatePickup(t, db, book, library)

	rec := srv.do(t, http.MethodDelete, "/locations/"+strconv.Itoa(library.ID), "", admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "in_use")
}
