package books

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
	"github.com/google/uuid"
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
	RegisterRoutesWithGroup(e.Group("/books"), db, auth.NewMiddleware(authService))
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


func TestCreateBook_Handler(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	author := testgen.CreateAuthor(t, db, "Frank Herbert")
	genre := testgen.CreateGenre(t, db, "Science Fiction")

	body := `{"name":" Dune ","author_id":` + strconv.Itoa(author.ID) + `,"genre_id":` + strconv.Itoa(genre.ID) +
		`,"page_count":412,"owner_id":"` + uuid.New().String() + `"}`
	rec := srv.do(t, http.MethodPost, "/books", body, owner)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var book models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, models.BookConditionNew, book.Condition)
	assert.Equal(t, owner.ID, book.OwnerID)
	require.NotNil(t, book.Author)
	assert.Equal(t, "Frank Herbert", book.Author.FullName)
	require.NotNil(t, book.Genre)
	assert.Equal(t, "Science Fiction", book.Genre.Name)

	rec = srv.do(t, http.MethodPost, "/books", `{"name":"Emma","author_id":`+strconv.Itoa(author.ID)+`,"genre_id":999}`, owner)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Genre not found.")

	rec = srv.do(t, http.MethodPost, "/books", `{"name":"Emma","author_id":1,"genre_id":1,"condition":"mint"}`, owner)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateBook_RequiresVerifiedUser(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	unverified := testgen.CreateUser(t, db, testgen.UserOptions{Unverified: true})
	body := `{"name":"Dune","author_id":1,"genre_id":1}`

	rec := srv.do(t, http.MethodPost, "/books", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, "/books", body, unverified)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListBooks_Handler(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	fantasy := testgen.CreateGenre(t, db, "Fantasy")
	testgen.CreateBook(t, db, owner, testgen.BookOptions{Name: "The Hobbit", GenreID: fantasy.ID, Condition: "used"})
	testgen.CreateBook(t, db, owner, testgen.BookOptions{Name: "Dune"})

	rec := srv.do(t, http.MethodGet, "/books?genre=Fantasy&condition=used", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Books []models.Book `json:"books"`
		Total int           `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Books, 1)
	assert.Equal(t, "The Hobbit", body.Books[0].Name)
	require.NotNil(t, body.Books[0].Genre)
	assert.Equal(t, "Fantasy", body.Books[0].Genre.Name)

	rec = srv.do(t, http.MethodGet, "/books?condition=mint", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRetrieveBook_Detail(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	book := testgen.CreateBook(t, db, owner, testgen.BookOptions{})
	testgen.CreatePickup(t, db, book, testgen.CreateLocation(t, db, "Central Library"))

	rec := srv.do(t, http.MethodGet, "/books/"+strconv.Itoa(book.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Pickups, 1)
	require.NotNil(t, got.Pickups[0].Location)
	assert.Equal(t, "Central Library", got.Pickups[0].Location.Name)

	rec = srv.do(t, http.MethodGet, "/books/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAndDeleteBook_OwnerOnly(t *testing.T) {
	t.Parallel()
	db := testgen.NewDB(t)
	srv := newTestServer(t, db)
	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	other := testgen.CreateUser(t, db, testgen.UserOptions{})
	book := testgen.CreateBook(t, db, owner, testgen.BookOptions{Name: "Dune", PageCount: 412})
	path := "/books/" + strconv.Itoa(book.ID)

	rec := srv.do(t, http.MethodPut, path, `{"page_count":500}`, other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPut, "/books/999", `{"page_count":500}`, other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPatch, path, `{"page_count":500}`, owner)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got models.Book
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 500, got.PageCount)
	assert.Equal(t, "Dune", got.Name)

	rec = srv.do(t, http.MethodDelete, path, "", other)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodDelete, path, "", owner)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
