// Package testgen provides utilities for generating test databases and
// fixture records with configurable fields.
package testgen

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookswap/bookswap/pkg/config"
	"github.com/bookswap/bookswap/pkg/database"
	"github.com/bookswap/bookswap/pkg/migrations"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

var seq atomic.Int64

func next() int64 {
	return seq.Add(1)
}

// UserOptions configures the generated user.
type UserOptions struct {
	Email      string // defaults to a unique address
	Password   string // defaults to "password"
	Inactive   bool
	Superuser  bool
	Unverified bool // users are verified unless this is set
}

// BookOptions configures the generated book. The author and genre are created
// when their IDs are zero.
type BookOptions struct {
	Name      string
	Condition string // defaults to "new"
	PageCount int
	AuthorID  int
	GenreID   int
}

// NewDB opens an in-memory database with every migration applied. It is closed
// when the test completes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := database.New(config.NewForTest())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := migrations.BringUpToDate(context.Background(), db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// CreateUser inserts a user and returns it.
func CreateUser(t *testing.T, db *bun.DB, opts UserOptions) *models.User {
	t.Helper()
	if opts.Email == "" {
		opts.Email = fmt.Sprintf("user%d@example.com", next())
	}
	if opts.Password == "" {
		opts.Password = "password"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:             uuid.New(),
		Email:          opts.Email,
		HashedPassword: string(hash),
		IsActive:       !opts.Inactive,
		IsSuperuser:    opts.Superuser,
		IsVerified:     !opts.Unverified,
	}
	insert(t, db, user)
	return user
}

func CreateAuthor(t *testing.T, db *bun.DB, fullName string) *models.Author {
	t.Helper()
	if fullName == "" {
		fullName = fmt.Sprintf("Author %d", next())
	}
	author := &models.Author{FullName: fullName}
	insert(t, db, author)
	return author
}

func CreateGenre(t *testing.T, db *bun.DB, name string) *models.Genre {
	t.Helper()
	if name == "" {
		name = fmt.Sprintf("Genre %d", next())
	}
	genre := &models.Genre{Name: name}
	insert(t, db, genre)
	return genre
}

func CreateLocation(t *testing.T, db *bun.DB, name string) *models.Location {
	t.Helper()
	if name == "" {
		name = fmt.Sprintf("Location %d", next())
	}
	location := &models.Location{Name: name, Address: "1 Main Street"}
	insert(t, db, location)
	return location
}

// CreateBook inserts a book owned by owner.
func CreateBook(t *testing.T, db *bun.DB, owner *models.User, opts BookOptions) *models.Book {
	t.Helper()
	if opts.Name == "" {
		opts.Name = fmt.Sprintf("Book %d", next())
	}
	if opts.Condition == "" {
		opts.Condition = models.BookConditionNew
	}
	if opts.AuthorID == 0 {
		opts.AuthorID = CreateAuthor(t, db, "").ID
	}
	if opts.GenreID == 0 {
		opts.GenreID = CreateGenre(t, db, "").ID
	}
	book := &models.Book{
		Name:      opts.Name,
		Condition: opts.Condition,
		PageCount: opts.PageCount,
		OwnerID:   owner.ID,
		AuthorID:  opts.AuthorID,
		GenreID:   opts.GenreID,
	}
	insert(t, db, book)
	return book
}

// CreateRequest inserts a request by requester for book with the given status.
func CreateRequest(t *testing.T, db *bun.DB, book *models.Book, requester *models.User, status string) *models.BookRequest {
	t.Helper()
	request := &models.BookRequest{
		BookID:      book.ID,
		RequesterID: requester.ID,
		Status:      status,
	}
	insert(t, db, request)
	return request
}

// CreatePickup links book to location.
func CreatePickup(t *testing.T, db *bun.DB, book *models.Book, location *models.Location) *models.BookLocation {
	t.Helper()
	pickup := &models.BookLocation{
		BookID:     book.ID,
		LocationID: location.ID,
	}
	insert(t, db, pickup)
	return pickup
}

type stamper interface {
	Stamp(now time.Time)
}

func insert(t *testing.T, db *bun.DB, model stamper) {
	t.Helper()
	model.Stamp(time.Now())
	if _, err := db.NewInsert().Model(model).Returning("*").Exec(context.Background()); err != nil {
		t.Fatalf("failed to insert %T: %v", model, err)
	}
}
