// Package seed loads the demo catalog and accounts into an empty database.
package seed

import (
	"context"
	"database/sql"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type UserSeed struct {
	Email     string
	Password  string
	Superuser bool
}

var (
	Authors = []string{"J. K. Rowling", "J. R. R. Tolkien"}
	Genres  = []string{"Fantasy", "Adventure"}
	Users   = []UserSeed{
		{Email: "admin@gmail.com", Password: "admin", Superuser: true},
		{Email: "test1@gmail.com", Password: "test1"},
		{Email: "test2@gmail.com", Password: "test2"},
	}
)

type Options struct {
	// KeepExisting skips clearing the database before seeding.
	KeepExisting bool
}

type Result struct {
	Authors int `json:"authors"`
	Genres  int `json:"genres"`
	Users   int `json:"users"`
}

// Run clears the database and loads the demo data. Every seeded user is
// active and verified.
func Run(ctx context.Context, db *bun.DB, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)
	result := &Result{}

	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if !opts.KeepExisting {
			if err := deleteAll(ctx, tx); err != nil {
				return err
			}
		}

		authors := store.New[models.Author](tx)
		for _, name := range Authors {
			if err := authors.Create(ctx, &models.Author{FullName: name}); err != nil {
				return err
			}
			result.Authors++
		}

		genres := store.New[models.Genre](tx)
		for _, name := range Genres {
			if err := genres.Create(ctx, &models.Genre{Name: name}); err != nil {
				return err
			}
			result.Genres++
		}

		users := store.New[models.User](tx)
		for _, u := range Users {
			hashed, err := auth.HashPassword(u.Password)
			if err != nil {
				return err
			}
			user := &models.User{
				ID:             uuid.New(),
				Email:          u.Email,
				HashedPassword: hashed,
				IsActive:       true,
				IsSuperuser:    u.Superuser,
				IsVerified:     true,
			}
			if err := users.Create(ctx, user); err != nil {
				return err
			}
			result.Users++
		}
		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	log.Info("seeded database", logger.Data{
		"authors": result.Authors,
		"genres":  result.Genres,
		"users":   result.Users,
	})
	return result, nil
}

// Clear deletes every record, children first.
func Clear(ctx context.Context, db *bun.DB) error {
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return deleteAll(ctx, tx)
	})
	return errors.WithStack(err)
}

func deleteAll(ctx context.Context, idb bun.IDB) error {
	tables := []any{
		(*models.BookRequest)(nil),
		(*models.BookLocation)(nil),
		(*models.Book)(nil),
		(*models.Location)(nil),
		(*models.Author)(nil),
		(*models.Genre)(nil),
		(*models.User)(nil),
	}
	for _, model := range tables {
		if _, err := idb.NewDelete().Model(model).Where("1=1").Exec(ctx); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
