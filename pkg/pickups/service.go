// Package pickups links books to the locations where their owners hand them
// over. Links can't be edited; remove the book's link and add a new one.
package pickups

import (
	"context"
	"database/sql"

	"github.com/bookswap/bookswap/pkg/access"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type ListPickupsOptions struct {
	Limit  *int
	Offset *int
	BookID *int
}

type Service struct {
	db      *bun.DB
	pickups *store.Store[models.BookLocation, *models.BookLocation]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:      db,
		pickups: store.New[models.BookLocation](db),
	}
}

// AddPickup links a book to a location. The caller must own the book or be a
// superuser.
func (svc *Service) AddPickup(ctx context.Context, pickup *models.BookLocation, caller *models.User) error {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book, err := store.New[models.Book](tx).Retrieve(ctx, pickup.BookID)
		if err != nil {
			return err
		}
		location, err := store.New[models.Location](tx).Retrieve(ctx, pickup.LocationID)
		if err != nil {
			return err
		}
		if !access.CanManagePickups(caller, book) {
			return errcodes.Forbidden("Adding a pickup location to a book you don't own")
		}

		if err := svc.pickups.WithTx(tx).Create(ctx, pickup); err != nil {
			return err
		}
		pickup.Location = location
		return nil
	})
	return errors.WithStack(err)
}

func (svc *Service) ListPickupsWithTotal(ctx context.Context, opts ListPickupsOptions) ([]*models.BookLocation, int, error) {
	return svc.pickups.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset}, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Relation("Location")
		if opts.BookID != nil {
			q = q.Where("bl.book_id = ?", *opts.BookID)
		}
		return q
	})
}
