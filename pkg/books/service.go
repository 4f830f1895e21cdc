package books

import (
	"context"
	"database/sql"

	"github.com/bookswap/bookswap/pkg/access"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *int
}

// ListBooksOptions filters are combined with AND. Nil filters match every
// book.
type ListBooksOptions struct {
	Limit     *int
	Offset    *int
	Genre     *string
	Author    *string
	Condition *string
}

// BookPatch holds the fields of an update. Nil fields keep their stored value.
type BookPatch struct {
	Name        *string
	Description *string
	Condition   *string
	PageCount   *int
	AuthorID    *int
	GenreID     *int
}

type Service struct {
	db    *bun.DB
	books *store.Store[models.Book, *models.Book]
}

func NewService(db *bun.DB) *Service {
	return &Service{
		db:    db,
		books: store.New[models.Book](db),
	}
}

// CreateBook stores book with owner as its owner, whatever OwnerID was set
// on it. The genre and author must exist.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, owner *models.User) error {
	book.OwnerID = owner.ID

	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := checkReferences(ctx, tx, book); err != nil {
			return err
		}
		return svc.books.WithTx(tx).Create(ctx, book)
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book created", logger.Data{"book_id": book.ID, "owner_id": owner.ID})
	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	if opts.ID == nil {
		return nil, errors.New("ID is required")
	}
	return svc.books.Retrieve(ctx, *opts.ID, withDetail)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	return svc.books.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset}, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Relation("Author").Relation("Genre")
		if opts.Genre != nil {
			q = q.Where("b.genre_id IN (SELECT id FROM genres WHERE name = ?)", *opts.Genre)
		}
		if opts.Author != nil {
			q = q.Where("b.author_id IN (SELECT id FROM authors WHERE full_name = ?)", *opts.Author)
		}
		if opts.Condition != nil {
			q = q.Where("b.condition = ?", *opts.Condition)
		}
		return q
	})
}

// UpdateBook applies patch to the book with the given id. Only the owner may
// update a book. The genre and author are checked again as on create.
func (svc *Service) UpdateBook(ctx context.Context, id int, caller *models.User, patch BookPatch) (*models.Book, error) {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		books := svc.books.WithTx(tx)

		book, err := books.Retrieve(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsOwner(caller, book) {
			return errcodes.Forbidden("Updating a book you don't own")
		}

		columns := patch.apply(book)
		if err := checkReferences(ctx, tx, book); err != nil {
			return err
		}
		return books.Update(ctx, book, columns...)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id})
}

// DeleteBook removes the book along with its pickup locations and requests.
// Only the owner may delete a book.
func (svc *Service) DeleteBook(ctx context.Context, id int, caller *models.User) error {
	err := svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		books := svc.books.WithTx(tx)

		book, err := books.Retrieve(ctx, id)
		if err != nil {
			return err
		}
		if !access.IsOwner(caller, book) {
			return errcodes.Forbidden("Deleting a book you don't own")
		}

		_, err = books.Remove(ctx, id)
		return err
	})
	if err != nil {
		return errors.WithStack(err)
	}

	logger.FromContext(ctx).Info("book deleted", logger.Data{"book_id": id, "owner_id": caller.ID})
	return nil
}

// apply copies the set fields of the patch onto book and returns the columns
// that changed.
func (p BookPatch) apply(book *models.Book) []string {
	columns := []string{}
	if p.Name != nil && *p.Name != book.Name {
		book.Name = *p.Name
		columns = append(columns, "name")
	}
	if p.Description != nil && *p.Description != book.Description {
		book.Description = *p.Description
		columns = append(columns, "description")
	}
	if p.Condition != nil && *p.Condition != book.Condition {
		book.Condition = *p.Condition
		columns = append(columns, "condition")
	}
	if p.PageCount != nil && *p.PageCount != book.PageCount {
		book.PageCount = *p.PageCount
		columns = append(columns, "page_count")
	}
	if p.AuthorID != nil && *p.AuthorID != book.AuthorID {
		book.AuthorID = *p.AuthorID
		columns = append(columns, "author_id")
	}
	if p.GenreID != nil && *p.GenreID != book.GenreID {
		book.GenreID = *p.GenreID
		columns = append(columns, "genre_id")
	}
	return columns
}

// checkReferences fails with NotFound when the genre or the author of book
// doesn't exist. The genre is checked first.
func checkReferences(ctx context.Context, idb bun.IDB, book *models.Book) error {
	if _, err := store.New[models.Genre](idb).Retrieve(ctx, book.GenreID); err != nil {
		return err
	}
	if _, err := store.New[models.Author](idb).Retrieve(ctx, book.AuthorID); err != nil {
		return err
	}
	return nil
}

func withDetail(q *bun.SelectQuery) *bun.SelectQuery {
	return q.
		Relation("Author").
		Relation("Genre").
		Relation("Pickups", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Order("bl.id ASC")
		}).
		Relation("Pickups.Location")
}
