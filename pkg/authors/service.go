package authors

import (
	"context"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveAuthorOptions struct {
	ID   *int
	FullName *string
}

type ListAuthorsOptions struct {
	Limit  *int
	Offset *int
}

type UpdateAuthorOptions struct {
	Columns []string
}

// Service manages authors. Every write is reserved for superusers at the
// route level.
type Service struct {
	authors *store.Store[models.Author, *models.Author]
}

func NewService(db *bun.DB) *Service {
	return &Service{store.New[models.Author](db)}
}

func (svc *Service) CreateAuthor(ctx context.Context, author *models.Author) error {
	return svc.authors.Create(ctx, author)
}

func (svc *Service) RetrieveAuthor(ctx context.Context, opts RetrieveAuthorOptions) (*models.Author, error) {
	switch {
	case opts.ID != nil:
		return svc.authors.Retrieve(ctx, *opts.ID)
	case opts.FullName != nil:
		authors, _, err := svc.authors.List(ctx, store.ListOptions{}, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("a.full_name = ?", *opts.FullName)
		})
		if err != nil {
			return nil, err
		}
		if len(authors) == 0 {
			return nil, errcodes.NotFound("Author")
		}
		return authors[0], nil
	}
	return nil, errors.New("either ID or FullName is required")
}

func (svc *Service) ListAuthorsWithTotal(ctx context.Context, opts ListAuthorsOptions) ([]*models.Author, int, error) {
	return svc.authors.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset})
}

func (svc *Service) UpdateAuthor(ctx context.Context, author *models.Author, opts UpdateAuthorOptions) error {
	return svc.authors.Update(ctx, author, opts.Columns...)
}

func (svc *Service) DeleteAuthor(ctx context.Context, id int) (*models.Author, error) {
	return svc.authors.Remove(ctx, id)
}
