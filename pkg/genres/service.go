package genres

import (
	"context"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveGenreOptions struct {
	ID   *int
	Name *string
}

type ListGenresOptions struct {
	Limit  *int
	Offset *int
}

type UpdateGenreOptions struct {
	Columns []string
}

type Service struct {
	genres *store.Store[models.Genre, *models.Genre]
}

func NewService(db *bun.DB) *Service {
	return &Service{store.New[models.Genre](db)}
}

func (svc *Service) CreateGenre(ctx context.Context, genre *models.Genre) error {
	return svc.genres.Create(ctx, genre)
}

func (svc *Service) RetrieveGenre(ctx context.Context, opts RetrieveGenreOptions) (*models.Genre, error) {
	switch {
	case opts.ID != nil:
		return svc.genres.Retrieve(ctx, *opts.ID)
	case opts.Name != nil:
		genres, _, err := svc.genres.List(ctx, store.ListOptions{}, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("g.name = ?", *opts.Name)
		})
		if err != nil {
			return nil, err
		}
		if len(genres) == 0 {
			return nil, errcodes.NotFound("Genre")
		}
		return genres[0], nil
	}
	return nil, errors.New("either ID or Name is required")
}

func (svc *Service) ListGenresWithTotal(ctx context.Context, opts ListGenresOptions) ([]*models.Genre, int, error) {
	return svc.genres.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset})
}

func (svc *Service) UpdateGenre(ctx context.Context, genre *models.Genre, opts UpdateGenreOptions) error {
	return svc.genres.Update(ctx, genre, opts.Columns...)
}

// DeleteGenre removes the genre. Genres still used by a book can't be deleted.
func (svc *Service) DeleteGenre(ctx context.Context, id int) (*models.Genre, error) {
	return svc.genres.Remove(ctx, id)
}
