package locations

import (
	"context"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveLocationOptions struct {
	ID   *int
	Name *string
}

type ListLocationsOptions struct {
	Limit  *int
	Offset *int
}

type UpdateLocationOptions struct {
	Columns []string
}

type Service struct {
	locations *store.Store[models.Location, *models.Location]
}

func NewService(db *bun.DB) *Service {
	return &Service{store.New[models.Location](db)}
}

func (svc *Service) CreateLocation(ctx context.Context, location *models.Location) error {
	return svc.locations.Create(ctx, location)
}

func (svc *Service) RetrieveLocation(ctx context.Context, opts RetrieveLocationOptions) (*models.Location, error) {
	switch {
	case opts.ID != nil:
		return svc.locations.Retrieve(ctx, *opts.ID)
	case opts.Name != nil:
		locations, _, err := svc.locations.List(ctx, store.ListOptions{}, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("l.name = ?", *opts.Name)
		})
		if err != nil {
			return nil, err
		}
		if len(locations) == 0 {
			return nil, errcodes.NotFound("Location")
		}
		return locations[0], nil
	}
	return nil, errors.New("either ID or Name is required")
}

func (svc *Service) ListLocationsWithTotal(ctx context.Context, opts ListLocationsOptions) ([]*models.Location, int, error) {
	return svc.locations.List(ctx, store.ListOptions{Limit: opts.Limit, Offset: opts.Offset})
}

func (svc *Service) UpdateLocation(ctx context.Context, location *models.Location, opts UpdateLocationOptions) error {
	return svc.locations.Update(ctx, location, opts.Columns...)
}

// DeleteLocation removes the location. It fails with InUse while any book
// still lists it as a pickup location.
func (svc *Service) DeleteLocation(ctx context.Context, id int) (*models.Location, error) {
	return svc.locations.Remove(ctx, id)
}
