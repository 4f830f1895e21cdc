package users

import (
	"context"

	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/google/uuid"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
)

// Service handles user operations.
type Service struct {
	users *store.Store[models.User, *models.User]
}

// NewService creates a new users service.
func NewService(db *bun.DB) *Service {
	return &Service{users: store.New[models.User](db)}
}

type UpdateOptions struct {
	Columns []string
}

func (s *Service) Retrieve(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.Retrieve(ctx, id)
}

// Update writes the given columns of user. Taking an email that belongs to
// another user fails with a Conflict.
func (s *Service) Update(ctx context.Context, user *models.User, opts UpdateOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}
	if err := s.users.Update(ctx, user, opts.Columns...); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("user updated", logger.Data{
		"user_id": user.ID.String(),
		"columns": opts.Columns,
	})
	return nil
}
