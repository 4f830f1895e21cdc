package testutils

import (
	"net/http"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/bookswap/bookswap/pkg/seed"
	"github.com/bookswap/bookswap/pkg/store"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createUserRequest is the request body for creating a test user.
type createUserRequest struct {
	Email      string `json:"email" mod:"trim,lcase" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Superuser  bool   `json:"superuser"`
	Unverified bool   `json:"unverified"`
}

// createUser creates an active user, verified unless asked otherwise.
// POST /test/users.
func (h *handler) createUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		ID:             uuid.New(),
		Email:          req.Email,
		HashedPassword: hashedPassword,
		IsActive:       true,
		IsSuperuser:    req.Superuser,
		IsVerified:     !req.Unverified,
	}
	if err := store.New[models.User](h.db).Create(ctx, user); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, user))
}

// deleteAll removes every record.
// DELETE /test/data.
func (h *handler) deleteAll(c echo.Context) error {
	ctx := c.Request().Context()

	if err := seed.Clear(ctx, h.db); err != nil {
		return errors.Wrap(err, "failed to clear database")
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
