package pickups

import (
	"net/http"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	pickupService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListPickupsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	pickups, total, err := h.pickupService.ListPickupsWithTotal(ctx, ListPickupsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
		BookID: params.BookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"pickup_locations": pickups,
		"total":            total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := AddPickupPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	pickup := &models.BookLocation{
		BookID:     params.BookID,
		LocationID: params.LocationID,
	}
	if err := h.pickupService.AddPickup(ctx, pickup, user); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, pickup))
}
