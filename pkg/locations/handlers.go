package locations

import (
	"net/http"
	"strconv"

	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	locationService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListLocationsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	locations, total, err := h.locationService.ListLocationsWithTotal(ctx, ListLocationsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"locations": locations,
		"total":  total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Location")
	}

	location, err := h.locationService.RetrieveLocation(ctx, RetrieveLocationOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, location))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateLocationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	location := &models.Location{
		Name:    params.Name,
		Address: params.Address,
	}
	if err := h.locationService.CreateLocation(ctx, location); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, location))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Location")
	}

	params := UpdateLocationPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	location, err := h.locationService.RetrieveLocation(ctx, RetrieveLocationOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	opts := UpdateLocationOptions{Columns: []string{}}
	if params.Name != nil && *params.Name != location.Name {
		location.Name = *params.Name
		opts.Columns = append(opts.Columns, "name")
	}
	if params.Address != nil && *params.Address != location.Address {
		location.Address = *params.Address
		opts.Columns = append(opts.Columns, "address")
	}

	if err := h.locationService.UpdateLocation(ctx, location, opts); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, location))
}

func (h *handler) deleteLocation(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Location")
	}

	if _, err := h.locationService.DeleteLocation(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
