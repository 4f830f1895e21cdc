package requests

import (
	"net/http"
	"strconv"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	requestService *Service
}

func (h *handler) listMine(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}

	params := ListRequestsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	requests, total, err := h.requestService.ListForRequester(ctx, user, ListRequestsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"book_requests": requests,
		"total":         total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// listForBook takes a book id.
func (h *handler) listForBook(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	params := ListRequestsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	requests, total, err := h.requestService.ListForBook(ctx, bookID, user, ListRequestsOptions{
		Limit:  &params.Limit,
		Offset: &params.Offset,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"book_requests": requests,
		"total":         total,
	}

	return errors.WithStack(c.JSON(http.StatusOK, response))
}

// create takes a book id. The request has no body.
func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	bookID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	request, err := h.requestService.CreateRequest(ctx, bookID, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, request))
}

// accept takes a request id.
func (h *handler) accept(c echo.Context) error {
	ctx := c.Request().Context()
	user, ok := auth.UserFromContext(c)
	if !ok {
		return errcodes.Unauthorized("Authentication required")
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book request")
	}

	request, err := h.requestService.AcceptRequest(ctx, id, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, request))
}
