package books

import (
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers book routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	bookService := NewService(db)

	h := &handler{
		bookService: bookService,
	}

	verified := []echo.MiddlewareFunc{authMiddleware.Authenticate, authMiddleware.RequireVerified}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, verified...)
	g.PUT("/:id", h.update, verified...)
	g.PATCH("/:id", h.update, verified...)
	g.DELETE("/:id", h.deleteBook, verified...)
}
