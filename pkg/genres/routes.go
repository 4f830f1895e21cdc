package genres

import (
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers genre routes on a pre-configured group.
// Reads are public, writes are for superusers.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	genreService := NewService(db)

	h := &handler{
		genreService: genreService,
	}

	privileged := []echo.MiddlewareFunc{authMiddleware.Authenticate, authMiddleware.RequireSuperuser}

	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create, privileged...)
	g.PUT("/:id", h.update, privileged...)
	g.PATCH("/:id", h.update, privileged...)
	g.DELETE("/:id", h.deleteGenre, privileged...)
}
