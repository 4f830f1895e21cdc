package users

import (
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the current user routes. All of them
// require an active, verified caller.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) *Service {
	userService := NewService(db)

	h := &handler{
		userService: userService,
	}

	g.Use(authMiddleware.Authenticate, authMiddleware.RequireVerified)

	g.GET("/me", h.me)
	g.PATCH("/me", h.updateMe)

	return userService
}
