package pickups

import (
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers pickup location routes on a
// pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, authMiddleware *auth.Middleware) {
	pickupService := NewService(db)

	h := &handler{
		pickupService: pickupService,
	}

	g.GET("", h.list)
	g.POST("", h.create, authMiddleware.Authenticate, authMiddleware.RequireVerified)
}
