package requests

import (
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/config"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// PolicyFromConfig returns the rerequest policy selected in cfg.
func PolicyFromConfig(cfg *config.Config) RerequestPolicy {
	if cfg.AllowRerequestAfterRejection {
		return RerequestAfterRejection
	}
	return RerequestNever
}

// RegisterRoutesWithGroup registers book request routes on a pre-configured
// group. GET and POST on /:id take a book id while PATCH takes a request id.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config, authMiddleware *auth.Middleware) {
	requestService := NewService(db, PolicyFromConfig(cfg))

	h := &handler{
		requestService: requestService,
	}

	g.Use(authMiddleware.Authenticate, authMiddleware.RequireVerified)

	g.GET("", h.listMine)
	g.GET("/:id", h.listForBook)
	g.POST("/:id", h.create)
	g.PATCH("/:id", h.accept)
}
