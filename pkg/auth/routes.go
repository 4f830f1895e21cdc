package auth

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers the account lifecycle routes.
func RegisterRoutesWithGroup(g *echo.Group, authService *Service, authMiddleware *Middleware) {
	h := &handler{
		authService: authService,
	}

	g.POST("/register", h.register)
	g.POST("/jwt/login", h.login)
	g.POST("/jwt/logout", h.logout, authMiddleware.Authenticate)
	g.POST("/request-verify-token", h.requestVerifyToken)
	g.POST("/verify", h.verify)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}
