package auth

import (
	"strings"

	"github.com/bookswap/bookswap/pkg/access"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUser   = "user"
	contextKeyClaims = "token_claims"
)

// Middleware provides authentication middleware.
type Middleware struct {
	authService *Service
}

// NewMiddleware creates a new auth middleware.
func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// Authenticate extracts and validates the bearer token. If valid, it verifies
// the user is still active and adds the user to the context. If not
// authenticated, it returns 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c)
		if token == "" {
			return errcodes.Unauthorized("Authentication required")
		}

		user, claims, err := m.resolve(c, token)
		if err != nil {
			return err
		}

		c.Set(contextKeyUser, user)
		c.Set(contextKeyClaims, claims)

		return next(c)
	}
}

// RequireVerified rejects users that haven't verified their email. Must be
// used after Authenticate.
func (m *Middleware) RequireVerified(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c)
		if !ok {
			return errcodes.Unauthorized("Authentication required")
		}
		if !user.IsVerified {
			return errcodes.Forbidden("Using this endpoint before verifying your email")
		}
		return next(c)
	}
}

// RequireSuperuser rejects users without superuser privileges. Must be used
// after Authenticate.
func (m *Middleware) RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := UserFromContext(c)
		if !ok {
			return errcodes.Unauthorized("Authentication required")
		}
		if !access.IsPrivileged(user) {
			return errcodes.Forbidden("Using this endpoint without superuser privileges")
		}
		return next(c)
	}
}

func (m *Middleware) resolve(c echo.Context, token string) (*models.User, *Claims, error) {
	ctx := c.Request().Context()

	claims, err := m.authService.ValidateToken(ctx, token)
	if err != nil {
		return nil, nil, errcodes.Unauthorized("Invalid or expired token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, errcodes.Unauthorized("Invalid or expired token")
	}

	// Verify user still exists and is active
	user, err := m.authService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, errcodes.Unauthorized("User not found or inactive")
	}

	return user, claims, nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(contextKeyUser).(*models.User)
	return user, ok && user != nil
}

// ClaimsFromContext returns the claims of the token the user authenticated
// with, if any.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get(contextKeyClaims).(*Claims)
	return claims
}
