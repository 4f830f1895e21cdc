package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/authors"
	"github.com/bookswap/bookswap/pkg/binder"
	"github.com/bookswap/bookswap/pkg/books"
	"github.com/bookswap/bookswap/pkg/config"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/genres"
	"github.com/bookswap/bookswap/pkg/locations"
	"github.com/bookswap/bookswap/pkg/pickups"
	"github.com/bookswap/bookswap/pkg/requests"
	"github.com/bookswap/bookswap/pkg/testutils"
	"github.com/bookswap/bookswap/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New builds the HTTP server. revocations may be nil, in which case logout
// doesn't invalidate tokens.
func New(cfg *config.Config, db *bun.DB, revocations auth.Revocations) (*http.Server, error) {
	e, err := newEcho(cfg, db, revocations)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func newEcho(cfg *config.Config, db *bun.DB, revocations auth.Revocations) (*echo.Echo, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowCredentials: true,
	}))

	health.RegisterRoutes(e)

	authService := auth.NewService(db, auth.Options{
		JWTSecret:           cfg.JWTSecret,
		TokenLifetime:       cfg.JWTLifetime,
		VerifyTokenLifetime: cfg.VerifyTokenLifetime,
		ResetTokenLifetime:  cfg.ResetTokenLifetime,
		Revocations:         revocations,
	})
	authMiddleware := auth.NewMiddleware(authService)

	auth.RegisterRoutesWithGroup(e.Group("/auth"), authService, authMiddleware)
	users.RegisterRoutesWithGroup(e.Group("/users"), db, authMiddleware)

	authors.RegisterRoutesWithGroup(e.Group("/authors"), db, authMiddleware)
	genres.RegisterRoutesWithGroup(e.Group("/genres"), db, authMiddleware)
	locations.RegisterRoutesWithGroup(e.Group("/locations"), db, authMiddleware)
	books.RegisterRoutesWithGroup(e.Group("/books"), db, authMiddleware)
	pickups.RegisterRoutesWithGroup(e.Group("/pickup-locations"), db, authMiddleware)
	requests.RegisterRoutesWithGroup(e.Group("/book-requests"), db, cfg, authMiddleware)

	if cfg.Environment == config.EnvironmentTest {
		testutils.RegisterRoutes(e, db)
	}

	e.RouteNotFound("/*", notFoundHandler)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	return e, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
