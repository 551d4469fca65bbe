package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/auth"
	"github.com/hassansabag81/TecRoomV1/internal/config"
	"github.com/hassansabag81/TecRoomV1/internal/database"
	"github.com/hassansabag81/TecRoomV1/internal/domain"
	apperrors "github.com/hassansabag81/TecRoomV1/internal/errors"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// databaseProbe is the minimal pool surface needed for health checks and the
// connectivity probe endpoint. Satisfied by database.Probe.
type databaseProbe interface {
	Ping(ctx context.Context) error
	TableCounts(ctx context.Context) ([]database.TableCount, error)
}

type Server struct {
	echo         *echo.Echo
	config       *config.Config
	app          domain.AppService
	verifier     *auth.Verifier
	db           databaseProbe
	loginLimiter *limiterStore
	startTime    time.Time
}

func NewServer(cfg *config.Config, app domain.AppService, verifier *auth.Verifier, db databaseProbe, clock clockwork.Clock) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		verifier:     verifier,
		db:           db,
		loginLimiter: newLimiterStore(cfg.LoginRateLimit, cfg.LoginRateBurst),
		startTime:    clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Server starting", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
