package server

import (
	"context"
	"net/http"
	"time"

	apperrors "github.com/hassansabag81/TecRoomV1/internal/errors"
	"github.com/hassansabag81/TecRoomV1/internal/version"
	"github.com/labstack/echo/v4"
)

const readinessTimeout = 2 * time.Second

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "alive",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":   "unhealthy",
			"database": "unreachable",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ready",
		"database": "connected",
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}

// handleTest is the connectivity probe the frontend calls on load. It answers
// with row counts per table when the database is reachable.
func (s *Server) handleTest(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.db.Ping(ctx); err != nil {
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	tables, err := s.db.TableCounts(ctx)
	if err != nil {
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   "TecRoom funcionando correctamente",
		"tables":    tables,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
