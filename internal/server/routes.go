package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Public API
	s.echo.GET("/api/test", s.handleTest)
	s.echo.POST("/api/login", s.handleLogin, s.loginRateLimit)
	s.echo.POST("/api/register", s.handleRegister)

	// Protected API (bearer token)
	s.echo.GET("/api/profile", s.handleProfile, s.requireAuth)
	s.echo.GET("/api/user/projects", s.handleProjects, s.requireAuth)
	s.echo.GET("/api/user/stats", s.handleStats, s.requireAuth)
}
