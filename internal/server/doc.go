// Package server implements the HTTP server using Echo framework.
//
// Routes: public API (login, register, connectivity probe), bearer-protected
// API (profile, projects, stats), and observability endpoints (health,
// metrics, version). Handlers split by concern: handlers_auth.go,
// handlers_api.go, handlers_health.go.
package server
