// Package database provides PostgreSQL connectivity and repositories.
//
// A single pgxpool.Pool is created at startup with bounds from config; every
// statement acquires a pooled connection and releases it on all exit paths,
// including statement errors. Repositories implement the domain interfaces:
// AccountRepository, SessionRepository, ProjectRepository.
package database
