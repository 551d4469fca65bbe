package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/hassansabag81/TecRoomV1/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect creates the process-wide connection pool. Pool bounds come from
// configuration; an unreachable or misconfigured database fails here, never
// later. The caller owns the pool and closes it exactly once on shutdown.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolCfg.MinConns = cfg.PoolMinConns
	poolCfg.MaxConns = cfg.PoolMaxConns
	poolCfg.MaxConnIdleTime = cfg.PoolIdleTimeout

	slog.Info("Database SSL mode", "sslmode", extractSSLMode(cfg.DatabaseURL))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connected", "min_conns", poolCfg.MinConns, "max_conns", poolCfg.MaxConns)
	return pool, nil
}

func extractSSLMode(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "unknown"
	}
	mode := strings.ToLower(u.Query().Get("sslmode"))
	if mode == "" {
		return "prefer (default)"
	}
	return mode
}

// RunMigrations applies the schema. Statements are idempotent so startup can
// run them unconditionally.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			usuario_id BIGSERIAL PRIMARY KEY,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			nombre_completo TEXT NOT NULL,
			rol TEXT NOT NULL DEFAULT 'MIEMBRO',
			activo BOOLEAN NOT NULL DEFAULT TRUE,
			fecha_registro TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS sesiones (
			sesion_id UUID PRIMARY KEY,
			usuario_id BIGINT NOT NULL REFERENCES usuarios(usuario_id),
			token_sesion TEXT NOT NULL,
			direccion_ip TEXT NOT NULL,
			estado TEXT NOT NULL DEFAULT 'ACTIVA',
			fecha_creacion TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sesiones_usuario_id ON sesiones(usuario_id)`,
		`CREATE TABLE IF NOT EXISTS proyectos (
			proyecto_id BIGSERIAL PRIMARY KEY,
			nombre TEXT NOT NULL,
			descripcion TEXT NOT NULL DEFAULT '',
			estado TEXT NOT NULL DEFAULT 'PLANIFICACION',
			fecha_inicio DATE NOT NULL DEFAULT CURRENT_DATE,
			fecha_fin_estimada DATE,
			usuario_lider_id BIGINT NOT NULL REFERENCES usuarios(usuario_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_proyectos_lider ON proyectos(usuario_lider_id)`,
		`CREATE TABLE IF NOT EXISTS tareas (
			tarea_id BIGSERIAL PRIMARY KEY,
			proyecto_id BIGINT NOT NULL REFERENCES proyectos(proyecto_id),
			usuario_asignado_id BIGINT REFERENCES usuarios(usuario_id),
			estado TEXT NOT NULL DEFAULT 'PENDIENTE'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tareas_proyecto ON tareas(proyecto_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tareas_asignado ON tareas(usuario_asignado_id)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
