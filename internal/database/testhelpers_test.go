package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	containerOnce   sync.Once
	testDatabaseURL string
	testPool        *pgxpool.Pool
	containerErr    error
)

func testConfig(databaseURL string) *config.Config {
	return &config.Config{
		DatabaseURL:     databaseURL,
		PoolMinConns:    1,
		PoolMaxConns:    5,
		PoolIdleTimeout: time.Minute,
	}
}

// setupTestDB starts a PostgreSQL container once per test run, migrates the
// schema, and hands out a shared pool. Tables are truncated after each test.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	containerOnce.Do(func() {
		ctx := context.Background()

		container, err := postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			containerErr = err
			return
		}

		testDatabaseURL, containerErr = container.ConnectionString(ctx, "sslmode=disable")
		if containerErr != nil {
			return
		}

		testPool, containerErr = Connect(ctx, testConfig(testDatabaseURL))
		if containerErr != nil {
			return
		}

		containerErr = RunMigrations(ctx, testPool)
	})
	require.NoError(t, containerErr)

	t.Cleanup(func() {
		_, err := testPool.Exec(context.Background(), "TRUNCATE sesiones, tareas, proyectos, usuarios CASCADE")
		if err != nil {
			t.Logf("Failed to truncate tables: %v", err)
		}
	})

	return testPool
}

// createTestAccount inserts an account with default values for testing.
func createTestAccount(t *testing.T, pool *pgxpool.Pool, username string) int64 {
	t.Helper()

	repo := NewAccountRepo(pool)
	account, err := repo.Create(context.Background(), username, "$2a$12$test-hash", username+"@tec.mx", "Test "+username)
	require.NoError(t, err)
	require.NotZero(t, account.ID)
	return account.ID
}

// createTestProject inserts a project led by the given account.
func createTestProject(t *testing.T, pool *pgxpool.Pool, leaderID int64, name string) int64 {
	t.Helper()

	var projectID int64
	err := pool.QueryRow(context.Background(), `
		INSERT INTO proyectos (nombre, descripcion, estado, usuario_lider_id)
		VALUES ($1, 'proyecto de prueba', 'ACTIVO', $2)
		RETURNING proyecto_id
	`, name, leaderID).Scan(&projectID)
	require.NoError(t, err)
	return projectID
}

// createTestTask inserts a task in the given state, optionally assigned.
func createTestTask(t *testing.T, pool *pgxpool.Pool, projectID int64, assigneeID *int64, status string) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO tareas (proyecto_id, usuario_asignado_id, estado)
		VALUES ($1, $2, $3)
	`, projectID, assigneeID, status)
	require.NoError(t, err)
}
