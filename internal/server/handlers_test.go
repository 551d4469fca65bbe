package server

import (
	"context"
	"fmt"
	"testing"
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

const testSecret = "test-secret-key-32-bytes-long!!!"

// --- Mock implementations ---

type mockAppService struct {
	loginFn       func(ctx context.Context, studentID, password, ipAddress string) (string, *domain.Account, error)
	registerFn    func(ctx context.Context, reg domain.Registration) (string, error)
	profileFn     func(ctx context.Context, accountID int64) (*domain.Account, error)
	projectsForFn func(ctx context.Context, accountID int64) ([]domain.ProjectSummary, error)
	statsForFn    func(ctx context.Context, accountID int64) (*domain.AccountStats, error)
}

func (m *mockAppService) Login(ctx context.Context, studentID, password, ipAddress string) (string, *domain.Account, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, studentID, password, ipAddress)
	}
	return "", nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) Register(ctx context.Context, reg domain.Registration) (string, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, reg)
	}
	return "", fmt.Errorf("not implemented")
}

func (m *mockAppService) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, accountID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) ProjectsFor(ctx context.Context, accountID int64) ([]domain.ProjectSummary, error) {
	if m.projectsForFn != nil {
		return m.projectsForFn(ctx, accountID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) StatsFor(ctx context.Context, accountID int64) (*domain.AccountStats, error) {
	if m.statsForFn != nil {
		return m.statsForFn(ctx, accountID)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockProbe struct {
	pingErr   error
	counts    []database.TableCount
	countsErr error
}

func (m *mockProbe) Ping(_ context.Context) error {
	return m.pingErr
}

func (m *mockProbe) TableCounts(_ context.Context) ([]database.TableCount, error) {
	if m.countsErr != nil {
		return nil, m.countsErr
	}
	return m.counts, nil
}

// --- Test helpers ---

func newTestServer(t *testing.T, app domain.AppService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	clock := clockwork.NewRealClock()
	srv := &Server{
		echo:         e,
		config:       &config.Config{Port: "3000"},
		app:          app,
		verifier:     auth.NewVerifier([]byte(testSecret), clock),
		db:           &mockProbe{},
		loginLimiter: newLimiterStore(100, 100),
		startTime:    clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()
	return srv
}

func withProbe(p databaseProbe) func(*Server) {
	return func(s *Server) { s.db = p }
}

func withLoginLimiter(rps float64, burst int) func(*Server) {
	return func(s *Server) { s.loginLimiter = newLimiterStore(rps, burst) }
}

func testAccount() *domain.Account {
	return &domain.Account{
		ID:           42,
		Username:     "20230001",
		FullName:     "Ana García",
		Email:        "ana@tec.mx",
		Role:         domain.RoleMember,
		Active:       true,
		RegisteredAt: time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC),
	}
}

// bearerFor issues a token the test server's verifier accepts.
func bearerFor(t *testing.T, account *domain.Account) string {
	t.Helper()
	issuer := auth.NewIssuer([]byte(testSecret), time.Hour, clockwork.NewRealClock())
	token, err := issuer.Issue(account)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return bearerPrefix + token
}
