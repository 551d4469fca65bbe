package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/auth"
	"github.com/hassansabag81/TecRoomV1/internal/domain"
	"github.com/hassansabag81/TecRoomV1/internal/metrics"
	"github.com/hassansabag81/TecRoomV1/internal/retry"
)

const (
	auditTimeout  = 10 * time.Second
	auditAttempts = 3
	auditBackoff  = 250 * time.Millisecond
)

// Service is the application layer, the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
	projects domain.ProjectRepository
	issuer   *auth.Issuer

	auditWg sync.WaitGroup
}

// NewService creates the application layer service.
func NewService(accounts domain.AccountRepository, sessions domain.SessionRepository, projects domain.ProjectRepository, issuer *auth.Issuer) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		projects: projects,
		issuer:   issuer,
	}
}

// Login verifies the credentials and issues a signed session token. The
// returned account still carries its hash; callers render a public view.
func (s *Service) Login(ctx context.Context, studentID, password, ipAddress string) (string, *domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
			return "", nil, domain.ErrAccountNotFound
		}
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !account.Active {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeDisabled).Inc()
		return "", nil, domain.ErrAccountDisabled
	}

	if !auth.CheckPassword(account.PasswordHash, password) {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeWrongPassword).Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(account)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	// The audit row is best-effort: its failure must not fail the login,
	// so the write happens off the request path.
	s.recordSessionAsync(account.ID, token, ipAddress)

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	slog.Info("Login succeeded", "account_id", account.ID, "username", account.Username)
	return token, account, nil
}

// recordSessionAsync writes the login audit row in the background with
// bounded retries. The context is detached from the request on purpose: an
// aborted request must not cancel the audit.
func (s *Service) recordSessionAsync(accountID int64, token, ipAddress string) {
	s.auditWg.Add(1)
	go func() {
		defer s.auditWg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()

		policy := retry.Policy{
			MaxAttempts:    auditAttempts,
			InitialBackoff: auditBackoff,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Session audit insert failed, retrying",
					"account_id", accountID, "attempt", attempt, "error", err)
			},
		}
		classify := func(err error) retry.Action {
			if errors.Is(err, context.Canceled) {
				return retry.Stop
			}
			return retry.Retry
		}

		err := retry.Do(ctx, policy, classify, func() error {
			return s.sessions.Create(ctx, accountID, token, ipAddress)
		})
		if err != nil {
			metrics.SessionAuditFailures.Inc()
			slog.Error("Session audit insert dropped", "account_id", accountID, "error", err)
		}
	}()
}

// Stop waits for in-flight audit writes, used during controlled shutdown.
func (s *Service) Stop() {
	s.auditWg.Wait()
}

// Register creates a new MIEMBRO account. Input is already validated at the
// transport layer; only the uniqueness invariant is enforced here.
func (s *Service) Register(ctx context.Context, reg domain.Registration) (string, error) {
	exists, err := s.accounts.Exists(ctx, reg.StudentID, reg.Email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", fmt.Errorf("failed to check uniqueness: %w", err)
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return "", domain.ErrDuplicateAccount
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", err
	}

	fullName := strings.TrimSpace(reg.FirstName + " " + reg.LastName)
	account, err := s.accounts.Create(ctx, reg.StudentID, hash, reg.Email, fullName)
	if err != nil {
		// A concurrent registration can still lose the race after Exists.
		if errors.Is(err, domain.ErrDuplicateAccount) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return "", domain.ErrDuplicateAccount
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()
	slog.Info("Account registered", "account_id", account.ID, "username", account.Username)
	return account.Username, nil
}

// Profile returns the fresh account row for a verified token holder.
func (s *Service) Profile(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.accounts.GetByID(ctx, accountID)
}

// ProjectsFor returns the projects led by the account with task counts.
func (s *Service) ProjectsFor(ctx context.Context, accountID int64) ([]domain.ProjectSummary, error) {
	return s.projects.ListLedBy(ctx, accountID)
}

// StatsFor returns the aggregate project and task figures for the account.
func (s *Service) StatsFor(ctx context.Context, accountID int64) (*domain.AccountStats, error) {
	return s.projects.StatsFor(ctx, accountID)
}
