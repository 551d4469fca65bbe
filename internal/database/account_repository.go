package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/hassansabag81/TecRoomV1/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// accountColumns must match the Scan order in scanAccount.
const accountColumns = `usuario_id, username, password_hash, email, nombre_completo, rol, activo, fecha_registro`

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// AccountRepo implements domain.AccountRepository backed by PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Email,
		&a.FullName, &a.Role, &a.Active, &a.RegisteredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM usuarios WHERE username = $1`, username))
}

func (r *AccountRepo) GetByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM usuarios WHERE usuario_id = $1`, accountID))
}

// Exists reports whether any account already uses the username or the email.
func (r *AccountRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1 OR email = $2)`,
		username, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

// Create inserts a new account with role MIEMBRO and activo=true. A concurrent
// insert racing past Exists still fails here on the unique constraints and is
// reported as domain.ErrDuplicateAccount.
func (r *AccountRepo) Create(ctx context.Context, username, passwordHash, email, fullName string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO usuarios (username, password_hash, email, nombre_completo, rol, activo)
		VALUES ($1, $2, $3, $4, 'MIEMBRO', TRUE)
		RETURNING `+accountColumns,
		username, passwordHash, email, fullName)

	account, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}
