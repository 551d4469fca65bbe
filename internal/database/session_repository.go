package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hassansabag81/TecRoomV1/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepo implements domain.SessionRepository backed by PostgreSQL.
// Rows are an audit log of logins, not the authority for token validity.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, accountID int64, token, ipAddress string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sesiones (sesion_id, usuario_id, token_sesion, direccion_ip, estado)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New(), accountID, token, ipAddress, domain.SessionActive)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}
