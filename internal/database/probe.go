package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TableCount is a row count for one schema table, reported by the
// connectivity probe endpoint.
type TableCount struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// Probe exposes the diagnostic surface of the pool to the HTTP layer without
// handing it the whole pool.
type Probe struct {
	pool *pgxpool.Pool
}

func NewProbe(pool *pgxpool.Pool) *Probe {
	return &Probe{pool: pool}
}

func (p *Probe) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// TableCounts returns exact row counts for the application tables. The tables
// are small enough that COUNT(*) is fine here.
func (p *Probe) TableCounts(ctx context.Context) ([]TableCount, error) {
	tables := []string{"usuarios", "sesiones", "proyectos", "tareas"}

	counts := make([]TableCount, 0, len(tables))
	for _, table := range tables {
		var n int64
		if err := p.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count rows in %s: %w", table, err)
		}
		counts = append(counts, TableCount{Name: table, Rows: n})
	}
	return counts, nil
}
