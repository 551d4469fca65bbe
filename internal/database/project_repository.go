package database

import (
	"context"
	"fmt"

	"github.com/hassansabag81/TecRoomV1/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRepo implements domain.ProjectRepository backed by PostgreSQL.
// Both the project list view and the stats summary are fed by grouped
// counting in the database; nothing is aggregated twice in Go.
type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

// ListLedBy returns the projects led by the account, newest first, each with
// its task counts. Projects without tasks appear with all counts at zero.
func (r *ProjectRepo) ListLedBy(ctx context.Context, accountID int64) ([]domain.ProjectSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			p.proyecto_id, p.nombre, p.descripcion, p.estado,
			p.fecha_inicio, p.fecha_fin_estimada,
			u.nombre_completo AS lider_nombre,
			COUNT(t.tarea_id) AS total_tareas,
			COUNT(*) FILTER (WHERE t.estado = 'PENDIENTE') AS tareas_pendientes,
			COUNT(*) FILTER (WHERE t.estado = 'EN_PROGRESO') AS tareas_en_progreso,
			COUNT(*) FILTER (WHERE t.estado = 'COMPLETADA') AS tareas_completadas
		FROM proyectos p
		JOIN usuarios u ON p.usuario_lider_id = u.usuario_id
		LEFT JOIN tareas t ON t.proyecto_id = p.proyecto_id
		WHERE p.usuario_lider_id = $1
		GROUP BY p.proyecto_id, u.nombre_completo
		ORDER BY p.fecha_inicio DESC
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.ProjectSummary
	for rows.Next() {
		var p domain.ProjectSummary
		err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Status,
			&p.StartDate, &p.EstimatedEnd, &p.LeaderName,
			&p.Tasks.Total, &p.Tasks.Pending, &p.Tasks.InProgress, &p.Tasks.Completed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

// StatsFor aggregates counts over projects the account leads or works on, and
// tasks assigned to the account or belonging to projects it leads.
func (r *ProjectRepo) StatsFor(ctx context.Context, accountID int64) (*domain.AccountStats, error) {
	var stats domain.AccountStats

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM proyectos p
		WHERE p.usuario_lider_id = $1
		   OR p.proyecto_id IN (
				SELECT DISTINCT t.proyecto_id
				FROM tareas t
				WHERE t.usuario_asignado_id = $1
		   )
	`, accountID).Scan(&stats.TotalProjects)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE t.estado = 'PENDIENTE'),
			COUNT(*) FILTER (WHERE t.estado = 'EN_PROGRESO'),
			COUNT(*) FILTER (WHERE t.estado = 'COMPLETADA')
		FROM tareas t
		WHERE t.usuario_asignado_id = $1
		   OR t.proyecto_id IN (
				SELECT proyecto_id FROM proyectos WHERE usuario_lider_id = $1
		   )
	`, accountID).Scan(&stats.TotalTasks, &stats.PendingTasks, &stats.ActiveTasks, &stats.CompletedTasks)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	return &stats, nil
}
