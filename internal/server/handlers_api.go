package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/hassansabag81/TecRoomV1/internal/domain"
	apperrors "github.com/hassansabag81/TecRoomV1/internal/errors"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

func (s *Server) handleProfile(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	account, err := s.app.Profile(c.Request().Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAccountNotFound):
		return apperrors.NotFoundError("Usuario no encontrado")
	default:
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user": struct {
			userView
			RegisteredAt string `json:"fechaRegistro"`
			Active       bool   `json:"activo"`
		}{
			userView:     publicView(account),
			RegisteredAt: account.RegisteredAt.UTC().Format(time.RFC3339),
			Active:       account.Active,
		},
	})
}

// projectView is the wire shape for one project row. Keys match the columns
// the dashboard binds to.
type projectView struct {
	ID           int64   `json:"proyecto_id"`
	Name         string  `json:"nombre"`
	Description  string  `json:"descripcion"`
	Status       string  `json:"estado"`
	StartDate    string  `json:"fecha_inicio"`
	EstimatedEnd *string `json:"fecha_fin_estimada"`
	LeaderName   string  `json:"lider_nombre"`
	TotalTasks   int     `json:"total_tareas"`
	PendingTasks int     `json:"tareas_pendientes"`
	ActiveTasks  int     `json:"tareas_en_progreso"`
	DoneTasks    int     `json:"tareas_completadas"`
	Progress     int     `json:"progreso"`
}

func toProjectView(p domain.ProjectSummary) projectView {
	view := projectView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Status:       p.Status,
		StartDate:    p.StartDate.Format(dateLayout),
		LeaderName:   p.LeaderName,
		TotalTasks:   p.Tasks.Total,
		PendingTasks: p.Tasks.Pending,
		ActiveTasks:  p.Tasks.InProgress,
		DoneTasks:    p.Tasks.Completed,
		Progress:     domain.Progress(p.Tasks.Completed, p.Tasks.Total),
	}
	if p.EstimatedEnd != nil {
		end := p.EstimatedEnd.Format(dateLayout)
		view.EstimatedEnd = &end
	}
	return view
}

func (s *Server) handleProjects(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	projects, err := s.app.ProjectsFor(c.Request().Context(), id)
	if err != nil {
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, toProjectView(p))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"projects": views,
		"count":    len(views),
	})
}

func (s *Server) handleStats(c echo.Context) error {
	id, err := accountID(c)
	if err != nil {
		return err
	}

	stats, err := s.app.StatsFor(c.Request().Context(), id)
	if err != nil {
		return apperrors.UnavailableError("Base de datos no disponible", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"stats":     stats,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
