package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// --- Model types ---

// Role values mirror the rol column of the usuarios table.
type Role string

const (
	RoleMember Role = "MIEMBRO"
	RoleLeader Role = "LIDER"
	RoleAdmin  Role = "ADMIN"
)

// Account is a registered user. Usernames are institution-issued 8-digit
// control numbers; username and email are each unique across accounts.
type Account struct {
	ID           int64     `db:"usuario_id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"nombre_completo"`
	Email        string    `db:"email"`
	Role         Role      `db:"rol"`
	Active       bool      `db:"activo"`
	RegisteredAt time.Time `db:"fecha_registro"`
}

// Session status values mirror the estado column of the sesiones table.
const (
	SessionActive  = "ACTIVA"
	SessionExpired = "EXPIRADA"
	SessionRevoked = "REVOCADA"
)

// Session is an audit record of a successful login. It is not the authority
// for token validity; tokens carry their own signature and expiry.
type Session struct {
	ID        uuid.UUID `db:"sesion_id"`
	AccountID int64     `db:"usuario_id"`
	Token     string    `db:"token_sesion"`
	IPAddress string    `db:"direccion_ip"`
	Status    string    `db:"estado"`
	CreatedAt time.Time `db:"fecha_creacion"`
}

// Project status values mirror the estado column of the proyectos table.
const (
	ProjectPlanning  = "PLANIFICACION"
	ProjectActive    = "ACTIVO"
	ProjectPaused    = "PAUSADO"
	ProjectCompleted = "COMPLETADO"
	ProjectCancelled = "CANCELADO"
)

// Task status values mirror the estado column of the tareas table.
const (
	TaskPending    = "PENDIENTE"
	TaskInProgress = "EN_PROGRESO"
	TaskCompleted  = "COMPLETADA"
)

// TaskCounts is the per-status task breakdown shared by the project list view
// and the stats summary, so both are fed by one aggregation.
type TaskCounts struct {
	Total      int `db:"total_tareas"`
	Pending    int `db:"tareas_pendientes"`
	InProgress int `db:"tareas_en_progreso"`
	Completed  int `db:"tareas_completadas"`
}

// ProjectSummary is a project annotated with its leader name and task counts.
type ProjectSummary struct {
	ID           int64      `db:"proyecto_id"`
	Name         string     `db:"nombre"`
	Description  string     `db:"descripcion"`
	Status       string     `db:"estado"`
	StartDate    time.Time  `db:"fecha_inicio"`
	EstimatedEnd *time.Time `db:"fecha_fin_estimada"`
	LeaderName   string     `db:"lider_nombre"`
	Tasks        TaskCounts
}

// AccountStats are the aggregate figures shown on the dashboard: projects the
// account leads or works on, and tasks assigned to the account or belonging to
// projects it leads.
type AccountStats struct {
	TotalProjects  int `json:"totalProjects"`
	TotalTasks     int `json:"totalTasks"`
	PendingTasks   int `json:"pendingTasks"`
	ActiveTasks    int `json:"activeTasks"`
	CompletedTasks int `json:"completedTasks"`
}

// Registration carries already-validated input for a new account.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	StudentID string
	Password  string
}

// --- Interfaces ---

// AccountRepository abstracts account persistence.
type AccountRepository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
	GetByID(ctx context.Context, accountID int64) (*Account, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, username, passwordHash, email, fullName string) (*Account, error)
}

// SessionRepository abstracts the login audit log.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token, ipAddress string) error
}

// ProjectRepository abstracts project and task aggregation.
type ProjectRepository interface {
	ListLedBy(ctx context.Context, accountID int64) ([]ProjectSummary, error)
	StatsFor(ctx context.Context, accountID int64) (*AccountStats, error)
}

// AppService is the application layer contract. Handlers route all operations
// through here.
type AppService interface {
	Login(ctx context.Context, studentID, password, ipAddress string) (string, *Account, error)
	Register(ctx context.Context, reg Registration) (string, error)
	Profile(ctx context.Context, accountID int64) (*Account, error)
	ProjectsFor(ctx context.Context, accountID int64) ([]ProjectSummary, error)
	StatsFor(ctx context.Context, accountID int64) (*AccountStats, error)
}
