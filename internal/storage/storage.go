// Package storage provides database storage interfaces and implementations.
package storage

import (
	"context"
	"errors"

	"github.com/vikrin/workflow/internal/models"
)

// ErrHasProjects is returned when deleting a client that still owns
// projects. Callers surface it as a conflict.
var ErrHasProjects = errors.New("client has existing projects")

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open() error
	// Close closes the database connection.
	Close() error
	// Migrate runs database migrations.
	Migrate() error

	// Repository accessors
	Users() UserRepository
	Clients() ClientRepository
	Projects() ProjectRepository
	Status() StatusRepository
	Stats() StatsRepository
}

// UserRepository defines operations for login accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetPassword(ctx context.Context, username, passwordHash string) error
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ClientRepository defines operations for the client registry.
type ClientRepository interface {
	// List returns clients in the bucket selected by filter, newest first.
	// A recognized subStatus additionally restricts the result to rows
	// whose sub_status matches.
	List(ctx context.Context, filter models.ClientFilter, subStatus string) ([]*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) (int64, error)
	// Update applies the non-nil fields of patch. It reports whether a
	// row matched.
	Update(ctx context.Context, id int64, patch *models.ClientPatch) (bool, error)
	// Delete removes the client. It returns ErrHasProjects while the
	// client still owns projects, and reports whether a row matched.
	Delete(ctx context.Context, id int64) (bool, error)
	CountProjects(ctx context.Context, clientID int64) (int, error)
}

// ProjectRepository defines operations for the project registry.
type ProjectRepository interface {
	// List returns projects joined with the owning client's contact
	// fields, newest first, optionally restricted to one client
	// (clientID > 0).
	List(ctx context.Context, clientID int64) ([]*models.Project, error)
	GetByID(ctx context.Context, id int64) (*models.Project, error)
	// Create inserts the project and bumps the owning client's projects
	// and active_projects counters in the same transaction.
	Create(ctx context.Context, project *models.Project) (int64, error)
	// UpdateStatus changes only the status column.
	UpdateStatus(ctx context.Context, id int64, status models.ProjectStatus) (bool, error)
	// Update rewrites the editable columns of the row.
	Update(ctx context.Context, id int64, upd *models.ProjectUpdate) (bool, error)
	// Delete removes the project (cascading its status updates) and
	// decrements the owning client's counters, guarded against going
	// negative, in the same transaction.
	Delete(ctx context.Context, id int64) (bool, error)
}

// StatusRepository defines operations for the per-project timeline.
type StatusRepository interface {
	ListByProject(ctx context.Context, projectID int64) ([]*models.StatusUpdate, error)
	// Append inserts a timeline entry. When upd.Progress is set, the
	// project's progress column is updated in the same transaction.
	Append(ctx context.Context, upd *models.StatusUpdate) (int64, error)
}

// StatsRepository computes the dashboard aggregates.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}
