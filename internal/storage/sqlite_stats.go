package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vikrin/workflow/internal/models"
)

type sqliteStatsRepo struct {
	db *sql.DB
}

// Dashboard computes the client bucket counts in a single pass and folds
// the project status group-by into the three exposed keys. Statuses
// outside those keys are counted by the query but not surfaced.
func (r *sqliteStatsRepo) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN is_confirmed = 1 AND is_lost = 0 THEN 1 END) AS confirmed,
			COUNT(CASE WHEN is_confirmed = 0 AND is_lost = 0 THEN 1 END) AS not_confirmed,
			COUNT(CASE WHEN is_lost = 1 THEN 1 END) AS lost
		FROM clients`).Scan(
		&stats.Clients.Confirmed,
		&stats.Clients.NotConfirmed,
		&stats.Clients.Lost,
	)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT status, COUNT(*) FROM projects GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status models.ProjectStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan project stats: %w", err)
		}
		switch status {
		case models.ProjectInProgress:
			stats.Projects.InProgress = count
		case models.ProjectWaitingForClient:
			stats.Projects.WaitingForClient = count
		case models.ProjectCompleted:
			stats.Projects.Completed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project stats rows: %w", err)
	}

	return stats, nil
}
