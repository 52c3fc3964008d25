package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vikrin/workflow/internal/models"
)

type sqliteStatusRepo struct {
	db *sql.DB
}

func (r *sqliteStatusRepo) ListByProject(ctx context.Context, projectID int64) ([]*models.StatusUpdate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, progress, update_text, updated_by, created_at
		FROM status_updates
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list status updates: %w", err)
	}
	defer rows.Close()

	var updates []*models.StatusUpdate
	for rows.Next() {
		upd := &models.StatusUpdate{}
		var progress sql.NullInt64
		err := rows.Scan(
			&upd.ID, &upd.ProjectID, &progress,
			&upd.UpdateText, &upd.UpdatedBy, &upd.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan status update: %w", err)
		}
		if progress.Valid {
			p := int(progress.Int64)
			upd.Progress = &p
		}
		updates = append(updates, upd)
	}
	return updates, rows.Err()
}

// Append inserts a timeline entry. A supplied progress snapshot also
// moves the project's progress, in the same transaction; without one the
// project row is untouched.
func (r *sqliteStatusRepo) Append(ctx context.Context, upd *models.StatusUpdate) (int64, error) {
	if upd.CreatedAt.IsZero() {
		upd.CreatedAt = time.Now()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append status: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO status_updates (project_id, progress, update_text, updated_by, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		upd.ProjectID, upd.Progress, upd.UpdateText, upd.UpdatedBy, upd.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert status update: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("status update insert id: %w", err)
	}

	if upd.Progress != nil {
		_, err = tx.ExecContext(ctx,
			"UPDATE projects SET progress = ? WHERE id = ?",
			*upd.Progress, upd.ProjectID)
		if err != nil {
			return 0, fmt.Errorf("update project progress: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append status: %w", err)
	}
	return id, nil
}
