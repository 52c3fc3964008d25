package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vikrin/workflow/internal/models"
)

type sqliteProjectRepo struct {
	db *sql.DB
}

const projectColumns = `p.id, p.name, p.type, p.client_id, p.requirements,
	p.budget, p.status, p.progress, p.start_date, p.deadline, p.created_at`

func scanProject(row interface{ Scan(...any) error }, withClient bool) (*models.Project, error) {
	project := &models.Project{}
	var typ, requirements, startDate, deadline sql.NullString
	var budget sql.NullFloat64
	dest := []any{
		&project.ID, &project.Name, &typ, &project.ClientID, &requirements,
		&budget, &project.Status, &project.Progress, &startDate, &deadline,
		&project.CreatedAt,
	}
	var clientName, clientEmail, clientPhone sql.NullString
	if withClient {
		dest = append(dest, &clientName, &clientEmail, &clientPhone)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	project.Type = typ.String
	project.Requirements = requirements.String
	project.StartDate = startDate.String
	project.Deadline = deadline.String
	if budget.Valid {
		project.Budget = &budget.Float64
	}
	if withClient {
		project.ClientName = clientName.String
		project.ClientEmail = clientEmail.String
		project.ClientPhone = clientPhone.String
	}
	return project, nil
}

func (r *sqliteProjectRepo) List(ctx context.Context, clientID int64) ([]*models.Project, error) {
	query := "SELECT " + projectColumns + `,
		c.name AS client_name, c.email AS client_email, c.phone AS client_phone
		FROM projects p
		LEFT JOIN clients c ON p.client_id = c.id`
	var args []any
	if clientID > 0 {
		query += " WHERE p.client_id = ?"
		args = append(args, clientID)
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *sqliteProjectRepo) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects p WHERE p.id = ?", id)
	project, err := scanProject(row, false)
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return project, nil
}

// Create inserts the project and bumps the owning client's counters in
// one transaction. The legacy system issued the two statements without a
// transaction and could leave the counters understated on failure.
func (r *sqliteProjectRepo) Create(ctx context.Context, project *models.Project) (int64, error) {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create project: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO projects (name, type, client_id, requirements, budget,
			status, progress, start_date, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		project.Name, nullStr(project.Type), project.ClientID,
		nullStr(project.Requirements), project.Budget,
		project.Status, project.Progress,
		nullStr(project.StartDate), nullStr(project.Deadline),
		project.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("project insert id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients SET projects = projects + 1, active_projects = active_projects + 1
		WHERE id = ?`, project.ClientID)
	if err != nil {
		return 0, fmt.Errorf("increment client counters: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create project: %w", err)
	}
	return id, nil
}

func (r *sqliteProjectRepo) UpdateStatus(ctx context.Context, id int64, status models.ProjectStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return false, fmt.Errorf("update project status: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *sqliteProjectRepo) Update(ctx context.Context, id int64, upd *models.ProjectUpdate) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, type = ?, requirements = ?, budget = ?,
			status = ?, progress = ?, start_date = ?, deadline = ?
		WHERE id = ?`,
		upd.Name, nullStr(upd.Type), nullStr(upd.Requirements), upd.Budget,
		upd.Status, upd.Progress, nullStr(upd.StartDate), nullStr(upd.Deadline),
		id,
	)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Delete removes the project and decrements the owning client's
// counters, guarded so neither goes below zero. Status updates cascade
// at the store level.
func (r *sqliteProjectRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback()

	var clientID int64
	err = tx.QueryRowContext(ctx,
		"SELECT client_id FROM projects WHERE id = ?", id).Scan(&clientID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get project client: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients SET projects = projects - 1
		WHERE id = ? AND projects > 0`, clientID)
	if err != nil {
		return false, fmt.Errorf("decrement client projects: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE clients SET active_projects = active_projects - 1
		WHERE id = ? AND active_projects > 0`, clientID)
	if err != nil {
		return false, fmt.Errorf("decrement client active projects: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete project: %w", err)
	}
	return true, nil
}
