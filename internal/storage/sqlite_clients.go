package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vikrin/workflow/internal/models"
)

type sqliteClientRepo struct {
	db *sql.DB
}

const clientColumns = `id, name, email, phone, company, address,
	is_confirmed, is_lost, sub_status, start_date, end_date, budget,
	projects, active_projects, created_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	client := &models.Client{}
	var email, phone, company, address, startDate, endDate sql.NullString
	var budget sql.NullFloat64
	err := row.Scan(
		&client.ID, &client.Name, &email, &phone, &company, &address,
		&client.IsConfirmed, &client.IsLost, &client.SubStatus,
		&startDate, &endDate, &budget,
		&client.Projects, &client.ActiveProjects, &client.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	client.Email = email.String
	client.Phone = phone.String
	client.Company = company.String
	client.Address = address.String
	client.StartDate = startDate.String
	client.EndDate = endDate.String
	if budget.Valid {
		client.Budget = &budget.Float64
	}
	return client, nil
}

func (r *sqliteClientRepo) List(ctx context.Context, filter models.ClientFilter, subStatus string) ([]*models.Client, error) {
	var conditions []string
	var args []any

	switch filter {
	case models.FilterConfirmed:
		conditions = append(conditions, "is_confirmed = 1", "is_lost = 0")
	case models.FilterNotConfirmed:
		conditions = append(conditions, "is_confirmed = 0", "is_lost = 0")
	case models.FilterLost:
		conditions = append(conditions, "is_lost = 1")
	default:
		conditions = append(conditions, "is_lost = 0")
	}

	if models.ValidSubStatus(subStatus) {
		conditions = append(conditions, "sub_status = ?")
		args = append(args, subStatus)
	}

	query := "SELECT " + clientColumns + " FROM clients WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *sqliteClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?", id)
	client, err := scanClient(row)
	if err == sql.ErrNoRows {
		//nolint:nilnil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client by id: %w", err)
	}
	return client, nil
}

func (r *sqliteClientRepo) Create(ctx context.Context, client *models.Client) (int64, error) {
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO clients (name, email, phone, company, address,
			is_confirmed, is_lost, sub_status, start_date, end_date, budget,
			created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		client.Name, nullStr(client.Email), nullStr(client.Phone),
		nullStr(client.Company), nullStr(client.Address),
		client.IsConfirmed, client.IsLost, client.SubStatus,
		nullStr(client.StartDate), nullStr(client.EndDate), client.Budget,
		client.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client insert id: %w", err)
	}
	return id, nil
}

func (r *sqliteClientRepo) Update(ctx context.Context, id int64, patch *models.ClientPatch) (bool, error) {
	var sets []string
	var args []any

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Phone != nil {
		set("phone", *patch.Phone)
	}
	if patch.Company != nil {
		set("company", *patch.Company)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.IsConfirmed != nil {
		set("is_confirmed", *patch.IsConfirmed)
	}
	if patch.IsLost != nil {
		set("is_lost", *patch.IsLost)
	}
	if patch.SubStatus != nil {
		set("sub_status", *patch.SubStatus)
	}
	if patch.StartDate != nil {
		set("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set("end_date", *patch.EndDate)
	}
	if patch.Budget != nil {
		set("budget", *patch.Budget)
	}
	if patch.Projects != nil {
		set("projects", *patch.Projects)
	}
	if patch.ActiveProjects != nil {
		set("active_projects", *patch.ActiveProjects)
	}

	if len(sets) == 0 {
		return false, fmt.Errorf("no fields to update")
	}

	query := "UPDATE clients SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update client: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *sqliteClientRepo) Delete(ctx context.Context, id int64) (bool, error) {
	count, err := r.CountProjects(ctx, id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, ErrHasProjects
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *sqliteClientRepo) CountProjects(ctx context.Context, clientID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM projects WHERE client_id = ?", clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count client projects: %w", err)
	}
	return count, nil
}

// nullStr maps the empty string to NULL so optional text columns stay
// NULL instead of collecting empty strings.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
