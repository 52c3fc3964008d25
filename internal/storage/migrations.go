package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations holds all database migrations in order.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up: `
			-- Users table
			CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				created_at DATETIME NOT NULL
			);

			-- Clients table
			CREATE TABLE IF NOT EXISTS clients (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				email TEXT,
				phone TEXT,
				company TEXT,
				address TEXT,
				is_confirmed INTEGER NOT NULL DEFAULT 0,
				is_lost INTEGER NOT NULL DEFAULT 0,
				sub_status TEXT NOT NULL DEFAULT 'in-progress',
				start_date TEXT,
				end_date TEXT,
				budget REAL,
				projects INTEGER NOT NULL DEFAULT 0,
				active_projects INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME NOT NULL
			);

			-- Projects table
			CREATE TABLE IF NOT EXISTS projects (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				type TEXT,
				client_id INTEGER NOT NULL,
				requirements TEXT,
				budget REAL,
				status TEXT NOT NULL DEFAULT 'in-progress',
				progress INTEGER NOT NULL DEFAULT 0,
				start_date TEXT,
				deadline TEXT,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (client_id) REFERENCES clients(id)
			);

			-- Status updates table (append-only)
			CREATE TABLE IF NOT EXISTS status_updates (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				project_id INTEGER NOT NULL,
				progress INTEGER,
				update_text TEXT NOT NULL,
				updated_by TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
			);

			-- Indexes
			CREATE INDEX IF NOT EXISTS idx_clients_buckets ON clients(is_lost, is_confirmed);
			CREATE INDEX IF NOT EXISTS idx_projects_client ON projects(client_id);
			CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
			CREATE INDEX IF NOT EXISTS idx_status_updates_project ON status_updates(project_id, created_at);
		`,
	},
}

// runMigrations applies all pending migrations.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("get current version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction for migration %d: %w", m.Version, err)
		}

		_, err = tx.Exec(m.Up)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %d (%s): %w", m.Version, m.Name, err)
		}

		_, err = tx.Exec(
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
