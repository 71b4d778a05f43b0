// Package database is the versioned relational store for pipeline output.
// Every pipeline run writes one batch per table, tagged with a monotonically
// increasing version so historical runs stay comparable.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the database under dataDir and runs
// migrations.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "teamlens.db")
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One writer at a time: versioned batch inserts read-then-write the
	// version counter inside a transaction.
	db.SetMaxOpenConns(1)

	database := &DB{DB: db}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database initialized", "path", dbPath)
	return database, nil
}

func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS meeting_intelligence (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			name TEXT NOT NULL,
			involvement_score INTEGER NOT NULL,
			time_spoken_seconds INTEGER NOT NULL,
			lines_spoken INTEGER NOT NULL,
			behavior_type TEXT NOT NULL,
			important_topics TEXT,
			summary TEXT,
			overall_meeting_summary TEXT,
			meeting_topics TEXT,
			generated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS git_intelligence (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			name TEXT NOT NULL,
			work_importance REAL NOT NULL,
			pr_involvement REAL NOT NULL,
			comment_quality REAL NOT NULL,
			activity REAL NOT NULL,
			collaboration_health REAL NOT NULL,
			git_score REAL NOT NULL,
			git_behavior TEXT NOT NULL,
			generated_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS final_team_intelligence (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			name TEXT NOT NULL,
			merged_score REAL NOT NULL,
			final_behavior TEXT NOT NULL,
			git_score REAL NOT NULL,
			meeting_score REAL NOT NULL,
			generated_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_meeting_version ON meeting_intelligence(version)`,
		`CREATE INDEX IF NOT EXISTS idx_git_version ON git_intelligence(version)`,
		`CREATE INDEX IF NOT EXISTS idx_final_version ON final_team_intelligence(version)`,
		`CREATE INDEX IF NOT EXISTS idx_git_score ON git_intelligence(version, git_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_final_score ON final_team_intelligence(version, merged_score DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return nil
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
