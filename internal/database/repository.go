package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles versioned reads and writes.
type Repository struct {
	db *DB
}

// NewRepository creates a repository over db.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// nextVersion reads the highest version in table within tx and returns the
// next one. Reading and writing inside a single transaction keeps the
// counter monotonic with at most one writer per version.
func nextVersion(tx *sql.Tx, table string) (int, error) {
	var v int
	query := fmt.Sprintf("SELECT COALESCE(MAX(version), 0) + 1 FROM %s", table)
	if err := tx.QueryRow(query).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read version for %s: %w", table, err)
	}
	return v, nil
}

// InsertMeetingBatch writes all rows as one new version. The whole batch
// commits or none of it does; a run never partially persists.
func (r *Repository) InsertMeetingBatch(rows []MeetingRow) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	version, err := nextVersion(tx, "meeting_intelligence")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, row := range rows {
		generatedAt := row.GeneratedAt
		if generatedAt.IsZero() {
			generatedAt = now
		}
		_, err := tx.Exec(`
			INSERT INTO meeting_intelligence (
				id, version, name, involvement_score, time_spoken_seconds,
				lines_spoken, behavior_type, important_topics, summary,
				overall_meeting_summary, meeting_topics, generated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), version, row.Name, row.InvolvementScore,
			row.TimeSpokenSecs, row.LinesSpoken, row.BehaviorType,
			row.ImportantTopics, row.Summary, row.OverallSummary,
			row.MeetingTopics, generatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert meeting row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit meeting batch: %w", err)
	}
	return version, nil
}

// InsertGitBatch writes all rows as one new version.
func (r *Repository) InsertGitBatch(rows []GitRow) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	version, err := nextVersion(tx, "git_intelligence")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, row := range rows {
		generatedAt := row.GeneratedAt
		if generatedAt.IsZero() {
			generatedAt = now
		}
		_, err := tx.Exec(`
			INSERT INTO git_intelligence (
				id, version, name, work_importance, pr_involvement,
				comment_quality, activity, collaboration_health,
				git_score, git_behavior, generated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), version, row.Name, row.WorkImportance,
			row.PRInvolvement, row.CommentQuality, row.Activity,
			row.CollaborationHealth, row.GitScore, row.GitBehavior, generatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert git row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit git batch: %w", err)
	}
	return version, nil
}

// InsertFinalBatch writes all rows as one new version.
func (r *Repository) InsertFinalBatch(rows []FinalRow) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	version, err := nextVersion(tx, "final_team_intelligence")
	if err != nil {
		return 0, err
	}

	now := time.Now()
	for _, row := range rows {
		generatedAt := row.GeneratedAt
		if generatedAt.IsZero() {
			generatedAt = now
		}
		_, err := tx.Exec(`
			INSERT INTO final_team_intelligence (
				id, version, name, merged_score, final_behavior,
				git_score, meeting_score, generated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), version, row.Name, row.MergedScore,
			row.FinalBehavior, row.GitScore, row.MeetingScore, generatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert final row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit final batch: %w", err)
	}
	return version, nil
}

// LatestFinal returns the newest version's fused member list, ordered by
// merged score descending.
func (r *Repository) LatestFinal() ([]FinalRow, error) {
	rows, err := r.db.Query(`
		SELECT version, name, merged_score, final_behavior, git_score, meeting_score, generated_at
		FROM final_team_intelligence
		WHERE version = (SELECT COALESCE(MAX(version), 0) FROM final_team_intelligence)
		ORDER BY merged_score DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query final rows: %w", err)
	}
	defer rows.Close()

	var out []FinalRow
	for rows.Next() {
		var row FinalRow
		if err := rows.Scan(&row.Version, &row.Name, &row.MergedScore,
			&row.FinalBehavior, &row.GitScore, &row.MeetingScore, &row.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan final row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LatestGit returns the newest version's git scores, ordered by git score
// descending.
func (r *Repository) LatestGit() ([]GitRow, error) {
	rows, err := r.db.Query(`
		SELECT version, name, work_importance, pr_involvement, comment_quality,
			activity, collaboration_health, git_score, git_behavior, generated_at
		FROM git_intelligence
		WHERE version = (SELECT COALESCE(MAX(version), 0) FROM git_intelligence)
		ORDER BY git_score DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query git rows: %w", err)
	}
	defer rows.Close()

	var out []GitRow
	for rows.Next() {
		var row GitRow
		if err := rows.Scan(&row.Version, &row.Name, &row.WorkImportance,
			&row.PRInvolvement, &row.CommentQuality, &row.Activity,
			&row.CollaborationHealth, &row.GitScore, &row.GitBehavior, &row.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan git row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// LatestMeeting returns the newest version's meeting rows, ordered by
// involvement score descending.
func (r *Repository) LatestMeeting() ([]MeetingRow, error) {
	rows, err := r.db.Query(`
		SELECT version, name, involvement_score, time_spoken_seconds, lines_spoken,
			behavior_type, important_topics, summary, overall_meeting_summary,
			meeting_topics, generated_at
		FROM meeting_intelligence
		WHERE version = (SELECT COALESCE(MAX(version), 0) FROM meeting_intelligence)
		ORDER BY involvement_score DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting rows: %w", err)
	}
	defer rows.Close()

	var out []MeetingRow
	for rows.Next() {
		var row MeetingRow
		if err := rows.Scan(&row.Version, &row.Name, &row.InvolvementScore,
			&row.TimeSpokenSecs, &row.LinesSpoken, &row.BehaviorType,
			&row.ImportantTopics, &row.Summary, &row.OverallSummary,
			&row.MeetingTopics, &row.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
