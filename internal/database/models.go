package database

import "time"

// MeetingRow is one versioned row of the meeting_intelligence table.
type MeetingRow struct {
	Version          int       `json:"version" db:"version"`
	Name             string    `json:"name" db:"name"`
	InvolvementScore int       `json:"involvement_score" db:"involvement_score"`
	TimeSpokenSecs   int       `json:"time_spoken_seconds" db:"time_spoken_seconds"`
	LinesSpoken      int       `json:"lines_spoken" db:"lines_spoken"`
	BehaviorType     string    `json:"behavior_type" db:"behavior_type"`
	ImportantTopics  string    `json:"important_topics" db:"important_topics"` // JSON-encoded list
	Summary          string    `json:"summary" db:"summary"`
	OverallSummary   string    `json:"overall_meeting_summary" db:"overall_meeting_summary"`
	MeetingTopics    string    `json:"meeting_topics" db:"meeting_topics"` // JSON-encoded list
	GeneratedAt      time.Time `json:"generated_at" db:"generated_at"`
}

// GitRow is one versioned row of the git_intelligence table.
type GitRow struct {
	Version             int       `json:"version" db:"version"`
	Name                string    `json:"name" db:"name"`
	WorkImportance      float64   `json:"work_importance" db:"work_importance"`
	PRInvolvement       float64   `json:"pr_involvement" db:"pr_involvement"`
	CommentQuality      float64   `json:"comment_quality" db:"comment_quality"`
	Activity            float64   `json:"activity" db:"activity"`
	CollaborationHealth float64   `json:"collaboration_health" db:"collaboration_health"`
	GitScore            float64   `json:"git_score" db:"git_score"`
	GitBehavior         string    `json:"git_behavior" db:"git_behavior"`
	GeneratedAt         time.Time `json:"generated_at" db:"generated_at"`
}

// FinalRow is one versioned row of the final_team_intelligence table.
type FinalRow struct {
	Version       int       `json:"version" db:"version"`
	Name          string    `json:"name" db:"name"`
	MergedScore   float64   `json:"merged_score" db:"merged_score"`
	FinalBehavior string    `json:"final_behavior" db:"final_behavior"`
	GitScore      float64   `json:"git_score" db:"git_score"`
	MeetingScore  float64   `json:"meeting_score" db:"meeting_score"`
	GeneratedAt   time.Time `json:"generated_at" db:"generated_at"`
}
