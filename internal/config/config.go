// Package config defines process configuration and its loading order:
// defaults, then an optional YAML file, then TEAMLENS_ environment
// variables.
package config

import (
	"github.com/hacknox/teamlens/internal/fusion"
	"github.com/hacknox/teamlens/internal/gitactivity"
	"github.com/hacknox/teamlens/internal/impact"
)

// Sources names the raw input files one pipeline run consumes.
type Sources struct {
	CommitsJSON    string `koanf:"commits_json"`
	IssuesJSON     string `koanf:"issues_json"`
	PRsJSON        string `koanf:"prs_json"`
	ReviewsJSON    string `koanf:"reviews_json"`
	TranscriptJSON string `koanf:"transcript_json"`

	CommitsCSV string `koanf:"commits_csv"`
	PRsCSV     string `koanf:"prs_csv"`
	ReviewsCSV string `koanf:"reviews_csv"`

	TranscriptText string `koanf:"transcript_text"`
}

// Config is the full process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`

	// DataDir holds the SQLite database and output artifacts.
	DataDir string `koanf:"data_dir"`

	// OutputDir is where pipeline JSON artifacts are written.
	OutputDir string `koanf:"output_dir"`

	// ScheduleHour/ScheduleMinute set the daily pipeline run time.
	ScheduleHour   int `koanf:"schedule_hour"`
	ScheduleMinute int `koanf:"schedule_minute"`

	// RatePerMinute and RateBurst bound per-IP API request rates.
	RatePerMinute int `koanf:"rate_per_minute"`
	RateBurst     int `koanf:"rate_burst"`

	Sources Sources `koanf:"sources"`

	Semantic impact.SemanticConfig `koanf:"semantic"`
	Scoring  impact.ScoringConfig  `koanf:"scoring"`
	Git      gitactivity.Config    `koanf:"git"`
	Fusion   fusion.Config         `koanf:"fusion"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":8080",
		DataDir:        "./data",
		OutputDir:      "./data/out",
		ScheduleHour:   9,
		ScheduleMinute: 30,
		RatePerMinute:  60,
		RateBurst:      120,
		Sources: Sources{
			CommitsJSON:    "./data/in/commits.json",
			IssuesJSON:     "./data/in/issues.json",
			PRsJSON:        "./data/in/prs.json",
			ReviewsJSON:    "./data/in/reviews.json",
			TranscriptJSON: "./data/in/transcript.json",
			CommitsCSV:     "./data/in/commits.csv",
			PRsCSV:         "./data/in/pull_requests.csv",
			ReviewsCSV:     "./data/in/reviews.csv",
			TranscriptText: "./data/in/meeting_transcript.txt",
		},
		Semantic: impact.DefaultSemanticConfig(),
		Scoring:  impact.DefaultScoringConfig(),
		Git:      gitactivity.DefaultConfig(),
		Fusion:   fusion.DefaultConfig(),
	}
}
