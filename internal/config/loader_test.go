package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 9, cfg.ScheduleHour)
	assert.Equal(t, 30, cfg.ScheduleMinute)
	assert.InDelta(t, 0.4, cfg.Fusion.MeetingWeight, 1e-9)
	assert.Equal(t, []string{"bug", "fix", "error", "break", "fail", "regression"}, cfg.Semantic.BugKeywords)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TEAMLENS_ADDR", ":9090")
	t.Setenv("TEAMLENS_LOG_LEVEL", "debug")
	t.Setenv("TEAMLENS_SOURCES__COMMITS_JSON", "/tmp/commits.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/commits.json", cfg.Sources.CommitsJSON)
	assert.Equal(t, "./data", cfg.DataDir, "untouched keys keep their defaults")
}

func TestLoadYAMLFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teamlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":7070\"\nlog_level: warn\nschedule_hour: 6\n"), 0o644))

	t.Setenv("TEAMLENS_CONFIG", path)
	t.Setenv("TEAMLENS_LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr, "file overrides defaults")
	assert.Equal(t, "error", cfg.LogLevel, "env overrides the file")
	assert.Equal(t, 6, cfg.ScheduleHour)
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("TEAMLENS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err, "an explicitly named config file must exist")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty addr", "TEAMLENS_ADDR", ""},
		{"hour too large", "TEAMLENS_SCHEDULE_HOUR", "24"},
		{"negative minute", "TEAMLENS_SCHEDULE_MINUTE", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
