package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. defaults (New())
//  2. YAML file named by TEAMLENS_CONFIG, if set
//  3. environment variables with prefix TEAMLENS_
//
// Env keys map to flat koanf keys: TEAMLENS_ADDR -> addr,
// TEAMLENS_SOURCES__COMMITS_JSON -> sources.commits_json (double underscore
// separates nesting, single underscores are preserved to match koanf tags).
func Load() (*Config, error) {
	cfg := *New()

	k := koanf.New(".")

	if path := os.Getenv("TEAMLENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("TEAMLENS_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "TEAMLENS_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.ScheduleHour < 0 || cfg.ScheduleHour > 23 || cfg.ScheduleMinute < 0 || cfg.ScheduleMinute > 59 {
		return nil, errors.New("schedule time out of range")
	}
	return &cfg, nil
}
