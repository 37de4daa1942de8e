package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
)

// EnvPrefix prefixes environment overrides, e.g. HELP_STUDY_DB_PATH.
const EnvPrefix = "HELP_STUDY"

type Config struct {
	DB        DBConfig         `mapstructure:"db"`
	Log       LogConfig        `mapstructure:"log"`
	Server    ServerConfig     `mapstructure:"server"`
	Deadlines DeadlinesConfig  `mapstructure:"deadlines"`
	Badges    []progress.Badge `mapstructure:"badges"`
}

type DBConfig struct {
	Path string `mapstructure:"path"` // empty: $HOME/.help-study.db
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type ServerConfig struct {
	Addr  string `mapstructure:"addr"`
	Debug bool   `mapstructure:"debug"`
}

type DeadlinesConfig struct {
	Limit int `mapstructure:"limit"`
}

// BadgeDefs returns the built-in badge table with configured overrides applied.
func (c *Config) BadgeDefs() []progress.Badge {
	return progress.MergeBadges(progress.DefaultBadges(), c.Badges)
}

// DefaultConfigPath returns $HOME/.help-study.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".help-study.yaml")
}

// Load reads configuration from path (YAML) and HELP_STUDY_* environment
// variables. An empty path falls back to DefaultConfigPath; a missing default
// file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("deadlines.limit", 5)

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var pathErr *os.PathError
			if explicit || !errors.As(err, &pathErr) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Deadlines.Limit <= 0 {
		cfg.Deadlines.Limit = 5
	}
	return cfg, nil
}
