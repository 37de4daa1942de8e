package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukprmenbersaku-abc/help-study/internal/progress"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DB.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5, cfg.Deadlines.Limit)
	assert.Len(t, cfg.BadgeDefs(), 5)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hs.yaml")
	content := `
db:
  path: /var/lib/hs.db
log:
  level: debug
deadlines:
  limit: 3
badges:
  - id: first_step
    xp_reward: 80
  - id: night_owl
    name: Night Owl
    icon: moon
    xp_reward: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("HELP_STUDY_SERVER_ADDR", "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/hs.db", cfg.DB.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Deadlines.Limit)
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)

	defs := cfg.BadgeDefs()
	require.Len(t, defs, 6)
	assert.Equal(t, 80, defs[0].XPReward)
	assert.Equal(t, "night_owl", defs[5].ID)
	assert.Equal(t, progress.BadgeDeadlineMaster, defs[4].ID)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
