package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)
	assert.False(t, cfg.Global.ReadOnly)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Database.Debug)
	assert.Equal(t, 720*time.Hour, cfg.Session.Lifetime)
	assert.False(t, cfg.Session.SecureCookies)
	assert.Equal(t, DefaultExportDir, cfg.Export.Dir)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.Equal(t, "json", cfg.Backup.Format)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 1, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
}

func TestNewConfig_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_PATH", "/tmp/books.db")
	t.Setenv("BACKUP_ENABLED", "true")
	t.Setenv("BACKUP_FORMAT", "markdown")
	t.Setenv("TASK_RELEASE_AFTER", "5m")
	t.Setenv("READ_ONLY", "true")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/books.db", cfg.Database.Path)
	assert.True(t, cfg.Backup.Enabled)
	assert.Equal(t, "markdown", cfg.Backup.Format)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.True(t, cfg.Global.ReadOnly)
}
