package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aristath/investa/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWire(t *testing.T) {
	cfg := &config.Config{
		DataDir: t.TempDir(),
		Port:    8001,
		Backup:  config.BackupConfig{Schedule: "@daily"},
	}

	container, jobs, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.NotNil(t, container.Workspace)
	assert.NotNil(t, container.Services)
	assert.NotNil(t, container.Insights)
	assert.NotNil(t, container.Registry)
	assert.NotNil(t, container.Scheduler)
	assert.Nil(t, container.Backup, "backups are disabled without a bucket")

	assert.NotNil(t, jobs.DataMaintenance)
	assert.Nil(t, jobs.Backup)

	scheduled := container.Scheduler.Jobs()
	require.Len(t, scheduled, 1)
	assert.Equal(t, "data_maintenance", scheduled[0].Name)
	assert.Equal(t, MaintenanceSchedule, scheduled[0].Schedule)
}

func TestWire_WithBackups(t *testing.T) {
	cfg := &config.Config{
		DataDir: t.TempDir(),
		Port:    8001,
		Backup: config.BackupConfig{
			Bucket:          "investa-backups",
			Prefix:          "test",
			Endpoint:        "http://127.0.0.1:9000",
			Region:          "auto",
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Schedule:        "0 3 * * *",
			RetentionDays:   7,
		},
	}

	container, jobs, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, container.Backup)
	assert.NotNil(t, jobs.Backup)
	assert.Len(t, container.Scheduler.Jobs(), 2)
}

func TestWire_RelativeDataDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := &config.Config{DataDir: "data", Port: 8001}

	container, _, err := Wire(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(container.Workspace.DataDir()))
	assert.True(t, filepath.IsAbs(cfg.DataDir))
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := &config.Config{
		DataDir: t.TempDir(),
		Port:    8001,
		Backup:  config.BackupConfig{Bucket: "b", Region: "auto", Schedule: "whenever"},
	}

	_, _, err := Wire(cfg, zerolog.Nop())
	assert.Error(t, err)
}
