package reliability

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plentyOfSpace(string) (*disk.UsageStat, error) {
	return &disk.UsageStat{Free: 10 << 30, UsedPercent: 40}, nil
}

func TestDataMaintenanceJob_RemovesStaleTempFiles(t *testing.T) {
	dir := t.TempDir()
	userDir := filepath.Join(dir, "users", "alice")
	require.NoError(t, os.MkdirAll(userDir, 0755))

	stale := filepath.Join(userDir, ".assets.txt.tmp-111")
	fresh := filepath.Join(userDir, ".assets.txt.tmp-222")
	data := filepath.Join(userDir, "assets.txt")
	for _, p := range []string{stale, fresh, data} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(data, old, old))

	job := NewDataMaintenanceJob(dir, zerolog.Nop())
	job.usage = plentyOfSpace

	assert.Equal(t, "data_maintenance", job.Name())
	require.NoError(t, job.Run())

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, data)
}

func TestDataMaintenanceJob_DiskSpace(t *testing.T) {
	job := NewDataMaintenanceJob(t.TempDir(), zerolog.Nop())

	job.usage = func(string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Free: 10 << 20}, nil
	}
	assert.Error(t, job.Run())

	job.usage = func(string) (*disk.UsageStat, error) {
		return &disk.UsageStat{Free: 500 << 20}, nil
	}
	assert.NoError(t, job.Run())

	job.usage = func(string) (*disk.UsageStat, error) {
		return nil, errors.New("statfs failed")
	}
	assert.Error(t, job.Run())
}
