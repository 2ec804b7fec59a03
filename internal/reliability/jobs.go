package reliability

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
)

// backupTimeout bounds one scheduled backup run
const backupTimeout = 10 * time.Minute

// BackupJob uploads a fresh backup and rotates old ones
type BackupJob struct {
	service       *BackupService
	retentionDays int
	log           zerolog.Logger
}

// NewBackupJob creates a new scheduled backup job
func NewBackupJob(service *BackupService, retentionDays int, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		service:       service,
		retentionDays: retentionDays,
		log:           log.With().Str("job", "backup").Logger(),
	}
}

// Run executes the backup job
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	if _, err := j.service.CreateAndUpload(ctx); err != nil {
		return err
	}
	// Rotation failures do not fail the run; the backup itself succeeded
	if _, err := j.service.RotateOldBackups(ctx, j.retentionDays); err != nil {
		j.log.Warn().Err(err).Msg("Backup rotation failed")
	}
	return nil
}

// Name returns the job name
func (j *BackupJob) Name() string {
	return "backup"
}

// Disk space thresholds for the data directory volume
const (
	criticalFreeBytes = 100 << 20 // 100MB
	lowFreeBytes      = 1 << 30   // 1GB
)

// staleTempAge is how old an interrupted write's temp file must be before removal
const staleTempAge = time.Hour

// DataMaintenanceJob checks free space and clears leftovers of interrupted writes
type DataMaintenanceJob struct {
	dataDir string
	log     zerolog.Logger
	now     func() time.Time
	usage   func(path string) (*disk.UsageStat, error)
}

// NewDataMaintenanceJob creates a new data directory maintenance job
func NewDataMaintenanceJob(dataDir string, log zerolog.Logger) *DataMaintenanceJob {
	return &DataMaintenanceJob{
		dataDir: dataDir,
		log:     log.With().Str("job", "data_maintenance").Logger(),
		now:     time.Now,
		usage:   disk.Usage,
	}
}

// Run executes the maintenance job
func (j *DataMaintenanceJob) Run() error {
	j.log.Info().Msg("Starting data maintenance")
	start := j.now()

	if err := j.checkDiskSpace(); err != nil {
		return err
	}

	removed, err := j.removeStaleTempFiles()
	if err != nil {
		return err
	}

	j.log.Info().
		Int("temp_files_removed", removed).
		Dur("duration_ms", j.now().Sub(start)).
		Msg("Data maintenance completed")
	return nil
}

// Name returns the job name
func (j *DataMaintenanceJob) Name() string {
	return "data_maintenance"
}

func (j *DataMaintenanceJob) checkDiskSpace() error {
	stat, err := j.usage(j.dataDir)
	if err != nil {
		return fmt.Errorf("failed to stat filesystem: %w", err)
	}

	j.log.Debug().Uint64("free_bytes", stat.Free).Float64("used_pct", stat.UsedPercent).Msg("Disk space check")

	if stat.Free < criticalFreeBytes {
		j.log.Error().Uint64("free_bytes", stat.Free).Msg("CRITICAL: Insufficient disk space for data files")
		return fmt.Errorf("only %d bytes free on data volume", stat.Free)
	}
	if stat.Free < lowFreeBytes {
		j.log.Warn().Uint64("free_bytes", stat.Free).Msg("Disk space running low")
	}
	return nil
}

// removeStaleTempFiles deletes ".<name>.tmp-*" files left by interrupted saves
func (j *DataMaintenanceJob) removeStaleTempFiles() (int, error) {
	cutoff := j.now().Add(-staleTempAge)
	removed := 0

	err := filepath.WalkDir(j.dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() || !strings.HasPrefix(name, ".") || !strings.Contains(name, ".tmp-") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(cutoff) {
			return nil
		}

		if err := os.Remove(p); err != nil {
			j.log.Warn().Err(err).Str("path", p).Msg("Failed to remove stale temp file")
			return nil
		}
		j.log.Debug().Str("path", p).Msg("Removed stale temp file")
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("failed to scan data directory: %w", err)
	}
	return removed, nil
}
