// Package reliability keeps user data safe: off-site backups and data directory maintenance.
package reliability

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aristath/investa/internal/metrics"
	"github.com/aristath/investa/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	archivePrefix   = "investa-backup-"
	archiveSuffix   = ".tar.gz"
	timestampLayout = "20060102T150405Z"

	// minBackupsToKeep survive rotation regardless of age
	minBackupsToKeep = 3
)

// BackupInfo represents a backup stored in the bucket
type BackupInfo struct {
	Filename  string    `json:"filename"`
	BackupID  string    `json:"backup_id"`
	Timestamp time.Time `json:"timestamp"`
	SizeBytes int64     `json:"size_bytes"`
	AgeHours  int64     `json:"age_hours"`
}

// BackupService archives the data directory and manages remote copies
type BackupService struct {
	client  *S3Client
	dataDir string
	log     zerolog.Logger
	now     func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(client *S3Client, dataDir string, log zerolog.Logger) *BackupService {
	return &BackupService{
		client:  client,
		dataDir: dataDir,
		log:     log.With().Str("service", "backup").Logger(),
		now:     time.Now,
	}
}

// ArchiveName returns the object name for a backup taken at ts
func ArchiveName(ts time.Time, id string) string {
	return archivePrefix + ts.UTC().Format(timestampLayout) + "-" + id + archiveSuffix
}

// ParseArchiveName extracts timestamp and backup id from an object name
func ParseArchiveName(name string) (time.Time, string, bool) {
	if !strings.HasPrefix(name, archivePrefix) || !strings.HasSuffix(name, archiveSuffix) {
		return time.Time{}, "", false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, archivePrefix), archiveSuffix)
	if len(rest) < len(timestampLayout)+2 || rest[len(timestampLayout)] != '-' {
		return time.Time{}, "", false
	}
	ts, err := time.Parse(timestampLayout, rest[:len(timestampLayout)])
	if err != nil {
		return time.Time{}, "", false
	}
	return ts, rest[len(timestampLayout)+1:], true
}

// CreateAndUpload archives the data directory and uploads the archive
func (s *BackupService) CreateAndUpload(ctx context.Context) (info BackupInfo, err error) {
	defer func() { metrics.BackupRuns.WithLabelValues(metrics.Result(err)).Inc() }()
	stop := utils.OperationTimer("backup_upload", s.log)

	s.log.Info().Str("bucket", s.client.Bucket()).Msg("Starting backup")

	staging, err := os.CreateTemp("", "investa-backup-*"+archiveSuffix)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("failed to create staging file: %w", err)
	}
	defer os.Remove(staging.Name())
	defer staging.Close()

	ts := s.now().UTC().Truncate(time.Second)
	metadata, err := WriteArchive(staging, s.dataDir, BackupMetadata{
		BackupID:  uuid.New().String(),
		Timestamp: ts,
	})
	if err != nil {
		return BackupInfo{}, fmt.Errorf("failed to create archive: %w", err)
	}

	size, err := staging.Seek(0, io.SeekCurrent)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("failed to size archive: %w", err)
	}
	if _, err := staging.Seek(0, io.SeekStart); err != nil {
		return BackupInfo{}, fmt.Errorf("failed to rewind archive: %w", err)
	}

	name := ArchiveName(ts, metadata.BackupID)
	if err := s.client.Upload(ctx, name, staging); err != nil {
		return BackupInfo{}, err
	}

	duration := stop()
	s.log.Info().
		Dur("duration_ms", duration).
		Str("archive", name).
		Int("files", len(metadata.Files)).
		Int64("size_bytes", size).
		Msg("Backup completed successfully")

	return BackupInfo{
		Filename:  name,
		BackupID:  metadata.BackupID,
		Timestamp: ts,
		SizeBytes: size,
	}, nil
}

// ListBackups lists remote backups, newest first
func (s *BackupService) ListBackups(ctx context.Context) ([]BackupInfo, error) {
	objects, err := s.client.List(ctx, archivePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	now := s.now()
	backups := make([]BackupInfo, 0, len(objects))
	for _, obj := range objects {
		ts, id, ok := ParseArchiveName(*obj.Key)
		if !ok {
			s.log.Warn().Str("filename", *obj.Key).Msg("Skipping object with unrecognized name")
			continue
		}

		var sizeBytes int64
		if obj.Size != nil {
			sizeBytes = *obj.Size
		}
		backups = append(backups, BackupInfo{
			Filename:  *obj.Key,
			BackupID:  id,
			Timestamp: ts,
			SizeBytes: sizeBytes,
			AgeHours:  int64(now.Sub(ts).Hours()),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// RotateOldBackups deletes backups older than retentionDays.
// The newest backups are always kept; retentionDays 0 keeps everything.
func (s *BackupService) RotateOldBackups(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	backups, err := s.ListBackups(ctx)
	if err != nil {
		return 0, err
	}
	if len(backups) <= minBackupsToKeep {
		s.log.Debug().Int("count", len(backups)).Msg("Too few backups to rotate")
		return 0, nil
	}

	cutoff := s.now().AddDate(0, 0, -retentionDays)
	deleted := 0
	for _, backup := range backups[minBackupsToKeep:] {
		if !backup.Timestamp.Before(cutoff) {
			continue
		}
		if err := s.client.Delete(ctx, backup.Filename); err != nil {
			s.log.Error().Err(err).Str("filename", backup.Filename).Msg("Failed to delete old backup")
			continue
		}
		s.log.Info().Str("filename", backup.Filename).Time("timestamp", backup.Timestamp).Msg("Deleted old backup")
		deleted++
	}

	s.log.Info().Int("deleted", deleted).Int("remaining", len(backups)-deleted).Msg("Backup rotation completed")
	return deleted, nil
}
