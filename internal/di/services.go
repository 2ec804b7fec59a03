package di

import (
	"context"
	"fmt"

	"github.com/aristath/investa/internal/config"
	"github.com/aristath/investa/internal/metrics"
	"github.com/aristath/investa/internal/modules/insights"
	"github.com/aristath/investa/internal/reliability"
	"github.com/aristath/investa/internal/scheduler"
	"github.com/aristath/investa/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
)

// InitializeServices creates all services and stores them in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.Services = session.NewServices(container.Workspace, log)
	container.Insights = insights.NewService(container.Services, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}
	container.Registry = registry

	if cfg.Backup.Enabled() {
		client, err := reliability.NewS3Client(context.Background(), cfg.Backup, log)
		if err != nil {
			return fmt.Errorf("failed to create backup client: %w", err)
		}
		container.Backup = reliability.NewBackupService(client, container.Workspace.DataDir(), log)
		log.Info().Str("bucket", cfg.Backup.Bucket).Msg("Backups enabled")
	} else {
		log.Info().Msg("Backups disabled (BACKUP_S3_BUCKET not set)")
	}

	container.Scheduler = scheduler.New(log)
	return nil
}
