package di

import (
	"fmt"

	"github.com/aristath/investa/internal/config"
	"github.com/aristath/investa/internal/reliability"
	"github.com/rs/zerolog"
)

// MaintenanceSchedule is how often the data directory is checked
const MaintenanceSchedule = "@hourly"

// RegisterJobs registers all jobs with the scheduler
// Returns JobInstances for manual triggering via API and CLI
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	if container == nil || container.Scheduler == nil {
		return nil, fmt.Errorf("container has no scheduler")
	}

	instances := &JobInstances{
		DataMaintenance: reliability.NewDataMaintenanceJob(container.Workspace.DataDir(), log),
	}
	if err := container.Scheduler.AddJob(MaintenanceSchedule, instances.DataMaintenance); err != nil {
		return nil, fmt.Errorf("failed to register data maintenance job: %w", err)
	}

	if container.Backup != nil {
		instances.Backup = reliability.NewBackupJob(container.Backup, cfg.Backup.RetentionDays, log)
		if err := container.Scheduler.AddJob(cfg.Backup.Schedule, instances.Backup); err != nil {
			return nil, fmt.Errorf("failed to register backup job: %w", err)
		}
	}

	return instances, nil
}
