/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the server and CLI for access to services.
 */
package di

import (
	"github.com/aristath/investa/internal/modules/insights"
	"github.com/aristath/investa/internal/reliability"
	"github.com/aristath/investa/internal/scheduler"
	"github.com/aristath/investa/internal/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Container holds all application dependencies
type Container struct {
	// Storage
	Workspace *session.Workspace

	// Services
	Services *session.Services // Per-user asset and goal services
	Insights *insights.Service
	Backup   *reliability.BackupService // nil when no backup bucket is configured

	// Infrastructure
	Scheduler *scheduler.Scheduler
	Registry  *prometheus.Registry
}

// JobInstances holds the registered jobs for manual triggering
type JobInstances struct {
	Backup          *reliability.BackupJob // nil when backups are disabled
	DataMaintenance *reliability.DataMaintenanceJob
}
