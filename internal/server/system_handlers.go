package server

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aristath/investa/internal/domain"
	"github.com/aristath/investa/internal/scheduler"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemStatusResponse represents system status
type SystemStatusResponse struct {
	Status        string                `json:"status"`
	Version       string                `json:"version"`
	UptimeSeconds int64                 `json:"uptime_seconds"`
	CPUPercent    float64               `json:"cpu_percent"`
	MemoryPercent float64               `json:"memory_percent"`
	DataDirBytes  int64                 `json:"data_dir_bytes"`
	UserCount     int                   `json:"user_count"`
	Jobs          []scheduler.JobStatus `json:"jobs"`
	LastUpdated   string                `json:"last_updated"`
}

// SystemHandlers handles system-wide monitoring and operations
type SystemHandlers struct {
	log       zerolog.Logger
	dataDir   string
	scheduler *scheduler.Scheduler
	startedAt time.Time

	mu   sync.RWMutex
	jobs map[string]scheduler.Job

	// System probes, replaced in tests
	cpuPercent func() (float64, error)
	memPercent func() (float64, error)
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, dataDir string, sched *scheduler.Scheduler) *SystemHandlers {
	return &SystemHandlers{
		log:        log.With().Str("handler", "system").Logger(),
		dataDir:    dataDir,
		scheduler:  sched,
		startedAt:  time.Now(),
		jobs:       make(map[string]scheduler.Job),
		cpuPercent: sampleCPU,
		memPercent: sampleMemory,
	}
}

// SetJob registers a job instance for manual triggering via API
func (h *SystemHandlers) SetJob(job scheduler.Job) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobs[job.Name()] = job
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	cpuPct, err := h.cpuPercent()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
	}
	memPct, err := h.memPercent()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
	}

	size, users := h.dataDirStats()

	var jobs []scheduler.JobStatus
	if h.scheduler != nil {
		jobs = h.scheduler.Jobs()
	}

	utils.WriteJSON(w, http.StatusOK, SystemStatusResponse{
		Status:        "healthy",
		Version:       Version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		CPUPercent:    cpuPct,
		MemoryPercent: memPct,
		DataDirBytes:  size,
		UserCount:     users,
		Jobs:          jobs,
		LastUpdated:   time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleJobsStatus handles GET /api/system/jobs
func (h *SystemHandlers) HandleJobsStatus(w http.ResponseWriter, r *http.Request) {
	jobs := []scheduler.JobStatus{}
	if h.scheduler != nil {
		jobs = h.scheduler.Jobs()
	}
	utils.WriteData(w, http.StatusOK, jobs)
}

// HandleRunJob handles POST /api/system/jobs/{name}/run
func (h *SystemHandlers) HandleRunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	h.mu.RLock()
	job, ok := h.jobs[name]
	h.mu.RUnlock()
	if !ok {
		utils.WriteError(w, h.log, fmt.Errorf("job %q %w", name, domain.ErrNotFound))
		return
	}

	var err error
	if h.scheduler != nil {
		err = h.scheduler.RunNow(job)
	} else {
		err = job.Run()
	}
	if err != nil {
		h.log.Error().Err(err).Str("job", name).Msg("Manual job run failed")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse{Error: fmt.Sprintf("job %s failed", name)})
		return
	}

	utils.WriteData(w, http.StatusOK, map[string]string{"job": name, "status": "completed"})
}

// dataDirStats returns the total size of the data directory and the number of users
func (h *SystemHandlers) dataDirStats() (int64, int) {
	var total int64
	err := filepath.WalkDir(h.dataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	if err != nil {
		h.log.Warn().Err(err).Str("dir", h.dataDir).Msg("Failed to calculate directory size")
	}

	users := 0
	entries, err := os.ReadDir(filepath.Join(h.dataDir, "users"))
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				users++
			}
		}
	}
	return total, users
}

// sampleCPU measures CPU usage over a short window to keep the API responsive
func sampleCPU() (float64, error) {
	pcts, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(pcts) == 0 {
		return 0, err
	}
	return pcts[0], nil
}

func sampleMemory() (float64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return stat.UsedPercent, nil
}
