package di

import (
	"fmt"

	"github.com/aristath/investa/internal/config"
	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/session"
	"github.com/rs/zerolog"
)

// InitializeStorage resolves the data directory and creates the per-user workspace
func InitializeStorage(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	dataDir, err := config.ResolveDataDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dataDir

	// Ledger profile: every append is fsynced, user entries are the only copy
	workspace := session.NewWorkspace(dataDir, database.ProfileLedger)

	log.Info().Str("data_dir", dataDir).Msg("Storage initialized")
	return &Container{Workspace: workspace}, nil
}
