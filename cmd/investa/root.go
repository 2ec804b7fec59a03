package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/aristath/investa/internal/config"
	"github.com/aristath/investa/internal/database"
	"github.com/aristath/investa/internal/session"
	"github.com/aristath/investa/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand
type app struct {
	dataDir  string
	user     string
	logLevel string

	cfg      *config.Config
	log      zerolog.Logger
	services *session.Services
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "investa",
		Short:         "Personal asset tracker and risk scorer",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default $INVESTA_DATA_DIR or ./data)")
	root.PersistentFlags().StringVarP(&a.user, "user", "u", os.Getenv("INVESTA_USER"), "user whose data to act on")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (default $LOG_LEVEL or info)")

	root.AddCommand(
		newAssetsCommand(a),
		newGoalsCommand(a),
		newRiskCommand(a),
		newSummaryCommand(a),
		newZakatCommand(a),
		newBackupCommand(a),
		newServeCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		if cfg.DataDir, err = config.ResolveDataDir(a.dataDir); err != nil {
			return err
		}
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})
	a.services = session.NewServices(session.NewWorkspace(cfg.DataDir, database.ProfileLedger), a.log)
	return nil
}

// session returns the session for --user
func (a *app) session() (session.Session, error) {
	if a.user == "" {
		return session.Session{}, fmt.Errorf("no user given: pass --user or set INVESTA_USER")
	}
	return session.New(a.user)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}
